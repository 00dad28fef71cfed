package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/fertiplan/internal/config"
	"github.com/mamadbah2/fertiplan/internal/domain/models"
)

const digestTimeout = 2 * time.Minute

// DigestSource builds the text of the periodic digest.
type DigestSource interface {
	WeeklyDigest(ctx context.Context, now time.Time) (string, error)
}

// Sender delivers outbound WhatsApp messages.
type Sender interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	digest    DigestSource
	sender    Sender
	schedule  string
	recipient string
	location  *time.Location
	logger    *zap.Logger
}

// NewScheduler creates a scheduler running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, digest DigestSource, sender Sender, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		digest:    digest,
		sender:    sender,
		schedule:  cfg.CronSchedule,
		recipient: cfg.DigestRecipient,
		location:  location,
		logger:    logger,
	}, nil
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddFunc(s.schedule, s.sendWeeklyDigest); err != nil {
		return fmt.Errorf("schedule weekly digest: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendWeeklyDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	if err := s.RunDigest(ctx, time.Now().In(s.location)); err != nil {
		s.logger.Error("weekly digest failed", zap.Error(err))
	}
}

// RunDigest builds the digest for the week ending at now and sends it to the recipient.
func (s *Scheduler) RunDigest(ctx context.Context, now time.Time) error {
	s.logger.Info("generating weekly digest")

	text, err := s.digest.WeeklyDigest(ctx, now)
	if err != nil {
		return fmt.Errorf("generate weekly digest: %w", err)
	}

	req := models.OutboundMessageRequest{
		To:      s.recipient,
		Message: text,
	}
	if err := s.sender.SendOutbound(ctx, req); err != nil {
		return fmt.Errorf("send weekly digest: %w", err)
	}

	s.logger.Info("weekly digest sent", zap.String("to", s.recipient))
	return nil
}
