package reporting

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	repo "github.com/mamadbah2/fertiplan/internal/repository/sheets"
	"github.com/mamadbah2/fertiplan/internal/service/recommendation"
)

const (
	dateLayout   = "2006-01-02"
	digestWindow = 7 * 24 * time.Hour

	colDate = 0
	colCrop = 2
	colCost = 6
	colGain = 7
)

// Digest summarizes the recommendations logged during a period.
type Digest struct {
	Start          time.Time
	End            time.Time
	Count          int
	CropCounts     map[string]int
	TotalCost      float64
	AverageCost    float64
	AverageGainPct float64
	SkippedRows    int
}

// Service exposes lightweight analytics over the recommendation ledger.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// Summarize aggregates ledger rows whose date falls within [start, end].
func (s *Service) Summarize(ctx context.Context, start, end time.Time) (*Digest, error) {
	rows, err := s.repo.ReadRange(ctx, recommendation.LedgerRange)
	if err != nil {
		return nil, fmt.Errorf("load recommendation ledger: %w", err)
	}

	digest := &Digest{Start: start, End: end, CropCounts: make(map[string]int)}
	var gainTotal int

	for _, row := range rows {
		if len(row) <= colCrop {
			digest.SkippedRows++
			continue
		}

		dateValue, err := parseDate(row[colDate])
		if err != nil {
			// Header rows land here too.
			s.logger.Debug("skip ledger row with invalid date", zap.Any("value", row[colDate]), zap.Error(err))
			digest.SkippedRows++
			continue
		}
		if dateValue.Before(truncateDay(start)) || dateValue.After(end) {
			continue
		}

		crop := strings.TrimSpace(fmt.Sprint(row[colCrop]))
		digest.CropCounts[crop]++
		digest.Count++

		if len(row) > colCost {
			if cost, err := parseFloat(row[colCost]); err == nil {
				digest.TotalCost += cost
			} else {
				s.logger.Debug("ledger row without cost", zap.Any("value", row[colCost]), zap.Error(err))
			}
		}
		if len(row) > colGain {
			if gain, err := parseInt(row[colGain]); err == nil {
				gainTotal += gain
			}
		}
	}

	if digest.Count > 0 {
		digest.TotalCost = math.Round(digest.TotalCost*100) / 100
		digest.AverageCost = math.Round(digest.TotalCost/float64(digest.Count)*100) / 100
		digest.AverageGainPct = math.Round(float64(gainTotal)/float64(digest.Count)*10) / 10
	}

	return digest, nil
}

// WeeklyDigest summarizes the seven days ending at now and returns a WhatsApp-ready text.
func (s *Service) WeeklyDigest(ctx context.Context, now time.Time) (string, error) {
	digest, err := s.Summarize(ctx, now.Add(-digestWindow), now)
	if err != nil {
		return "", err
	}
	return FormatDigest(digest), nil
}

// FormatDigest renders a digest as plain text.
func FormatDigest(d *Digest) string {
	period := fmt.Sprintf("%s-%s", d.Start.Format(dateLayout), d.End.Format(dateLayout))
	if d.Count == 0 {
		return fmt.Sprintf("Recommendation digest (%s): no recommendations logged.", period)
	}

	crops := make([]string, 0, len(d.CropCounts))
	for crop := range d.CropCounts {
		crops = append(crops, crop)
	}
	sort.Slice(crops, func(i, j int) bool {
		if d.CropCounts[crops[i]] != d.CropCounts[crops[j]] {
			return d.CropCounts[crops[i]] > d.CropCounts[crops[j]]
		}
		return crops[i] < crops[j]
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Recommendation digest (%s): %d recommendations.\n", period, d.Count)
	for _, crop := range crops {
		fmt.Fprintf(&b, "- %s: %d\n", crop, d.CropCounts[crop])
	}
	fmt.Fprintf(&b, "Total fertilizer cost Rs %.2f (avg Rs %.2f per plan).\n", d.TotalCost, d.AverageCost)
	fmt.Fprintf(&b, "Average predicted yield improvement %.1f%%.", d.AverageGainPct)

	return b.String()
}

func truncateDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func parseDate(value interface{}) (time.Time, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(dateLayout, str)
}

func parseInt(value interface{}) (int, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.Atoi(str)
}

func parseFloat(value interface{}) (float64, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(str, 64)
}
