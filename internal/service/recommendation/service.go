package recommendation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
	"github.com/mamadbah2/fertiplan/internal/reference"
	"github.com/mamadbah2/fertiplan/internal/repository/mongodb"
	"github.com/mamadbah2/fertiplan/internal/repository/sheets"
)

var (
	// ErrMissingInput indicates the request lacks a crop or a soil sample.
	ErrMissingInput = errors.New("crop and soil sample are required")
	// ErrUnknownCrop indicates the crop id is not in the reference tables.
	ErrUnknownCrop = errors.New("unknown crop")
	// ErrArchiveDisabled indicates no recommendation store is configured.
	ErrArchiveDisabled = errors.New("recommendation archive is not configured")
	// ErrRecordNotFound indicates no archived recommendation has the requested id.
	ErrRecordNotFound = errors.New("recommendation not found")
)

const (
	// LedgerRange is where one summary row per recommendation is appended.
	LedgerRange     = "Recommendations!A:H"
	ledgerDateFmt   = "2006-01-02"
	archiveTimeout  = 5 * time.Second
	defaultSourceID = "api"
)

// Request identifies the crop and region by id. The service resolves them before running the engine.
type Request struct {
	Crop    models.CropID
	Region  models.RegionID
	Soil    *models.SoilSample
	Weather *models.WeatherAnalysis
	Source  string
}

// Service resolves requests against the reference catalog, runs the engine and archives results.
type Service struct {
	catalog *reference.Catalog
	engine  *Engine
	store   mongodb.Repository
	ledger  sheets.Repository
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewService wires a recommendation service. store and ledger may be nil to disable archiving.
func NewService(catalog *reference.Catalog, store mongodb.Repository, ledger sheets.Repository, logger *zap.Logger) *Service {
	if catalog == nil {
		catalog = reference.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog: catalog,
		engine:  NewEngine(catalog, logger.Named("engine")),
		store:   store,
		ledger:  ledger,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Catalog exposes the reference tables the service resolves ids against.
func (s *Service) Catalog() *reference.Catalog {
	return s.catalog
}

// Recommend computes a recommendation and archives it. Archive failures are logged, not returned.
func (s *Service) Recommend(ctx context.Context, req Request) (*models.RecommendationRecord, error) {
	if req.Crop == "" || req.Soil == nil {
		return nil, ErrMissingInput
	}

	crop, ok := s.catalog.Crop(req.Crop)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCrop, req.Crop)
	}

	in := Input{Crop: &crop, Soil: req.Soil, Weather: req.Weather}
	region := req.Region
	if region != "" {
		if adj, ok := s.catalog.Region(region); ok {
			in.Region = &adj
		} else {
			s.logger.Warn("unknown region, skipping regional adjustment", zap.String("region", string(region)))
			region = ""
		}
	}

	result := s.engine.Compute(in)
	if result == nil {
		return nil, ErrMissingInput
	}

	source := req.Source
	if source == "" {
		source = defaultSourceID
	}

	record := &models.RecommendationRecord{
		ID:             s.newID(),
		Crop:           crop.ID,
		Region:         region,
		Soil:           *req.Soil,
		Weather:        req.Weather,
		Source:         source,
		Recommendation: *result,
		CreatedAt:      s.now().UTC(),
	}

	s.logger.Info("recommendation generated",
		zap.String("id", record.ID),
		zap.String("crop", string(record.Crop)),
		zap.String("region", string(record.Region)),
		zap.Int("plan_entries", len(result.FertilizerPlan)),
		zap.String("source", source))

	s.archive(ctx, record)

	return record, nil
}

// Get loads an archived recommendation.
func (s *Service) Get(ctx context.Context, id string) (*models.RecommendationRecord, error) {
	if s.store == nil {
		return nil, ErrArchiveDisabled
	}

	record, err := s.store.FindRecommendation(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("load recommendation %s: %w", id, err)
	}

	return record, nil
}

// ListSince returns archived recommendations created at or after since, newest first.
func (s *Service) ListSince(ctx context.Context, since time.Time) ([]models.RecommendationRecord, error) {
	if s.store == nil {
		return nil, ErrArchiveDisabled
	}

	records, err := s.store.ListRecommendationsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	if records == nil {
		records = []models.RecommendationRecord{}
	}

	return records, nil
}

func (s *Service) archive(ctx context.Context, record *models.RecommendationRecord) {
	if s.store == nil && s.ledger == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, archiveTimeout)
	defer cancel()

	if s.store != nil {
		if err := s.store.SaveRecommendation(ctx, *record); err != nil {
			s.logger.Error("failed to archive recommendation", zap.String("id", record.ID), zap.Error(err))
		}
	}

	if s.ledger != nil {
		if err := s.ledger.WriteRow(ctx, LedgerRange, ledgerRow(record)); err != nil {
			s.logger.Error("failed to append recommendation ledger row", zap.String("id", record.ID), zap.Error(err))
		}
	}
}

// ledgerRow flattens a record into date, id, crop, region, soil type, pH, total cost, improvement.
func ledgerRow(record *models.RecommendationRecord) []interface{} {
	var totalCost float64
	if cost := record.Recommendation.CostBreakdown; cost != nil {
		totalCost = cost.TotalCost
	}

	var improvement int
	if yield := record.Recommendation.YieldPrediction; yield != nil {
		improvement = yield.PredictedImprovement
	}

	return []interface{}{
		record.CreatedAt.Format(ledgerDateFmt),
		record.ID,
		string(record.Crop),
		string(record.Region),
		record.Soil.Type,
		record.Soil.PH,
		roundCents(totalCost),
		improvement,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
