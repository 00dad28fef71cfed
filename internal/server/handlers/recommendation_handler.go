package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
	"github.com/mamadbah2/fertiplan/internal/service/recommendation"
)

const (
	defaultListDays = 7
	maxListDays     = 90
)

// Recommender is the recommendation service as seen by the HTTP layer.
type Recommender interface {
	Recommend(ctx context.Context, req recommendation.Request) (*models.RecommendationRecord, error)
	Get(ctx context.Context, id string) (*models.RecommendationRecord, error)
	ListSince(ctx context.Context, since time.Time) ([]models.RecommendationRecord, error)
}

// WeatherAnalyzer converts a raw observation into an analysis.
type WeatherAnalyzer interface {
	Analyze(obs *models.WeatherObservation) *models.WeatherAnalysis
}

type soilPayload struct {
	Type          string   `json:"type" binding:"required"`
	PH            *float64 `json:"ph" binding:"required,gte=0,lte=14"`
	N             *float64 `json:"n" binding:"required,gte=0"`
	P             *float64 `json:"p" binding:"required,gte=0"`
	K             *float64 `json:"k" binding:"required,gte=0"`
	OrganicMatter float64  `json:"organicMatter" binding:"gte=0"`
}

type weatherPayload struct {
	Analysis    *models.WeatherAnalysis    `json:"analysis"`
	Observation *models.WeatherObservation `json:"observation"`
}

type recommendationPayload struct {
	Crop    string          `json:"crop" binding:"required"`
	Region  string          `json:"region" binding:"required"`
	Soil    *soilPayload    `json:"soil" binding:"required"`
	Weather *weatherPayload `json:"weather"`
}

// RecommendationHandler exposes the recommendation engine over HTTP.
type RecommendationHandler struct {
	svc      Recommender
	analyzer WeatherAnalyzer
	logger   *zap.Logger
	now      func() time.Time
}

// NewRecommendationHandler constructs the HTTP handler adapter.
func NewRecommendationHandler(svc Recommender, analyzer WeatherAnalyzer, logger *zap.Logger) *RecommendationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationHandler{svc: svc, analyzer: analyzer, logger: logger, now: time.Now}
}

// Create computes, archives and returns a recommendation.
func (h *RecommendationHandler) Create(c *gin.Context) {
	var payload recommendationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid recommendation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := recommendation.Request{
		Crop:   models.CropID(payload.Crop),
		Region: models.RegionID(payload.Region),
		Soil: &models.SoilSample{
			Type:          payload.Soil.Type,
			PH:            *payload.Soil.PH,
			N:             *payload.Soil.N,
			P:             *payload.Soil.P,
			K:             *payload.Soil.K,
			OrganicMatter: payload.Soil.OrganicMatter,
		},
		Weather: h.weather(payload.Weather),
	}

	record, err := h.svc.Recommend(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// Get returns an archived recommendation by id.
func (h *RecommendationHandler) Get(c *gin.Context) {
	record, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// List returns archived recommendations from the last ?days= days (default 7).
func (h *RecommendationHandler) List(c *gin.Context) {
	days := defaultListDays
	if raw := c.Query("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > maxListDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 90"})
			return
		}
		days = v
	}

	since := h.now().UTC().AddDate(0, 0, -days)
	records, err := h.svc.ListSince(c.Request.Context(), since)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"since": since, "count": len(records), "recommendations": records})
}

// AnalyzeWeather evaluates whether an observation suits fertilizer application.
func (h *RecommendationHandler) AnalyzeWeather(c *gin.Context) {
	var obs models.WeatherObservation
	if err := c.ShouldBindJSON(&obs); err != nil {
		h.logger.Warn("invalid weather observation", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.analyzer.Analyze(&obs))
}

// weather prefers a precomputed analysis and otherwise analyzes the observation.
func (h *RecommendationHandler) weather(payload *weatherPayload) *models.WeatherAnalysis {
	if payload == nil {
		return nil
	}
	if payload.Analysis != nil {
		return payload.Analysis
	}
	if payload.Observation != nil && h.analyzer != nil {
		return h.analyzer.Analyze(payload.Observation)
	}
	return nil
}

func (h *RecommendationHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recommendation.ErrMissingInput), errors.Is(err, recommendation.ErrUnknownCrop):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, recommendation.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, recommendation.ErrArchiveDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error("recommendation request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
