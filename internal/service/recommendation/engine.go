package recommendation

import (
	"go.uber.org/zap"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
	"github.com/mamadbah2/fertiplan/internal/reference"
)

// Input is everything one recommendation depends on. Region and Weather are optional.
type Input struct {
	Crop    *models.CropProfile
	Soil    *models.SoilSample
	Region  *models.RegionalAdjustment
	Weather *models.WeatherAnalysis
}

// Engine runs the recommendation pipeline against a reference catalog.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	catalog *reference.Catalog
	logger  *zap.Logger
}

// NewEngine builds an engine. A nil catalog selects the embedded reference tables.
func NewEngine(catalog *reference.Catalog, logger *zap.Logger) *Engine {
	if catalog == nil {
		catalog = reference.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{catalog: catalog, logger: logger}
}

// Compute derives deficiency, plan, schedule, cost, tips and yield for the input.
// It returns nil when the crop or the soil sample is missing.
func (e *Engine) Compute(in Input) *models.Recommendation {
	if in.Crop == nil || in.Soil == nil {
		return nil
	}

	deficiency := CalculateDeficiency(in.Crop.Requirements, *in.Soil)
	if in.Region != nil {
		deficiency = deficiency.Scale(in.Region.Multiplier)
	}

	plan := e.Allocate(deficiency)

	baseYield := in.Crop.BaseYield
	if baseYield == "" {
		baseYield = e.catalog.BaseYield(in.Crop.ID)
	}

	return &models.Recommendation{
		Deficiency:          deficiency,
		FertilizerPlan:      plan,
		ApplicationSchedule: BuildSchedule(plan, in.Crop.GrowthStages),
		CostBreakdown:       e.CalculateCost(plan),
		EducationalTips:     e.SelectTips(*in.Crop, *in.Soil, in.Weather),
		YieldPrediction:     PredictYield(baseYield, *in.Soil, in.Weather),
	}
}

// fertilizer returns a spec the catalog guarantees to hold.
func (e *Engine) fertilizer(id models.FertilizerID) models.FertilizerSpec {
	spec, _ := e.catalog.Fertilizer(id)
	return spec
}
