package models

import "time"

// FertilizerPlanEntry is one fertilizer allocated to cover the nutrient deficiency.
type FertilizerPlanEntry struct {
	Fertilizer       FertilizerID `json:"fertilizer" bson:"fertilizer"`
	Name             string       `json:"name" bson:"name"`
	Quantity         float64      `json:"quantity" bson:"quantity"` // kg/ha
	Composition      string       `json:"composition" bson:"composition"`
	Description      string       `json:"description" bson:"description"`
	NutrientProvided NPK          `json:"nutrientProvided" bson:"nutrient_provided"`
}

// ScheduledFertilizer is a fertilizer dose within an application window.
type ScheduledFertilizer struct {
	Name     string  `json:"name" bson:"name"`
	Quantity float64 `json:"quantity" bson:"quantity"`
	Method   string  `json:"method" bson:"method"`
}

// ScheduleStage is an application window bound to a crop growth stage.
type ScheduleStage struct {
	StageName        string                `json:"stageName" bson:"stage_name"`
	StageDescription string                `json:"stageDescription" bson:"stage_description"`
	Fertilizers      []ScheduledFertilizer `json:"fertilizers" bson:"fertilizers"`
}

// CostLine prices a single plan entry.
type CostLine struct {
	Name      string  `json:"name" bson:"name"`
	Quantity  float64 `json:"quantity" bson:"quantity"`
	UnitCost  float64 `json:"unitCost" bson:"unit_cost"`
	TotalCost float64 `json:"totalCost" bson:"total_cost"`
}

// CostBreakdown prices a full plan. All quantities are per hectare so both totals match.
type CostBreakdown struct {
	TotalCost      float64    `json:"totalCost" bson:"total_cost"`
	CostPerHectare float64    `json:"costPerHectare" bson:"cost_per_hectare"`
	Details        []CostLine `json:"details" bson:"details"`
}

// YieldFactors splits the predicted improvement by contributor.
type YieldFactors struct {
	SoilHealth    int `json:"soilHealth" bson:"soil_health"`
	Weather       int `json:"weather" bson:"weather"`
	Fertilization int `json:"fertilization" bson:"fertilization"`
}

// YieldPrediction is a coarse estimate of the yield gain from following the plan.
type YieldPrediction struct {
	BaseYield            string       `json:"baseYield" bson:"base_yield"`
	PredictedImprovement int          `json:"predictedImprovement" bson:"predicted_improvement"`
	Factors              YieldFactors `json:"factors" bson:"factors"`
}

// Recommendation is the composite output of the recommendation engine.
type Recommendation struct {
	Deficiency          NPK                   `json:"deficiency" bson:"deficiency"`
	FertilizerPlan      []FertilizerPlanEntry `json:"fertilizerPlan" bson:"fertilizer_plan"`
	ApplicationSchedule []ScheduleStage       `json:"applicationSchedule" bson:"application_schedule"`
	CostBreakdown       *CostBreakdown        `json:"costBreakdown" bson:"cost_breakdown,omitempty"`
	EducationalTips     []string              `json:"educationalTips" bson:"educational_tips"`
	YieldPrediction     *YieldPrediction      `json:"yieldPrediction" bson:"yield_prediction,omitempty"`
}

// RecommendationRecord is an archived request together with its result.
type RecommendationRecord struct {
	ID             string           `json:"id" bson:"_id"`
	Crop           CropID           `json:"crop" bson:"crop"`
	Region         RegionID         `json:"region,omitempty" bson:"region,omitempty"`
	Soil           SoilSample       `json:"soil" bson:"soil"`
	Weather        *WeatherAnalysis `json:"weather,omitempty" bson:"weather,omitempty"`
	Source         string           `json:"source" bson:"source"`
	Recommendation Recommendation   `json:"recommendation" bson:"recommendation"`
	CreatedAt      time.Time        `json:"createdAt" bson:"created_at"`
}
