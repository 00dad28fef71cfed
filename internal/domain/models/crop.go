package models

// CropID identifies a crop profile in the reference tables.
type CropID string

// NutrientRange is a recommended application window in kg/ha.
type NutrientRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Midpoint returns the target used when computing deficiencies.
func (r NutrientRange) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

// NutrientRequirements holds the N, P and K ranges of a crop.
type NutrientRequirements struct {
	N NutrientRange `json:"n" yaml:"n"`
	P NutrientRange `json:"p" yaml:"p"`
	K NutrientRange `json:"k" yaml:"k"`
}

// GrowthStage is one step of a crop's development. Stages are ordered, index 0 is the earliest.
type GrowthStage struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Days        string `json:"days" yaml:"days"`
}

// CropProfile captures the static agronomy data known for a crop.
type CropProfile struct {
	ID           CropID               `json:"id" yaml:"id"`
	Name         string               `json:"name" yaml:"name"`
	Requirements NutrientRequirements `json:"nutrientRequirements" yaml:"requirements"`
	GrowthStages []GrowthStage        `json:"growthStages" yaml:"growth_stages"`
	Tips         []string             `json:"tips" yaml:"tips"`
	BaseYield    string               `json:"baseYield" yaml:"base_yield"`
}
