package models

// FertilizerID enumerates the fertilizers the reference tables know about.
type FertilizerID string

const (
	FertilizerUrea       FertilizerID = "urea"
	FertilizerDAP        FertilizerID = "dap"
	FertilizerMOP        FertilizerID = "mop"
	FertilizerNPKComplex FertilizerID = "npk_complex"
	FertilizerSSP        FertilizerID = "ssp"
	FertilizerCAN        FertilizerID = "can"
)

// FertilizerSpec describes a commercial fertilizer. Content is expressed in percent.
type FertilizerSpec struct {
	ID          FertilizerID `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Composition string       `json:"composition" yaml:"composition"`
	Content     NPK          `json:"nutrientContent" yaml:"content"`
	UnitCost    float64      `json:"unitCost" yaml:"unit_cost"` // per kg
	Description string       `json:"description" yaml:"description"`
}

// Fraction returns the nutrient content as a share of one kilogram.
func (f FertilizerSpec) Fraction() NPK {
	return NPK{N: f.Content.N / 100, P: f.Content.P / 100, K: f.Content.K / 100}
}
