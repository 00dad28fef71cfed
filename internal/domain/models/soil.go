package models

// SoilSample is a soil test supplied with each recommendation request.
type SoilSample struct {
	Type          string  `json:"type" bson:"type"`
	PH            float64 `json:"ph" bson:"ph"`
	N             float64 `json:"n" bson:"n"`
	P             float64 `json:"p" bson:"p"`
	K             float64 `json:"k" bson:"k"`
	OrganicMatter float64 `json:"organicMatter" bson:"organic_matter"` // percent
}

// NPK is a nitrogen/phosphorus/potassium triple. Depending on context it holds kg/ha or percent.
type NPK struct {
	N float64 `json:"n" bson:"n" yaml:"n"`
	P float64 `json:"p" bson:"p" yaml:"p"`
	K float64 `json:"k" bson:"k" yaml:"k"`
}

// Scale multiplies every nutrient by its counterpart in m.
func (v NPK) Scale(m NPK) NPK {
	return NPK{N: v.N * m.N, P: v.P * m.P, K: v.K * m.K}
}

// RegionID identifies a regional adjustment.
type RegionID string

// RegionalAdjustment biases nutrient deficiencies for typical regional soil and climate.
type RegionalAdjustment struct {
	ID         RegionID `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Multiplier NPK      `json:"multiplier" yaml:"multiplier"`
}
