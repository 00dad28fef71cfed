package recommendation

import (
	"math"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
)

const (
	acidicPHThreshold   = 5.5
	alkalinePHThreshold = 7.5
	lowOrganicMatter    = 0.5
	highOrganicMatter   = 3.0
)

// CalculateDeficiency returns how much of each nutrient is still needed after the soil supply,
// scaled by the soil pH and organic-matter multipliers. The result is never negative.
//
// The pH multiplier applies to N, P and K alike even though acidity mostly locks up phosphorus.
func CalculateDeficiency(req models.NutrientRequirements, soil models.SoilSample) models.NPK {
	n := math.Max(0, req.N.Midpoint()-soil.N)
	p := math.Max(0, req.P.Midpoint()-soil.P)
	k := math.Max(0, req.K.Midpoint()-soil.K)

	ph := phMultiplier(soil.PH)
	om := organicMatterMultiplier(soil.OrganicMatter)

	return models.NPK{
		N: n * ph * om,
		P: p * ph * om,
		K: k * ph * om,
	}
}

func phMultiplier(ph float64) float64 {
	switch {
	case ph < acidicPHThreshold:
		return 1.2
	case ph > alkalinePHThreshold:
		return 1.1
	default:
		return 1.0
	}
}

func organicMatterMultiplier(pct float64) float64 {
	switch {
	case pct < lowOrganicMatter:
		return 1.15
	case pct > highOrganicMatter:
		return 0.9
	default:
		return 1.0
	}
}
