package recommendation

import (
	"math"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
)

const (
	optimalPH           = 6.5
	fertilizationFactor = 10
)

// PredictYield estimates the yield gain as the sum of a soil health, a weather and a constant
// fertilization factor. The base yield is a static label, not a computation.
func PredictYield(baseYield string, soil models.SoilSample, weather *models.WeatherAnalysis) *models.YieldPrediction {
	soilHealth := soilHealthFactor(soil)
	weatherScore := weatherFactor(weather)

	return &models.YieldPrediction{
		BaseYield:            baseYield,
		PredictedImprovement: soilHealth + weatherScore + fertilizationFactor,
		Factors: models.YieldFactors{
			SoilHealth:    soilHealth,
			Weather:       weatherScore,
			Fertilization: fertilizationFactor,
		},
	}
}

func soilHealthFactor(soil models.SoilSample) int {
	factor := 0

	switch diff := math.Abs(soil.PH - optimalPH); {
	case diff < 0.5:
		factor += 5
	case diff < 1.0:
		factor += 3
	default:
		factor++
	}

	switch {
	case soil.OrganicMatter > 3.0:
		factor += 5
	case soil.OrganicMatter > 1.0:
		factor += 3
	default:
		factor++
	}

	return factor
}

func weatherFactor(weather *models.WeatherAnalysis) int {
	switch {
	case weather == nil:
		return 5
	case weather.IsSuitable:
		return 8
	default:
		return 3
	}
}
