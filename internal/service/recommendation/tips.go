package recommendation

import "github.com/mamadbah2/fertiplan/internal/domain/models"

const (
	maxTips          = 5
	acidicTipPH      = 6.0
	alkalineTipPH    = 7.5
	lowOrganicTipPct = 0.5
)

// SelectTips gathers advice in a fixed order (soil, crop, weather, nutrient management, water)
// and keeps the first five. Later categories can be cut off entirely.
func (e *Engine) SelectTips(crop models.CropProfile, soil models.SoilSample, weather *models.WeatherAnalysis) []string {
	lists := e.catalog.Tips()
	tips := make([]string, 0, 12)

	switch {
	case soil.PH < acidicTipPH:
		tips = append(tips, firstN(lists.AcidicSoil, 2)...)
	case soil.PH > alkalineTipPH:
		tips = append(tips, firstN(lists.AlkalineSoil, 2)...)
	}

	if soil.OrganicMatter < lowOrganicTipPct {
		tips = append(tips, firstN(lists.LowOrganicMatter, 2)...)
	}

	tips = append(tips, firstN(crop.Tips, 2)...)

	if weather != nil {
		tips = append(tips, weather.Recommendations.Temperature, weather.Recommendations.Humidity)
	}

	tips = append(tips, firstN(lists.IntegratedNutrientManagement, 2)...)
	tips = append(tips, firstN(lists.WaterManagement, 1)...)

	return firstN(tips, maxTips)
}

func firstN(list []string, n int) []string {
	if len(list) < n {
		return list
	}
	return list[:n]
}
