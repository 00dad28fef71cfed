package weather

import (
	"strings"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
	"github.com/mamadbah2/fertiplan/internal/reference"
)

// Fallbacks for readings the observation leaves out.
const (
	defaultTemperatureC = 25
	defaultHumidityPct  = 60
	defaultWindSpeedMS  = 5
	defaultRainMM       = 0
	defaultCondition    = "Clear"

	heavyRainMM = 5
)

const (
	tempLowAdvice     = "Temperature is too low for optimal nutrient uptake. Consider waiting for warmer conditions or use foliar spray for better absorption."
	tempHighAdvice    = "Temperature is high, which may cause fertilizer volatilization. Apply in the early morning or evening and consider incorporating into soil."
	tempOKAdvice      = "Current temperature is optimal for fertilizer application and nutrient uptake."
	humidityLowAdvice = "Low humidity may reduce fertilizer effectiveness. Consider irrigating before application or apply during higher humidity periods."
	humidityHiAdvice  = "High humidity may increase disease risk. Ensure good air circulation and consider using fungicides alongside fertilizers."
	humidityOKAdvice  = "Current humidity levels are suitable for fertilizer application."
	rainLightAdvice   = "Light rain is beneficial for dissolving fertilizers. Good time for application if rain stops soon."
	rainHeavyAdvice   = "Heavy rain may wash away applied fertilizers. Wait until rain subsides and soil drains adequately."
	rainNoneAdvice    = "No rain detected. Consider irrigating after fertilizer application for better dissolution."
	windHighAdvice    = "High wind speeds may cause uneven distribution of fertilizers. Wait for calmer conditions, especially for foliar sprays."
	windOKAdvice      = "Current wind conditions are suitable for even fertilizer distribution."
)

// Analyzer turns a raw observation into the analysis the recommendation engine consumes.
type Analyzer struct {
	thresholds reference.WeatherThresholds
}

// NewAnalyzer builds an analyzer bound to the given suitability thresholds.
func NewAnalyzer(thresholds reference.WeatherThresholds) *Analyzer {
	return &Analyzer{thresholds: thresholds}
}

// Analyze evaluates application suitability and advice. A nil observation yields nil.
func (a *Analyzer) Analyze(obs *models.WeatherObservation) *models.WeatherAnalysis {
	if obs == nil {
		return nil
	}

	temp := valueOr(obs.TemperatureC, defaultTemperatureC)
	humidity := valueOr(obs.HumidityPct, defaultHumidityPct)
	wind := valueOr(obs.WindSpeedMS, defaultWindSpeedMS)
	rain := valueOr(obs.RainMM, defaultRainMM)
	condition := obs.Condition
	if condition == "" {
		condition = defaultCondition
	}

	return &models.WeatherAnalysis{
		Temperature: temp,
		Humidity:    humidity,
		WindSpeed:   wind,
		Rain:        rain,
		Condition:   condition,
		IsSuitable:  a.suitable(temp, humidity, wind, rain, condition),
		Recommendations: models.WeatherRecommendations{
			Temperature: a.temperatureAdvice(temp),
			Humidity:    a.humidityAdvice(humidity),
			Rain:        rainAdvice(rain),
			Wind:        a.windAdvice(wind),
		},
	}
}

func (a *Analyzer) suitable(temp, humidity, wind, rain float64, condition string) bool {
	t := a.thresholds
	if rain >= t.RainThresholdMM {
		return false
	}
	if temp < t.MinTemperatureC || temp > t.MaxTemperatureC {
		return false
	}
	if humidity < t.MinHumidityPct || humidity > t.MaxHumidityPct {
		return false
	}
	if wind >= t.MaxWindSpeedMS {
		return false
	}
	for _, bad := range t.UnsuitableConditions {
		if strings.EqualFold(bad, condition) {
			return false
		}
	}
	return true
}

func (a *Analyzer) temperatureAdvice(temp float64) string {
	switch {
	case temp < a.thresholds.MinTemperatureC:
		return tempLowAdvice
	case temp > a.thresholds.MaxTemperatureC:
		return tempHighAdvice
	default:
		return tempOKAdvice
	}
}

func (a *Analyzer) humidityAdvice(humidity float64) string {
	switch {
	case humidity < a.thresholds.MinHumidityPct:
		return humidityLowAdvice
	case humidity > a.thresholds.MaxHumidityPct:
		return humidityHiAdvice
	default:
		return humidityOKAdvice
	}
}

func rainAdvice(rain float64) string {
	switch {
	case rain >= heavyRainMM:
		return rainHeavyAdvice
	case rain > 0:
		return rainLightAdvice
	default:
		return rainNoneAdvice
	}
}

func (a *Analyzer) windAdvice(wind float64) string {
	if wind > a.thresholds.MaxWindSpeedMS {
		return windHighAdvice
	}
	return windOKAdvice
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
