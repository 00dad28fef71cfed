package models

// WeatherObservation is a raw reading handed over by the caller. Nil fields fall back to defaults.
type WeatherObservation struct {
	Location     string   `json:"location,omitempty"`
	TemperatureC *float64 `json:"temperature,omitempty"`
	HumidityPct  *float64 `json:"humidity,omitempty"`
	WindSpeedMS  *float64 `json:"windSpeed,omitempty"`
	RainMM       *float64 `json:"rain,omitempty"`
	Condition    string   `json:"condition,omitempty"`
}

// WeatherRecommendations are the advisory strings produced by the weather analyzer.
type WeatherRecommendations struct {
	Temperature string `json:"temperature" bson:"temperature"`
	Humidity    string `json:"humidity" bson:"humidity"`
	Rain        string `json:"rain" bson:"rain"`
	Wind        string `json:"wind,omitempty" bson:"wind,omitempty"`
}

// WeatherAnalysis is the only weather shape the recommendation engine consumes.
type WeatherAnalysis struct {
	Temperature     float64                `json:"temperature" bson:"temperature"`
	Humidity        float64                `json:"humidity" bson:"humidity"`
	WindSpeed       float64                `json:"windSpeed" bson:"wind_speed"`
	Rain            float64                `json:"rain" bson:"rain"`
	Condition       string                 `json:"condition" bson:"condition"`
	IsSuitable      bool                   `json:"isSuitable" bson:"is_suitable"`
	Recommendations WeatherRecommendations `json:"recommendations" bson:"recommendations"`
}
