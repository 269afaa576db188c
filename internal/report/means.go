package report

import "github.com/lox/skyra/internal/models"

// Means flattens stats into the headline value per variable that the
// summarizer is prompted with.
func Means(stats *models.Stats) map[string]float64 {
	values := make(map[string]float64)
	if t := stats.Temperature; t != nil {
		values["temperature_avg_celsius"] = t.AvgCelsius
		values["temperature_avg_fahrenheit"] = t.AvgFahrenheit
		values["very_hot_probability_pct"] = t.VeryHotProb
		values["very_cold_probability_pct"] = t.VeryColdProb
	}
	if r := stats.Rain; r != nil {
		values["rain_avg_mm"] = r.AvgMM
		values["rain_probability_pct"] = r.RainyDayProb
		values["heavy_rain_probability_pct"] = r.HeavyRainProb
	}
	if h := stats.SpecificHumidity; h != nil {
		values["specific_humidity_avg_g_kg"] = h.AvgGKg
	}
	if w := stats.Wind; w != nil {
		values["wind_avg_mph"] = w.AvgMPH
		values["very_windy_probability_pct"] = w.VeryWindyProb
	}
	if p := stats.Pressure; p != nil {
		values["pressure_avg_mb"] = p.AvgMB
	}
	if c := stats.Comfort; c != nil {
		values["very_uncomfortable_probability_pct"] = c.VeryUncomfortableProb
	}
	return values
}
