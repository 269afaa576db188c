package climate

import (
	"fmt"
	"time"

	"github.com/lox/skyra/internal/models"
)

// Thresholds for the derived probabilities.
const (
	veryHotF        = 90.0
	veryColdF       = 32.0
	rainyDayMM      = 0.1
	heavyRainMM     = 10.0
	highHumidityGKg = 15.0
	veryWindyMPH    = 10.0
	extremeWindMPH  = 15.0
	lowPressureMB   = 1010.0

	uncomfortableHotF  = 85.0
	uncomfortableHumid = 15.0
	uncomfortableColdF = 35.0
)

// NoDataError reports that no historical record falls on the target month/day.
type NoDataError struct {
	Month time.Month
	Day   int
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no historical data found for %d/%d", int(e.Month), e.Day)
}

// Analyze computes statistics for every year's occurrence of target's month
// and day in table. Each variable is summarised over its own non-missing
// values; a variable with none is left out of the result.
func Analyze(table models.Table, target time.Time) (*models.Stats, error) {
	month, day := target.Month(), target.Day()

	var matched []models.Observation
	for _, obs := range table.Rows {
		if obs.Month == int(month) && obs.Day == day {
			matched = append(matched, obs)
		}
	}
	if len(matched) == 0 {
		return nil, &NoDataError{Month: month, Day: day}
	}

	stats := &models.Stats{SampleSize: len(matched)}
	stats.Temperature = temperatureStats(column(matched, models.VarTemperature))
	stats.Rain = rainStats(column(matched, models.VarPrecipitation))
	stats.SpecificHumidity = humidityStats(column(matched, models.VarSpecificHumidity))
	stats.Wind = windStats(column(matched, models.VarWindSpeed))
	stats.Pressure = pressureStats(column(matched, models.VarSurfacePressure))
	if stats.Temperature != nil && stats.SpecificHumidity != nil {
		stats.Comfort = comfortStats(matched)
	}
	return stats, nil
}

// column returns the non-missing readings of v.
func column(rows []models.Observation, v models.Variable) []float64 {
	var vals []float64
	for i := range rows {
		if n := rows[i].Value(v); n.Valid {
			vals = append(vals, n.Float64)
		}
	}
	return vals
}

func temperatureStats(celsius []float64) *models.TemperatureStats {
	c, ok := summarize(celsius)
	if !ok {
		return nil
	}
	fahrenheit := mapValues(celsius, CelsiusToFahrenheit)
	f, _ := summarize(fahrenheit)
	return &models.TemperatureStats{
		AvgCelsius:    round(c.mean, 1),
		AvgFahrenheit: round(f.mean, 1),
		MinFahrenheit: round(f.min, 1),
		MaxFahrenheit: round(f.max, 1),
		StdFahrenheit: round(f.std, 1),
		VeryHotProb:   percent(fahrenheit, func(v float64) bool { return v > veryHotF }),
		VeryColdProb:  percent(fahrenheit, func(v float64) bool { return v < veryColdF }),
	}
}

func rainStats(mm []float64) *models.RainStats {
	s, ok := summarize(mm)
	if !ok {
		return nil
	}
	return &models.RainStats{
		AvgMM:         round(s.mean, 2),
		MaxMM:         round(s.max, 2),
		RainyDayProb:  percent(mm, func(v float64) bool { return v > rainyDayMM }),
		HeavyRainProb: percent(mm, func(v float64) bool { return v > heavyRainMM }),
	}
}

func humidityStats(gkg []float64) *models.HumidityStats {
	s, ok := summarize(gkg)
	if !ok {
		return nil
	}
	return &models.HumidityStats{
		AvgGKg:           round(s.mean, 2),
		MinGKg:           round(s.min, 2),
		MaxGKg:           round(s.max, 2),
		HighHumidityProb: percent(gkg, func(v float64) bool { return v > highHumidityGKg }),
	}
}

func windStats(ms []float64) *models.WindStats {
	s, ok := summarize(ms)
	if !ok {
		return nil
	}
	mph := mapValues(ms, MSToMPH)
	m, _ := summarize(mph)
	return &models.WindStats{
		AvgMS:           round(s.mean, 1),
		AvgMPH:          round(m.mean, 1),
		MaxMPH:          round(m.max, 1),
		VeryWindyProb:   percent(mph, func(v float64) bool { return v > veryWindyMPH }),
		ExtremeWindProb: percent(mph, func(v float64) bool { return v > extremeWindMPH }),
	}
}

func pressureStats(kpa []float64) *models.PressureStats {
	s, ok := summarize(kpa)
	if !ok {
		return nil
	}
	mb := mapValues(kpa, KPaToMillibar)
	m, _ := summarize(mb)
	return &models.PressureStats{
		AvgKPa:          round(s.mean, 2),
		AvgMB:           round(m.mean, 1),
		MinMB:           round(m.min, 1),
		MaxMB:           round(m.max, 1),
		LowPressureProb: percent(mb, func(v float64) bool { return v < lowPressureMB }),
	}
}

// comfortStats considers only rows carrying both temperature and humidity.
func comfortStats(rows []models.Observation) *models.ComfortStats {
	total, uncomfortable := 0, 0
	for i := range rows {
		t, h := rows[i].TemperatureC, rows[i].SpecificHumidity
		if !t.Valid || !h.Valid {
			continue
		}
		total++
		f := CelsiusToFahrenheit(t.Float64)
		if (f > uncomfortableHotF && h.Float64 > uncomfortableHumid) || f < uncomfortableColdF {
			uncomfortable++
		}
	}
	if total == 0 {
		return nil
	}
	return &models.ComfortStats{
		VeryUncomfortableProb: round(float64(uncomfortable)/float64(total)*100, 1),
	}
}
