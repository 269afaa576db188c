package power

import "github.com/lox/skyra/internal/models"

type valueRange struct {
	min, max float64
}

// plausibleRanges bound each variable to values that can physically occur in
// its upstream unit.
var plausibleRanges = map[models.Variable]valueRange{
	models.VarTemperature:      {-95, 65}, // °C
	models.VarSpecificHumidity: {0, 40},   // g/kg
	models.VarWindSpeed:        {0, 120},  // m/s
	models.VarSurfacePressure:  {30, 110}, // kPa
	models.VarPrecipitation:    {0, 2000}, // mm/day
}

// Plausible reports whether value is a believable reading for v.
func Plausible(v models.Variable, value float64) bool {
	r, ok := plausibleRanges[v]
	if !ok {
		return true
	}
	return value >= r.min && value <= r.max
}
