package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Variable identifies one of the daily climate series carried by a Table.
type Variable string

const (
	VarTemperature      Variable = "temperature"
	VarSpecificHumidity Variable = "specific_humidity"
	VarWindSpeed        Variable = "wind_speed"
	VarSurfacePressure  Variable = "surface_pressure"
	VarPrecipitation    Variable = "precipitation"
)

// AllVariables lists every variable in fetch order.
var AllVariables = []Variable{
	VarTemperature,
	VarSpecificHumidity,
	VarWindSpeed,
	VarSurfacePressure,
	VarPrecipitation,
}

var validate = validator.New()

// Location is a point on the globe in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// InvalidCoordinateError reports a latitude or longitude outside its valid range.
type InvalidCoordinateError struct {
	Field string
	Value float64
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinate: %s %g out of range", e.Field, e.Value)
}

// Validate checks the coordinate ranges.
func (l Location) Validate() error {
	err := validate.Struct(l)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		value := l.Latitude
		if field == "Longitude" {
			value = l.Longitude
		}
		return &InvalidCoordinateError{Field: field, Value: value}
	}
	return err
}

func (l Location) String() string {
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}

// Observation is one calendar day of climate readings.
// Month, Day and DayOfYear are derived from Date by NewObservation.
type Observation struct {
	Date               time.Time
	TemperatureC       sql.NullFloat64
	SpecificHumidity   sql.NullFloat64 // g/kg
	WindSpeedMS        sql.NullFloat64
	SurfacePressureKPa sql.NullFloat64
	PrecipitationMM    sql.NullFloat64
	Month              int
	Day                int
	DayOfYear          int
}

// NewObservation returns an empty observation for the given calendar day,
// normalised to UTC midnight.
func NewObservation(date time.Time) Observation {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return Observation{
		Date:      d,
		Month:     int(d.Month()),
		Day:       d.Day(),
		DayOfYear: d.YearDay(),
	}
}

// Value returns the reading for v.
func (o *Observation) Value(v Variable) sql.NullFloat64 {
	switch v {
	case VarTemperature:
		return o.TemperatureC
	case VarSpecificHumidity:
		return o.SpecificHumidity
	case VarWindSpeed:
		return o.WindSpeedMS
	case VarSurfacePressure:
		return o.SurfacePressureKPa
	case VarPrecipitation:
		return o.PrecipitationMM
	}
	return sql.NullFloat64{}
}

// Set stores a reading for v.
func (o *Observation) Set(v Variable, value float64) {
	n := sql.NullFloat64{Float64: value, Valid: true}
	switch v {
	case VarTemperature:
		o.TemperatureC = n
	case VarSpecificHumidity:
		o.SpecificHumidity = n
	case VarWindSpeed:
		o.WindSpeedMS = n
	case VarSurfacePressure:
		o.SurfacePressureKPa = n
	case VarPrecipitation:
		o.PrecipitationMM = n
	}
}

// Table is a date-ordered run of observations, one per calendar day.
type Table struct {
	Rows []Observation
}

// Count returns how many rows carry a reading for v.
func (t Table) Count(v Variable) int {
	n := 0
	for i := range t.Rows {
		if t.Rows[i].Value(v).Valid {
			n++
		}
	}
	return n
}

// Stats is the result of analysing one calendar date across all years.
// A nil block means the variable had no data for the date.
type Stats struct {
	Temperature      *TemperatureStats `json:"temperature,omitempty"`
	Rain             *RainStats        `json:"rain,omitempty"`
	SpecificHumidity *HumidityStats    `json:"specific_humidity,omitempty"`
	Wind             *WindStats        `json:"wind,omitempty"`
	Pressure         *PressureStats    `json:"pressure,omitempty"`
	Comfort          *ComfortStats     `json:"comfort,omitempty"`
	SampleSize       int               `json:"sample_size"`
}

type TemperatureStats struct {
	AvgCelsius    float64 `json:"avg_celsius"`
	AvgFahrenheit float64 `json:"avg_fahrenheit"`
	MinFahrenheit float64 `json:"min_fahrenheit"`
	MaxFahrenheit float64 `json:"max_fahrenheit"`
	StdFahrenheit float64 `json:"std_fahrenheit"`
	VeryHotProb   float64 `json:"very_hot_prob"`
	VeryColdProb  float64 `json:"very_cold_prob"`
}

type RainStats struct {
	AvgMM         float64 `json:"avg_mm"`
	MaxMM         float64 `json:"max_mm"`
	RainyDayProb  float64 `json:"rainy_day_prob"`
	HeavyRainProb float64 `json:"heavy_rain_prob"`
}

type HumidityStats struct {
	AvgGKg           float64 `json:"avg_g_kg"`
	MinGKg           float64 `json:"min_g_kg"`
	MaxGKg           float64 `json:"max_g_kg"`
	HighHumidityProb float64 `json:"high_humidity_prob"`
}

type WindStats struct {
	AvgMS           float64 `json:"avg_ms"`
	AvgMPH          float64 `json:"avg_mph"`
	MaxMPH          float64 `json:"max_mph"`
	VeryWindyProb   float64 `json:"very_windy_prob"`
	ExtremeWindProb float64 `json:"extreme_wind_prob"`
}

type PressureStats struct {
	AvgKPa          float64 `json:"avg_kpa"`
	AvgMB           float64 `json:"avg_mb"`
	MinMB           float64 `json:"min_mb"`
	MaxMB           float64 `json:"max_mb"`
	LowPressureProb float64 `json:"low_pressure_prob"`
}

type ComfortStats struct {
	VeryUncomfortableProb float64 `json:"very_uncomfortable_prob"`
}
