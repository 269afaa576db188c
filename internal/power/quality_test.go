package power

import (
	"math"
	"testing"

	"github.com/lox/skyra/internal/models"
)

func TestPlausible(t *testing.T) {
	tests := []struct {
		v     models.Variable
		value float64
		want  bool
	}{
		{models.VarTemperature, 37, true},
		{models.VarTemperature, -89.2, true},
		{models.VarTemperature, 80, false},
		{models.VarSpecificHumidity, 0, true},
		{models.VarSpecificHumidity, -0.5, false},
		{models.VarWindSpeed, 150, false},
		{models.VarSurfacePressure, 101.3, true},
		{models.VarSurfacePressure, 1013, false},
		{models.VarPrecipitation, -1, false},
		{models.VarPrecipitation, math.NaN(), false},
	}

	for _, tt := range tests {
		if got := Plausible(tt.v, tt.value); got != tt.want {
			t.Errorf("Plausible(%s, %v) = %v, want %v", tt.v, tt.value, got, tt.want)
		}
	}
}

func TestToTable_DropsImplausible(t *testing.T) {
	raw := &Raw{
		FillValue: DefaultFillValue,
		Parameter: map[string]map[string]*float64{
			"T2M": {"20240101": f(3), "20240102": f(250)},
			"PS":  {"20240101": f(1013), "20240102": f(100.9)},
		},
	}

	table, err := ToTable(raw)
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(table.Rows))
	}
	if table.Rows[1].TemperatureC.Valid {
		t.Errorf("implausible temperature kept: %+v", table.Rows[1].TemperatureC)
	}
	if table.Rows[0].SurfacePressureKPa.Valid {
		t.Errorf("implausible pressure kept: %+v", table.Rows[0].SurfacePressureKPa)
	}
	if got := table.Count(models.VarSurfacePressure); got != 1 {
		t.Errorf("Count(pressure) = %d, want 1", got)
	}
}
