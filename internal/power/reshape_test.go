package power

import (
	"errors"
	"testing"
	"time"

	"github.com/lox/skyra/internal/models"
)

func f(v float64) *float64 { return &v }

func TestToTable(t *testing.T) {
	raw := &Raw{
		FillValue: -999,
		Parameter: map[string]map[string]*float64{
			"T2M":         {"20240102": f(5), "20240101": f(3.5), "20240229": f(-999)},
			"QV2M":        {"20240101": f(4.1), "20240102": f(3.9), "20240229": f(2.0)},
			"U10M":        {"20240101": f(2.2)},
			"PS":          {"20240101": f(101.3), "20240102": nil},
			"PRECTOTCORR": {"20240101": f(0), "20240102": f(12.5), "20240229": f(1)},
		},
	}

	table, err := ToTable(raw)
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}

	if len(table.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(table.Rows))
	}
	for i := 1; i < len(table.Rows); i++ {
		if !table.Rows[i-1].Date.Before(table.Rows[i].Date) {
			t.Errorf("rows not strictly increasing at %d", i)
		}
	}

	first := table.Rows[0]
	if first.Month != 1 || first.Day != 1 || first.DayOfYear != 1 {
		t.Errorf("calendar fields = %d/%d doy %d, want 1/1 doy 1", first.Month, first.Day, first.DayOfYear)
	}
	if !first.TemperatureC.Valid || first.TemperatureC.Float64 != 3.5 {
		t.Errorf("TemperatureC = %+v, want 3.5", first.TemperatureC)
	}

	second := table.Rows[1]
	if second.WindSpeedMS.Valid {
		t.Error("wind missing from series should be absent, not zero")
	}
	if second.SurfacePressureKPa.Valid {
		t.Error("null pressure should be absent")
	}

	leap := table.Rows[2]
	if leap.Month != 2 || leap.Day != 29 || leap.DayOfYear != 60 {
		t.Errorf("leap day calendar fields = %d/%d doy %d, want 2/29 doy 60", leap.Month, leap.Day, leap.DayOfYear)
	}
	if leap.TemperatureC.Valid {
		t.Error("fill value should be absent, not -999")
	}
	if !leap.PrecipitationMM.Valid || leap.PrecipitationMM.Float64 != 1 {
		t.Errorf("PrecipitationMM = %+v, want 1", leap.PrecipitationMM)
	}

	wantCounts := map[models.Variable]int{
		models.VarTemperature:      2,
		models.VarSpecificHumidity: 3,
		models.VarWindSpeed:        1,
		models.VarSurfacePressure:  1,
		models.VarPrecipitation:    3,
	}
	for v, want := range wantCounts {
		if got := table.Count(v); got != want {
			t.Errorf("Count(%s) = %d, want %d", v, got, want)
		}
	}
}

func TestToTable_MissingVariable(t *testing.T) {
	raw := &Raw{
		FillValue: -999,
		Parameter: map[string]map[string]*float64{
			"PRECTOTCORR": {"20240101": f(0)},
		},
	}
	table, err := ToTable(raw)
	if err != nil {
		t.Fatalf("ToTable: %v", err)
	}
	if got := table.Count(models.VarTemperature); got != 0 {
		t.Errorf("Count(temperature) = %d, want 0", got)
	}
	if got := table.Count(models.VarPrecipitation); got != 1 {
		t.Errorf("Count(precipitation) = %d, want 1", got)
	}
}

func TestToTable_UnknownVariable(t *testing.T) {
	raw := &Raw{Parameter: map[string]map[string]*float64{
		"WS50M": {"20240101": f(3)},
	}}
	_, err := ToTable(raw)
	var re *RetrievalError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want *RetrievalError", err)
	}
}

func TestToTable_MalformedKey(t *testing.T) {
	raw := &Raw{Parameter: map[string]map[string]*float64{
		"T2M": {"20240101": f(3), "2024-01-02": f(4)},
	}}
	table, err := ToTable(raw)
	var me *MalformedDateError
	if !errors.As(err, &me) {
		t.Fatalf("err = %v, want *MalformedDateError", err)
	}
	if me.Key != "2024-01-02" {
		t.Errorf("Key = %q, want 2024-01-02", me.Key)
	}
	if len(table.Rows) != 0 {
		t.Error("expected no table on malformed key")
	}
}

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"20240101", "2024-01-01", true},
		{"20240229", "2024-02-29", true},
		{"20230229", "", false},
		{"20241301", "", false},
		{"2024011", "", false},
		{"202401011", "", false},
		{"2024O101", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, err := ParseDateKey(tt.key)
		if (err == nil) != tt.ok {
			t.Errorf("ParseDateKey(%q) err = %v, want ok=%v", tt.key, err, tt.ok)
			continue
		}
		if !tt.ok {
			var me *MalformedDateError
			if !errors.As(err, &me) {
				t.Errorf("ParseDateKey(%q) err type = %T, want *MalformedDateError", tt.key, err)
			}
			continue
		}
		if got.Format("2006-01-02") != tt.want || got.Location() != time.UTC {
			t.Errorf("ParseDateKey(%q) = %v, want %s UTC", tt.key, got, tt.want)
		}
	}
}
