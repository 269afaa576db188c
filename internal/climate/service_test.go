package climate

import (
	"context"
	"errors"
	"testing"

	"github.com/lox/skyra/internal/models"
)

type fakeFetcher struct {
	table     models.Table
	err       error
	calls     int
	startYear int
	endYear   int
}

func (f *fakeFetcher) FetchTable(ctx context.Context, loc models.Location, startYear, endYear int) (models.Table, error) {
	f.calls++
	f.startYear, f.endYear = startYear, endYear
	return f.table, f.err
}

func TestService_AnalyzeDate(t *testing.T) {
	fetcher := &fakeFetcher{table: tableOf(
		row("2020-01-01", map[models.Variable]float64{models.VarTemperature: 37.0}),
	)}
	svc := NewService(fetcher)

	stats, err := svc.AnalyzeDate(context.Background(), Query{
		Location:  models.Location{Latitude: 30, Longitude: 31},
		Date:      date("2026-01-01"),
		StartYear: 2015,
		EndYear:   2024,
	})
	if err != nil {
		t.Fatalf("AnalyzeDate: %v", err)
	}
	if stats.Temperature.AvgFahrenheit != 98.6 {
		t.Errorf("AvgFahrenheit = %v, want 98.6", stats.Temperature.AvgFahrenheit)
	}
	if fetcher.startYear != 2015 || fetcher.endYear != 2024 {
		t.Errorf("years = %d-%d, want 2015-2024", fetcher.startYear, fetcher.endYear)
	}
}

func TestService_InvalidCoordinate(t *testing.T) {
	tests := []struct {
		name  string
		loc   models.Location
		field string
	}{
		{"latitude too high", models.Location{Latitude: 90.5}, "Latitude"},
		{"latitude too low", models.Location{Latitude: -91}, "Latitude"},
		{"longitude too high", models.Location{Longitude: 180.01}, "Longitude"},
		{"longitude too low", models.Location{Longitude: -200}, "Longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			svc := NewService(fetcher)
			_, err := svc.AnalyzeDate(context.Background(), Query{Location: tt.loc, Date: date("2026-01-01")})
			var ic *models.InvalidCoordinateError
			if !errors.As(err, &ic) {
				t.Fatalf("err = %v, want *InvalidCoordinateError", err)
			}
			if ic.Field != tt.field {
				t.Errorf("Field = %q, want %q", ic.Field, tt.field)
			}
			if fetcher.calls != 0 {
				t.Error("fetcher should not be called for invalid coordinates")
			}
		})
	}
}

func TestService_PropagatesErrors(t *testing.T) {
	fetchErr := errors.New("upstream down")
	svc := NewService(&fakeFetcher{err: fetchErr})
	stats, err := svc.AnalyzeDate(context.Background(), Query{Date: date("2026-01-01")})
	if !errors.Is(err, fetchErr) {
		t.Errorf("err = %v, want fetch error", err)
	}
	if stats != nil {
		t.Error("expected no partial result")
	}

	svc = NewService(&fakeFetcher{table: tableOf(row("2021-02-28", nil))})
	_, err = svc.AnalyzeDate(context.Background(), Query{Date: date("2028-02-29")})
	var nd *NoDataError
	if !errors.As(err, &nd) {
		t.Errorf("err = %v, want *NoDataError", err)
	}
}
