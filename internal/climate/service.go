package climate

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lox/skyra/internal/metrics"
	"github.com/lox/skyra/internal/models"
)

// TableFetcher retrieves the observation table for a location and year
// range. Zero years select the provider defaults.
type TableFetcher interface {
	FetchTable(ctx context.Context, loc models.Location, startYear, endYear int) (models.Table, error)
}

// Service runs the fetch-then-analyse pipeline for a single request. It
// holds no per-request state.
type Service struct {
	fetcher TableFetcher
}

func NewService(fetcher TableFetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Query describes one analysis request.
type Query struct {
	Location  models.Location
	Date      time.Time
	StartYear int
	EndYear   int
}

// AnalyzeDate validates the location, fetches the table and analyses the
// target date. On failure no partial result is returned.
func (s *Service) AnalyzeDate(ctx context.Context, q Query) (*models.Stats, error) {
	if err := q.Location.Validate(); err != nil {
		metrics.AnalysesTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	table, err := s.fetcher.FetchTable(ctx, q.Location, q.StartYear, q.EndYear)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("fetch_error").Inc()
		return nil, err
	}

	stats, err := Analyze(table, q.Date)
	if err != nil {
		var nd *NoDataError
		if errors.As(err, &nd) {
			metrics.AnalysesTotal.WithLabelValues("no_data").Inc()
		}
		return nil, err
	}

	metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	log.Printf("climate: analysed %s for %s (%d samples from %d rows)",
		q.Date.Format("Jan 2"), q.Location, stats.SampleSize, len(table.Rows))
	return stats, nil
}
