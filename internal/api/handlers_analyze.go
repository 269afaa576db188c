package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/lox/skyra/internal/climate"
	"github.com/lox/skyra/internal/models"
	"github.com/lox/skyra/internal/report"
)

const maxBodyBytes = 1 << 20

type analyzeRequest struct {
	Latitude   *float64 `json:"latitude" validate:"required"`
	Longitude  *float64 `json:"longitude" validate:"required"`
	FutureDate string   `json:"future_date" validate:"required,datetime=2006-01-02"`
	Activity   string   `json:"activity" validate:"max=200"`
	StartYear  int      `json:"start_year" validate:"omitempty,gte=1981,lte=2100"`
	EndYear    int      `json:"end_year" validate:"omitempty,gte=1981,lte=2100"`
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, fmt.Sprintf("decode request: %v", err))
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, err.Error())
		return false
	}
	return true
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	export := r.URL.Query().Get("export")
	switch export {
	case "", "none", "json", "csv":
	default:
		writeError(w, http.StatusBadRequest, kindBadRequest, fmt.Sprintf("unknown export %q: want none, json or csv", export))
		return
	}

	var req analyzeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.StartYear != 0 && req.EndYear != 0 && req.StartYear > req.EndYear {
		writeError(w, http.StatusBadRequest, kindBadRequest, "start_year must not be after end_year")
		return
	}

	target, err := time.Parse("2006-01-02", req.FutureDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, fmt.Sprintf("parse future_date: %v", err))
		return
	}
	loc := models.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}

	stats, err := s.analyzer.AnalyzeDate(r.Context(), climate.Query{
		Location:  loc,
		Date:      target,
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
	})
	if err != nil {
		writeFailure(w, err)
		return
	}

	summary := s.summarize(r, req.Activity, stats)

	switch export {
	case "json":
		doc := report.Export(loc, target, stats, s.now())
		doc.LLMSummary = summary
		writeJSON(w, http.StatusOK, doc)

	case "csv":
		var buf bytes.Buffer
		if err := report.CSVWithSummary(&buf, loc, target, stats, summary); err != nil {
			writeFailure(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="weather_analysis_%s.csv"`, target.Format("2006-01-02")))
		w.Write(buf.Bytes())

	default:
		text := report.Text(loc, target, stats)
		if summary != "" {
			text += "\n\nActivity Recommendation:\n" + summary
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(text))
	}
}

// summarize returns the advisor's recommendation, or "" when the advisor is
// disabled or fails. The analysis itself is still served.
func (s *Server) summarize(r *http.Request, activity string, stats *models.Stats) string {
	if !s.advisor.Enabled() {
		return ""
	}
	summary, err := s.advisor.Summarize(r.Context(), activity, report.Means(stats))
	if err != nil {
		log.Printf("api: summary unavailable: %v", err)
		return ""
	}
	return summary
}
