package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lox/skyra/internal/climate"
	"github.com/lox/skyra/internal/imagegen"
	"github.com/lox/skyra/internal/models"
)

// handleCard serves a PNG odds card for ?lat=&lon=&date=.
func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "lon must be a number")
		return
	}
	target, err := time.Parse("2006-01-02", q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "date must be YYYY-MM-DD")
		return
	}
	loc := models.Location{Latitude: lat, Longitude: lon}

	// Odds depend only on the calendar day, not the year.
	key := fmt.Sprintf("%s|%02d-%02d", loc, target.Month(), target.Day())
	if data, ok := s.cardCache.Get(key); ok {
		serveCard(w, data)
		return
	}

	stats, err := s.analyzer.AnalyzeDate(r.Context(), climate.Query{Location: loc, Date: target})
	if err != nil {
		writeFailure(w, err)
		return
	}

	data, err := imagegen.RenderCard(loc, target, stats)
	if err != nil {
		writeFailure(w, err)
		return
	}
	s.cardCache.Set(key, data)
	serveCard(w, data)
}

func serveCard(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
