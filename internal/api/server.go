package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/skyra/internal/advisor"
	"github.com/lox/skyra/internal/climate"
	"github.com/lox/skyra/internal/imagegen"
	"github.com/lox/skyra/internal/models"
	"github.com/lox/skyra/internal/session"
)

// Analyzer runs one historical-odds analysis.
type Analyzer interface {
	AnalyzeDate(ctx context.Context, q climate.Query) (*models.Stats, error)
}

type Server struct {
	analyzer  Analyzer
	advisor   *advisor.Advisor
	sessions  session.Store
	cardCache *imagegen.CardCache
	validate  *validator.Validate
	port      string
	now       func() time.Time
}

func NewServer(analyzer Analyzer, adv *advisor.Advisor, sessions session.Store, port string) *Server {
	return &Server{
		analyzer:  analyzer,
		advisor:   adv,
		sessions:  sessions,
		cardCache: imagegen.NewCardCache(time.Hour),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		port:      port,
		now:       time.Now,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /card.png", s.handleCard)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

type HealthStatus struct {
	Status   string `json:"status"`
	Advisor  string `json:"advisor"`
	Sessions int    `json:"sessions"`
	Error    string `json:"error,omitempty"`
}

type sessionCounter interface {
	CountSessions(ctx context.Context) (int, error)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthStatus{Status: "ok", Advisor: "disabled"}
	if s.advisor.Enabled() {
		health.Advisor = "enabled"
	}

	if counter, ok := s.sessions.(sessionCounter); ok {
		n, err := counter.CountSessions(r.Context())
		if err != nil {
			health.Status = "error"
			health.Error = err.Error()
		}
		health.Sessions = n
	}

	w.Header().Set("Content-Type", "application/json")
	if health.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(health); err != nil {
		log.Printf("health: write response: %v", err)
	}
}
