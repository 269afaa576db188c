package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lox/skyra/internal/advisor"
	"github.com/lox/skyra/internal/api"
	"github.com/lox/skyra/internal/climate"
	"github.com/lox/skyra/internal/power"
	"github.com/lox/skyra/internal/session"
	"github.com/lox/skyra/internal/store"
)

type ServeCmd struct {
	Port       string        `env:"PORT" help:"HTTP server port." default:"8080"`
	DB         string        `name:"db" env:"SKYRA_DB" help:"SQLite path for chat sessions. Sessions are kept in memory when empty."`
	SessionTTL time.Duration `name:"session-ttl" env:"SKYRA_SESSION_TTL" help:"Idle time before a chat session is dropped." default:"24h"`
	SessionCap int           `name:"session-cap" env:"SKYRA_SESSION_CAP" help:"Maximum messages kept per chat session." default:"50"`
}

func (c *ServeCmd) Run(g *Globals) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sessions, err := c.openSessions(ctx)
	if err != nil {
		return err
	}

	service := climate.NewService(power.NewClient(g.PowerURL, nil))
	server := api.NewServer(service, g.advisor(), sessions, c.Port)

	log.Printf("starting server on :%s", c.Port)
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func (c *ServeCmd) openSessions(ctx context.Context) (session.Store, error) {
	sweepEvery := max(c.SessionTTL/4, time.Minute)

	if c.DB == "" {
		mem := session.NewMemoryStore(c.SessionCap, c.SessionTTL)
		go mem.RunSweeper(ctx, sweepEvery)
		log.Println("sessions: in memory")
		return mem, nil
	}

	db, err := sql.Open("sqlite", c.DB)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db, c.SessionCap, c.SessionTTL)
	if err := st.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Printf("sessions: sqlite %s", c.DB)

	go func() {
		defer db.Close()
		ticker := time.NewTicker(sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := st.DeleteExpired(ctx, c.SessionTTL)
				if err != nil {
					log.Printf("sessions: expire: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("sessions: expired %d idle sessions", n)
				}
			}
		}
	}()
	return st, nil
}

func (g *Globals) advisor() *advisor.Advisor {
	return advisor.New(advisor.Config{
		APIKey:       g.LLMKey,
		BaseURL:      g.LLMBaseURL,
		SummaryModel: g.LLMModel,
		ChatModel:    g.LLMChatModel,
	})
}
