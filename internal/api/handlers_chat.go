package api

import (
	"net/http"

	"github.com/lox/skyra/internal/session"
)

type chatRequest struct {
	SessionID     string             `json:"session_id" validate:"omitempty,uuid"`
	Activity      string             `json:"activity" validate:"max=200"`
	WeatherValues map[string]float64 `json:"weather_values"`
	Message       string             `json:"message" validate:"required,max=4000"`
}

type chatResponse struct {
	SessionID string          `json:"session_id"`
	Reply     string          `json:"reply"`
	History   []session.Entry `json:"history"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !s.advisor.Enabled() {
		writeError(w, http.StatusServiceUnavailable, kindAdvisorDisabled, "chat is not configured")
		return
	}

	id := req.SessionID
	if id == "" {
		id = session.NewID()
	}

	history, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, err)
		return
	}

	reply, err := s.advisor.Reply(r.Context(), req.Activity, req.WeatherValues, history, req.Message)
	if err != nil {
		writeError(w, http.StatusBadGateway, kindAdvisorFailed, err.Error())
		return
	}

	now := s.now()
	turn := []session.Entry{
		{Role: session.RoleUser, Content: req.Message, CreatedAt: now},
		{Role: session.RoleAssistant, Content: reply, CreatedAt: now},
	}
	if err := s.sessions.Append(r.Context(), id, turn...); err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: id,
		Reply:     reply,
		History:   append(history, turn...),
	})
}
