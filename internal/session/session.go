// Package session keeps per-session chat history for the advisor.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Roles of a chat entry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Entry is one message of a chat conversation.
type Entry struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists chat history by session id. Unknown ids read as an empty
// history.
type Store interface {
	Get(ctx context.Context, id string) ([]Entry, error)
	Append(ctx context.Context, id string, entries ...Entry) error
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}
