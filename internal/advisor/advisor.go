// Package advisor turns historical weather odds into prose using an
// OpenAI-compatible chat completion endpoint.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/lox/skyra/internal/httputil"
	"github.com/lox/skyra/internal/metrics"
	"github.com/lox/skyra/internal/session"
)

// ErrDisabled is returned when no API key was configured.
var ErrDisabled = errors.New("advisor disabled: no API key configured")

const (
	DefaultSummaryModel = "gpt-4o-mini"
	DefaultChatModel    = "gpt-4o-mini"
)

type Config struct {
	APIKey       string
	BaseURL      string
	SummaryModel string
	ChatModel    string
	// MaxElapsed bounds retries of transient failures.
	MaxElapsed time.Duration
}

// Advisor produces activity recommendations and chat replies.
type Advisor struct {
	client       openai.Client
	enabled      bool
	summaryModel string
	chatModel    string
	maxElapsed   time.Duration
}

func New(cfg Config) *Advisor {
	a := &Advisor{
		summaryModel: cfg.SummaryModel,
		chatModel:    cfg.ChatModel,
		maxElapsed:   cfg.MaxElapsed,
	}
	if a.summaryModel == "" {
		a.summaryModel = DefaultSummaryModel
	}
	if a.chatModel == "" {
		a.chatModel = DefaultChatModel
	}
	if a.maxElapsed == 0 {
		a.maxElapsed = 30 * time.Second
	}
	if cfg.APIKey == "" {
		log.Printf("advisor: no API key, summaries disabled")
		return a
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httputil.NewClient()),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	a.client = openai.NewClient(opts...)
	a.enabled = true
	return a
}

// Enabled reports whether an API key was configured.
func (a *Advisor) Enabled() bool {
	return a != nil && a.enabled
}

// Summarize writes a short professional summary of the weather values,
// judged against activity when one is given.
func (a *Advisor) Summarize(ctx context.Context, activity string, values map[string]float64) (string, error) {
	if !a.Enabled() {
		return "", ErrDisabled
	}
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(summarySystemPrompt),
		openai.UserMessage(summaryPrompt(activity, values)),
	}
	return a.complete(ctx, "summary", a.summaryModel, messages)
}

// Reply answers message in the context of a conversation's history.
func (a *Advisor) Reply(ctx context.Context, activity string, values map[string]float64, history []session.Entry, message string) (string, error) {
	if !a.Enabled() {
		return "", ErrDisabled
	}
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(chatContext(activity, values)),
	}
	for _, e := range history {
		switch e.Role {
		case session.RoleUser:
			messages = append(messages, openai.UserMessage(e.Content))
		case session.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(e.Content))
		}
	}
	messages = append(messages, openai.UserMessage(message))
	return a.complete(ctx, "chat", a.chatModel, messages)
}

func (a *Advisor) complete(ctx context.Context, kind, model string, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	start := time.Now()
	defer func() {
		metrics.LLMLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()

	var text string
	operation := func() error {
		resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    openai.ChatModel(model),
			Messages: messages,
		})
		if err != nil {
			if transient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		if len(resp.Choices) == 0 {
			return backoff.Permanent(errors.New("no choices returned"))
		}
		text = strings.TrimSpace(resp.Choices[0].Message.Content)
		if text == "" {
			return backoff.Permanent(errors.New("empty completion returned"))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxElapsedTime = a.maxElapsed
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		metrics.LLMCallsTotal.WithLabelValues(kind, "error").Inc()
		log.Printf("advisor: %s completion failed: %v", kind, err)
		return "", fmt.Errorf("%s completion: %w", kind, err)
	}

	metrics.LLMCallsTotal.WithLabelValues(kind, "ok").Inc()
	return text, nil
}

func transient(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return false
}
