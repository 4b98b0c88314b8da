package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// errorPayloadLimit bounds how much of an error body is kept for logging.
const errorPayloadLimit = 64 * 1024

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChatSettings are the per-session request parameters.
type ChatSettings struct {
	Model          string
	APIKey         string
	BaseURL        string
	Temperature    float64
	EnableThinking bool
}

// ChatProvider implements Provider for OpenAI-compatible chat-completions endpoints.
type ChatProvider struct {
	settings ChatSettings
	client   HTTPDoer
}

// NewChatProvider constructs a provider with explicit settings.
func NewChatProvider(settings ChatSettings, client HTTPDoer) (*ChatProvider, error) {
	if strings.TrimSpace(settings.Model) == "" {
		return nil, errors.New("model is required")
	}
	if strings.TrimSpace(settings.APIKey) == "" {
		return nil, errors.New("api key is required")
	}
	if strings.TrimSpace(settings.BaseURL) == "" {
		return nil, errors.New("base url is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	settings.BaseURL = strings.TrimRight(settings.BaseURL, "/")
	return &ChatProvider{settings: settings, client: client}, nil
}

// Stream posts the request and returns a stream over the SSE response body.
// The caller owns the returned stream and must Close it.
func (p *ChatProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	messages, err := buildChatMessages(req.Messages)
	if err != nil {
		return nil, err
	}
	body := chatRequest{
		Model:          p.settings.Model,
		Messages:       messages,
		Stream:         true,
		Temperature:    p.settings.Temperature,
		EnableThinking: p.settings.EnableThinking,
		ResponseFormat: chatResponseFormat{Type: "text"},
	}
	if len(req.Tools) > 0 {
		body.Tools = buildChatTools(req.Tools)
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}

	endpoint := p.settings.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.settings.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	log.Debug().
		Str("model", p.settings.Model).
		Int("messages", len(messages)).
		Int("tools", len(body.Tools)).
		Msg("sending model request")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, errorPayloadLimit))
		statusErr := &StatusError{StatusCode: resp.StatusCode, Payload: string(data)}
		log.Error().
			Int("status", resp.StatusCode).
			Str("payload", strings.TrimSpace(statusErr.Payload)).
			Msg("model endpoint rejected request")
		return nil, statusErr
	}
	return newSSEStream(ctx, resp.Body), nil
}
