package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kord-legal/kord/pkg/domain/interfaces"
	"github.com/kord-legal/kord/pkg/domain/model"
)

const (
	// DefaultBaseURL is the upstream chat-completion endpoint
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the model requested when none is configured
	DefaultModel = "gpt-4o-mini"

	defaultTimeout = 60 * time.Second
)

// Relay forwards prompts to an OpenAI-compatible chat-completion API and
// returns the upstream response without parsing it, so the HTTP layer can
// pass it through verbatim.
type Relay struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option configures a Relay
type Option func(*Relay)

// WithHTTPClient overrides the HTTP client used for upstream calls
func WithHTTPClient(client *http.Client) Option {
	return func(r *Relay) {
		r.httpClient = client
	}
}

// New creates a new Relay. An empty apiKey is allowed; Relay calls will
// then fail with model.ErrAPIKeyNotConfigured before any network access.
func New(apiKey, baseURL, modelName string, opts ...Option) *Relay {
	r := &Relay{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   modelName,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	if r.baseURL == "" {
		r.baseURL = DefaultBaseURL
	}
	if r.model == "" {
		r.model = DefaultModel
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsConfigured reports whether an API key is available
func (r *Relay) IsConfigured() bool {
	return r.apiKey != ""
}

// chatRequest is the upstream chat-completion payload
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Relay sends the system/user prompt pair upstream and returns the raw
// upstream status code and body. A non-2xx upstream status is not an
// error; it is part of the relayed response.
func (r *Relay) Relay(ctx context.Context, systemPrompt, userPrompt string) (*interfaces.RelayResponse, error) {
	if !r.IsConfigured() {
		return nil, goerr.Wrap(model.ErrAPIKeyNotConfigured, "cannot relay prompt")
	}

	payload := chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build upstream request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "upstream request failed",
			goerr.V("url", r.baseURL))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read upstream response body")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}

	return &interfaces.RelayResponse{
		StatusCode:  resp.StatusCode,
		Body:        respBody,
		ContentType: contentType,
	}, nil
}
