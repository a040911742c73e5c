package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/kord-legal/kord/pkg/domain/interfaces"
	"github.com/kord-legal/kord/pkg/domain/model"
	"github.com/kord-legal/kord/pkg/domain/types"
	"github.com/kord-legal/kord/pkg/service/llm"
)

// RelayHandler forwards prompts to the upstream chat-completion API and
// passes the upstream response through verbatim
type RelayHandler struct {
	relay interfaces.LLMRelay
	repo  interfaces.Repository
}

// NewRelayHandler creates a new relay handler
func NewRelayHandler(relay interfaces.LLMRelay, repo interfaces.Repository) *RelayHandler {
	return &RelayHandler{
		relay: relay,
		repo:  repo,
	}
}

// relayRequest is the request body for both relay routes
type relayRequest struct {
	Prompt    string `json:"prompt"`
	RequestID string `json:"requestId,omitempty"`
}

// HandleVerify handles POST /api/verify with the hostile-auditor prompt
func (h *RelayHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "verify", llm.SystemPromptVerify())
}

// HandleInvestigate handles POST /api/investigate with the investigator
// prompt
func (h *RelayHandler) HandleInvestigate(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "investigate", llm.SystemPromptInvestigate())
}

func (h *RelayHandler) handle(w http.ResponseWriter, r *http.Request, route, systemPrompt string) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req relayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, goerr.New("prompt is required"), http.StatusBadRequest)
		return
	}

	requestID := types.RequestID(req.RequestID)
	if requestID == "" {
		requestID = types.NewRequestID()
	}
	w.Header().Set("X-Request-ID", requestID.String())

	if !h.relay.IsConfigured() {
		writeError(w, model.ErrAPIKeyNotConfigured, http.StatusUnauthorized)
		return
	}

	start := time.Now()
	resp, err := h.relay.Relay(ctx, systemPrompt, req.Prompt)
	if err != nil {
		if errors.Is(err, model.ErrAPIKeyNotConfigured) {
			writeError(w, model.ErrAPIKeyNotConfigured, http.StatusUnauthorized)
			return
		}
		logger.Error("Relay request failed",
			"route", route,
			"requestID", requestID,
			"error", err,
		)
		writeError(w, goerr.New("internal server error"), http.StatusInternalServerError)
		return
	}

	h.audit(r, requestID, route, len(req.Prompt), resp.StatusCode, time.Since(start))

	// Relay the upstream response verbatim, including non-OK statuses
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		logger.Error("Failed to write relayed response",
			"route", route,
			"requestID", requestID,
			"error", err,
		)
	}
}

// audit stores the relay record; failures are logged, never surfaced
func (h *RelayHandler) audit(r *http.Request, requestID types.RequestID, route string, promptBytes, upstreamStatus int, duration time.Duration) {
	ctx := r.Context()

	record, err := model.NewRelayRecord(requestID, route, promptBytes, upstreamStatus, duration)
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to build relay record", "error", err)
		return
	}
	if err := h.repo.SaveRelayRecord(ctx, record); err != nil {
		ctxlog.From(ctx).Warn("Failed to save relay record",
			"requestID", requestID,
			"error", err,
		)
	}
}
