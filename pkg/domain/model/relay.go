package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/kord-legal/kord/pkg/domain/types"
)

// RelayRecord is an audit record of one request forwarded to the upstream
// chat-completion API. The prompt itself is not stored, only its size.
type RelayRecord struct {
	RequestID      types.RequestID `json:"request_id" firestore:"request_id"`
	Route          string          `json:"route" firestore:"route"`
	PromptBytes    int             `json:"prompt_bytes" firestore:"prompt_bytes"`
	UpstreamStatus int             `json:"upstream_status" firestore:"upstream_status"`
	Duration       time.Duration   `json:"duration" firestore:"duration"`
	CreatedAt      time.Time       `json:"created_at" firestore:"created_at"`
}

// NewRelayRecord creates a new RelayRecord
func NewRelayRecord(requestID types.RequestID, route string, promptBytes, upstreamStatus int, duration time.Duration) (*RelayRecord, error) {
	if requestID == "" {
		return nil, goerr.New("request ID is required")
	}
	if route == "" {
		return nil, goerr.New("route is required")
	}

	return &RelayRecord{
		RequestID:      requestID,
		Route:          route,
		PromptBytes:    promptBytes,
		UpstreamStatus: upstreamStatus,
		Duration:       duration,
		CreatedAt:      time.Now(),
	}, nil
}
