package types

import (
	"github.com/google/uuid"
)

// InvestigationID represents an investigation identifier
type InvestigationID string

// String returns the string representation
func (id InvestigationID) String() string {
	return string(id)
}

// NewInvestigationID creates a new InvestigationID using UUID v7 (time-ordered)
func NewInvestigationID() (InvestigationID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return InvestigationID(id.String()), nil
}

// RequestID represents a relay request identifier
type RequestID string

// String returns the string representation
func (id RequestID) String() string {
	return string(id)
}

// NewRequestID creates a new RequestID
func NewRequestID() RequestID {
	return RequestID("req-" + uuid.New().String())
}
