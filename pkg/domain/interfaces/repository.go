package interfaces

import (
	"context"

	"github.com/kord-legal/kord/pkg/domain/model"
	"github.com/kord-legal/kord/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	// Investigation operations
	PutInvestigation(ctx context.Context, inv *model.Investigation) error
	GetInvestigation(ctx context.Context, id types.InvestigationID) (*model.Investigation, error)
	ListInvestigations(ctx context.Context, limit int) ([]*model.Investigation, error)

	// Relay audit operations
	SaveRelayRecord(ctx context.Context, record *model.RelayRecord) error
	ListRelayRecords(ctx context.Context, limit int) ([]*model.RelayRecord, error)

	// Close closes the repository connection
	Close() error
}
