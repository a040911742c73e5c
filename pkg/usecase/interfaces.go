package usecase

import (
	"context"

	"github.com/kord-legal/kord/pkg/domain/model"
	"github.com/kord-legal/kord/pkg/domain/types"
)

// InvestigationUseCase defines the interface for the staged investigation run
type InvestigationUseCase interface {
	// Start creates a queued investigation for the brief and begins the
	// staged run in the background
	Start(ctx context.Context, brief *model.Brief) (*model.Investigation, error)

	// Get returns the current snapshot of an investigation
	Get(ctx context.Context, id types.InvestigationID) (*model.Investigation, error)

	// List returns recent investigations, newest first
	List(ctx context.Context, limit int) ([]*model.Investigation, error)
}

// BriefUseCase defines the interface for brief intake
type BriefUseCase interface {
	// Extract reads the uploaded file into brief text
	Extract(filename string, data []byte) (*model.Brief, error)
}
