package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kord-legal/kord/pkg/domain/interfaces"
	"github.com/kord-legal/kord/pkg/domain/model"
	"github.com/kord-legal/kord/pkg/domain/types"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu             sync.RWMutex
	investigations map[types.InvestigationID]*model.Investigation
	relayRecords   []*model.RelayRecord
}

// NewMemory creates a new memory repository
func NewMemory() interfaces.Repository {
	return &Memory{
		investigations: make(map[types.InvestigationID]*model.Investigation),
	}
}

// PutInvestigation stores an investigation snapshot
func (m *Memory) PutInvestigation(ctx context.Context, inv *model.Investigation) error {
	if inv == nil {
		return goerr.New("investigation is nil")
	}
	if inv.ID == "" {
		return goerr.New("investigation ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.investigations[inv.ID] = copyInvestigation(inv)
	return nil
}

// GetInvestigation retrieves an investigation by ID
func (m *Memory) GetInvestigation(ctx context.Context, id types.InvestigationID) (*model.Investigation, error) {
	if id == "" {
		return nil, goerr.New("investigation ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	inv, exists := m.investigations[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrInvestigationNotFound, "no such investigation",
			goerr.V("id", id))
	}

	return copyInvestigation(inv), nil
}

// ListInvestigations lists investigations, newest first
func (m *Memory) ListInvestigations(ctx context.Context, limit int) ([]*model.Investigation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	investigations := make([]*model.Investigation, 0, len(m.investigations))
	for _, inv := range m.investigations {
		investigations = append(investigations, copyInvestigation(inv))
	}

	sort.Slice(investigations, func(i, j int) bool {
		return investigations[i].CreatedAt.After(investigations[j].CreatedAt)
	})

	if limit > 0 && len(investigations) > limit {
		investigations = investigations[:limit]
	}

	return investigations, nil
}

// SaveRelayRecord appends a relay audit record
func (m *Memory) SaveRelayRecord(ctx context.Context, record *model.RelayRecord) error {
	if record == nil {
		return goerr.New("relay record is nil")
	}
	if record.RequestID == "" {
		return goerr.New("relay record request ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	recordCopy := *record
	m.relayRecords = append(m.relayRecords, &recordCopy)
	return nil
}

// ListRelayRecords lists relay audit records, newest first
func (m *Memory) ListRelayRecords(ctx context.Context, limit int) ([]*model.RelayRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*model.RelayRecord, 0, len(m.relayRecords))
	for _, r := range m.relayRecords {
		recordCopy := *r
		records = append(records, &recordCopy)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

// Close closes the repository (no-op for memory)
func (m *Memory) Close() error {
	return nil
}

// copyInvestigation deep-copies an investigation to prevent external
// modification of stored state
func copyInvestigation(inv *model.Investigation) *model.Investigation {
	invCopy := *inv

	invCopy.Steps = append([]model.InvestigationStep(nil), inv.Steps...)

	if inv.Report != nil {
		reportCopy := *inv.Report
		reportCopy.CriticalIssues = append([]model.CriticalIssue(nil), inv.Report.CriticalIssues...)
		reportCopy.HallucinationSignals = append([]model.HallucinationSignal(nil), inv.Report.HallucinationSignals...)
		reportCopy.FormattingIssues = append([]model.FormattingIssue(nil), inv.Report.FormattingIssues...)
		invCopy.Report = &reportCopy
	}

	if inv.CompletedAt != nil {
		completedAt := *inv.CompletedAt
		invCopy.CompletedAt = &completedAt
	}

	return &invCopy
}
