package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/kord-legal/kord/pkg/domain/types"
)

// Investigation represents one staged analysis run over a submitted brief
type Investigation struct {
	ID          types.InvestigationID     `json:"id" firestore:"id"`
	Brief       Brief                     `json:"brief" firestore:"brief"`
	Status      types.InvestigationStatus `json:"status" firestore:"status"`
	Steps       []InvestigationStep       `json:"steps" firestore:"steps"`
	CurrentStep int                       `json:"current_step" firestore:"current_step"`
	Report      *Report                   `json:"report,omitempty" firestore:"report,omitempty"`
	Error       string                    `json:"error,omitempty" firestore:"error,omitempty"`
	CreatedAt   time.Time                 `json:"created_at" firestore:"created_at"`
	CompletedAt *time.Time                `json:"completed_at,omitempty" firestore:"completed_at,omitempty"`
}

// NewInvestigation creates a queued Investigation for the given brief
func NewInvestigation(brief *Brief, steps []InvestigationStep) (*Investigation, error) {
	if brief == nil {
		return nil, goerr.New("brief is required")
	}
	if len(steps) == 0 {
		return nil, goerr.New("at least one investigation step is required")
	}

	id, err := types.NewInvestigationID()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate investigation ID")
	}

	return &Investigation{
		ID:          id,
		Brief:       *brief,
		Status:      types.InvestigationStatusQueued,
		Steps:       steps,
		CurrentStep: -1,
		CreatedAt:   time.Now(),
	}, nil
}

// CurrentStepLabel returns the label of the step currently running, or an
// empty string when the run has not started or has finished
func (inv *Investigation) CurrentStepLabel() string {
	if inv.CurrentStep < 0 || inv.CurrentStep >= len(inv.Steps) {
		return ""
	}
	return inv.Steps[inv.CurrentStep].Label
}

// Advance moves the investigation to the given step index
func (inv *Investigation) Advance(step int) error {
	if step < 0 || step >= len(inv.Steps) {
		return goerr.New("step index out of range",
			goerr.V("step", step),
			goerr.V("steps", len(inv.Steps)))
	}
	inv.Status = types.InvestigationStatusAnalyzing
	inv.CurrentStep = step
	return nil
}

// Complete attaches the report and marks the investigation as completed
func (inv *Investigation) Complete(report *Report) error {
	if report == nil {
		return goerr.New("report is required to complete an investigation")
	}
	now := time.Now()
	inv.Status = types.InvestigationStatusCompleted
	inv.CurrentStep = len(inv.Steps) - 1
	inv.Report = report
	inv.CompletedAt = &now
	return nil
}

// Fail marks the investigation as failed with the given reason
func (inv *Investigation) Fail(reason string) {
	now := time.Now()
	inv.Status = types.InvestigationStatusFailed
	inv.Error = reason
	inv.CompletedAt = &now
}
