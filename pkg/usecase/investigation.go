package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/kord-legal/kord/pkg/domain/interfaces"
	"github.com/kord-legal/kord/pkg/domain/model"
	"github.com/kord-legal/kord/pkg/domain/types"
	"github.com/kord-legal/kord/pkg/service/report"
	"github.com/kord-legal/kord/pkg/utils/apperr"
	"github.com/kord-legal/kord/pkg/utils/async"
)

// Investigation implements InvestigationUseCase. The run is a staged mock:
// it walks the dataset's step schedule on a timer and always attaches the
// same canned report, regardless of the submitted brief.
type Investigation struct {
	repo    interfaces.Repository
	dataset *report.Dataset
}

// NewInvestigation creates a new Investigation use case
func NewInvestigation(repo interfaces.Repository, dataset *report.Dataset) *Investigation {
	return &Investigation{
		repo:    repo,
		dataset: dataset,
	}
}

// Start creates a queued investigation and begins the staged run in the
// background
func (u *Investigation) Start(ctx context.Context, brief *model.Brief) (*model.Investigation, error) {
	logger := ctxlog.From(ctx)

	if brief == nil {
		return nil, goerr.Wrap(model.ErrEmptyBrief, "brief is required")
	}

	inv, err := model.NewInvestigation(brief, u.dataset.Steps)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create investigation")
	}

	if err := u.repo.PutInvestigation(ctx, inv); err != nil {
		return nil, goerr.Wrap(err, "failed to store investigation")
	}

	logger.Info("Investigation started",
		"investigationID", inv.ID,
		"filename", brief.Filename,
		"words", brief.WordCount(),
		"steps", len(inv.Steps),
	)

	id := inv.ID
	async.Dispatch(ctx, func(ctx context.Context) error {
		return u.run(ctx, id)
	})

	return inv, nil
}

// Get returns the current snapshot of an investigation
func (u *Investigation) Get(ctx context.Context, id types.InvestigationID) (*model.Investigation, error) {
	if id == "" {
		return nil, goerr.New("investigation ID is required")
	}
	return u.repo.GetInvestigation(ctx, id)
}

// List returns recent investigations, newest first
func (u *Investigation) List(ctx context.Context, limit int) ([]*model.Investigation, error) {
	return u.repo.ListInvestigations(ctx, limit)
}

// run walks the step schedule, updating the stored snapshot after each
// advance, then attaches the canned report
func (u *Investigation) run(ctx context.Context, id types.InvestigationID) error {
	logger := ctxlog.From(ctx)

	inv, err := u.repo.GetInvestigation(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to load investigation for run",
			goerr.V("id", id))
	}

	for i, step := range inv.Steps {
		if err := inv.Advance(i); err != nil {
			return u.fail(ctx, inv, err)
		}
		if err := u.repo.PutInvestigation(ctx, inv); err != nil {
			return goerr.Wrap(err, "failed to store step advance",
				goerr.V("id", id),
				goerr.V("step", i))
		}

		logger.Debug("Investigation step",
			"investigationID", id,
			"step", i,
			"label", step.Label,
			"duration", step.Duration,
		)

		select {
		case <-time.After(step.Duration):
		case <-ctx.Done():
			return u.fail(ctx, inv, goerr.Wrap(ctx.Err(), "investigation canceled"))
		}
	}

	// Same report for every brief
	reportCopy := u.dataset.Report
	if err := inv.Complete(&reportCopy); err != nil {
		return u.fail(ctx, inv, err)
	}
	if err := u.repo.PutInvestigation(ctx, inv); err != nil {
		return goerr.Wrap(err, "failed to store completed investigation",
			goerr.V("id", id))
	}

	logger.Info("Investigation completed",
		"investigationID", id,
		"verdict", inv.Report.Verdict,
		"issues", inv.Report.IssueCount(),
	)

	return nil
}

// fail records the failure on the stored snapshot and returns the cause
func (u *Investigation) fail(ctx context.Context, inv *model.Investigation, cause error) error {
	inv.Fail(cause.Error())
	if err := u.repo.PutInvestigation(ctx, inv); err != nil {
		apperr.Handle(ctx, goerr.Wrap(err, "failed to store failed investigation",
			goerr.V("id", inv.ID)))
	}
	return cause
}
