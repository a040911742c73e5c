package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/kord-legal/kord/pkg/domain/model"
	"github.com/kord-legal/kord/pkg/domain/types"
	"github.com/kord-legal/kord/pkg/repository"
	"github.com/kord-legal/kord/pkg/service/report"
	"github.com/kord-legal/kord/pkg/usecase"
)

// testDataset returns a dataset with a millisecond schedule so test runs
// finish quickly
func testDataset(t *testing.T) *report.Dataset {
	t.Helper()

	dataset, err := report.Load()
	gt.NoError(t, err).Required()
	for i := range dataset.Steps {
		dataset.Steps[i].Duration = 2 * time.Millisecond
	}
	return dataset
}

// waitForStatus polls until the investigation reaches a terminal status
func waitForStatus(t *testing.T, uc usecase.InvestigationUseCase, id types.InvestigationID) *model.Investigation {
	t.Helper()

	ctx := context.Background()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		inv, err := uc.Get(ctx, id)
		gt.NoError(t, err).Required()
		if inv.Status.IsTerminal() {
			return inv
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("investigation did not finish in time")
	return nil
}

func TestInvestigationStart(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	defer repo.Close()

	uc := usecase.NewInvestigation(repo, testDataset(t))

	brief, err := model.NewBrief("Plaintiff submits this brief in support of the motion.", "brief.txt")
	gt.NoError(t, err).Required()

	inv, err := uc.Start(ctx, brief)
	gt.NoError(t, err).Required()

	gt.True(t, inv.ID != "")
	gt.Equal(t, types.InvestigationStatusQueued, inv.Status)
	gt.Equal(t, -1, inv.CurrentStep)
	gt.A(t, inv.Steps).Longer(0)
	gt.V(t, inv.Report).Nil()

	done := waitForStatus(t, uc, inv.ID)
	gt.Equal(t, types.InvestigationStatusCompleted, done.Status)
	gt.V(t, done.Report).NotNil()
	gt.Equal(t, types.VerdictFileWithCaution, done.Report.Verdict)
	gt.V(t, done.CompletedAt).NotNil()
	gt.Equal(t, len(done.Steps)-1, done.CurrentStep)
}

func TestInvestigationSameReportForAnyBrief(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	defer repo.Close()

	uc := usecase.NewInvestigation(repo, testDataset(t))

	texts := []string{
		"A one-line filing.",
		"An entirely different brief citing entirely different authority, at much greater length than the first.",
	}

	var reports []*model.Report
	for _, text := range texts {
		brief, err := model.NewBrief(text, "")
		gt.NoError(t, err).Required()

		inv, err := uc.Start(ctx, brief)
		gt.NoError(t, err).Required()

		done := waitForStatus(t, uc, inv.ID)
		gt.Equal(t, types.InvestigationStatusCompleted, done.Status)
		reports = append(reports, done.Report)
	}

	// The report never varies with the submitted document
	gt.Equal(t, reports[0], reports[1])
}

func TestInvestigationStartRejectsNilBrief(t *testing.T) {
	repo := repository.NewMemory()
	defer repo.Close()

	uc := usecase.NewInvestigation(repo, testDataset(t))

	_, err := uc.Start(context.Background(), nil)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrEmptyBrief))
}

func TestInvestigationGet(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	defer repo.Close()

	uc := usecase.NewInvestigation(repo, testDataset(t))

	t.Run("unknown ID", func(t *testing.T) {
		_, err := uc.Get(ctx, types.InvestigationID("no-such-id"))
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrInvestigationNotFound))
	})

	t.Run("empty ID", func(t *testing.T) {
		_, err := uc.Get(ctx, "")
		gt.Error(t, err)
	})
}

func TestInvestigationList(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	defer repo.Close()

	uc := usecase.NewInvestigation(repo, testDataset(t))

	for i := 0; i < 2; i++ {
		brief, err := model.NewBrief("Brief text.", "")
		gt.NoError(t, err).Required()
		inv, err := uc.Start(ctx, brief)
		gt.NoError(t, err).Required()
		waitForStatus(t, uc, inv.ID)
	}

	investigations, err := uc.List(ctx, 10)
	gt.NoError(t, err).Required()
	gt.A(t, investigations).Length(2)
}
