package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kord-legal/kord/pkg/domain/interfaces"
	"github.com/kord-legal/kord/pkg/domain/model"
	"github.com/kord-legal/kord/pkg/domain/types"
)

const (
	investigationsCollection = "investigations"
	relayRecordsCollection   = "relay_records"
)

// Firestore implements Repository interface with Firestore
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Test connection by reading from a collection. This fails fast on a
	// bad project ID or permission problems.
	_, err = client.Collection(investigationsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		// Other errors (like NotFound for new projects) are non-fatal
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

// PutInvestigation stores an investigation snapshot
func (f *Firestore) PutInvestigation(ctx context.Context, inv *model.Investigation) error {
	if inv == nil {
		return goerr.New("investigation is nil")
	}
	if inv.ID == "" {
		return goerr.New("investigation ID is empty")
	}

	_, err := f.client.Collection(investigationsCollection).Doc(inv.ID.String()).Set(ctx, inv)
	if err != nil {
		return goerr.Wrap(err, "failed to save investigation",
			goerr.V("id", inv.ID))
	}
	return nil
}

// GetInvestigation retrieves an investigation by ID
func (f *Firestore) GetInvestigation(ctx context.Context, id types.InvestigationID) (*model.Investigation, error) {
	if id == "" {
		return nil, goerr.New("investigation ID is empty")
	}

	doc, err := f.client.Collection(investigationsCollection).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrInvestigationNotFound, "no such investigation",
				goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get investigation",
			goerr.V("id", id))
	}

	var inv model.Investigation
	if err := doc.DataTo(&inv); err != nil {
		return nil, goerr.Wrap(err, "failed to decode investigation",
			goerr.V("id", id))
	}
	return &inv, nil
}

// ListInvestigations lists investigations, newest first
func (f *Firestore) ListInvestigations(ctx context.Context, limit int) ([]*model.Investigation, error) {
	query := f.client.Collection(investigationsCollection).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var investigations []*model.Investigation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate investigations")
		}

		var inv model.Investigation
		if err := doc.DataTo(&inv); err != nil {
			return nil, goerr.Wrap(err, "failed to decode investigation",
				goerr.V("doc", doc.Ref.ID))
		}
		investigations = append(investigations, &inv)
	}

	return investigations, nil
}

// SaveRelayRecord appends a relay audit record
func (f *Firestore) SaveRelayRecord(ctx context.Context, record *model.RelayRecord) error {
	if record == nil {
		return goerr.New("relay record is nil")
	}
	if record.RequestID == "" {
		return goerr.New("relay record request ID is empty")
	}

	_, _, err := f.client.Collection(relayRecordsCollection).Add(ctx, record)
	if err != nil {
		return goerr.Wrap(err, "failed to save relay record",
			goerr.V("requestID", record.RequestID))
	}
	return nil
}

// ListRelayRecords lists relay audit records, newest first
func (f *Firestore) ListRelayRecords(ctx context.Context, limit int) ([]*model.RelayRecord, error) {
	query := f.client.Collection(relayRecordsCollection).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var records []*model.RelayRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate relay records")
		}

		var record model.RelayRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, goerr.Wrap(err, "failed to decode relay record",
				goerr.V("doc", doc.Ref.ID))
		}
		records = append(records, &record)
	}

	return records, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	return f.client.Close()
}
