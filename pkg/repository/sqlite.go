package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/kord-legal/kord/pkg/domain/interfaces"
	"github.com/kord-legal/kord/pkg/domain/model"
	"github.com/kord-legal/kord/pkg/domain/types"
)

// SQLite implements Repository interface with a local SQLite file.
// Investigations are stored as JSON documents keyed by ID, with status and
// creation time lifted into columns for ordering and filtering.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS investigations (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	doc_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_investigations_created ON investigations(created_at);

CREATE TABLE IF NOT EXISTS relay_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id TEXT NOT NULL,
	route TEXT NOT NULL,
	prompt_bytes INTEGER NOT NULL,
	upstream_status INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_relay_records_created ON relay_records(created_at);
`

// NewSQLite opens or creates a SQLite repository at the given path
func NewSQLite(ctx context.Context, path string) (interfaces.Repository, error) {
	if path == "" {
		return nil, goerr.New("database path is required")
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database",
			goerr.V("path", path))
	}

	// SQLite supports only one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to enable WAL mode")
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to create sqlite schema")
	}

	return &SQLite{db: db}, nil
}

// PutInvestigation stores an investigation snapshot
func (s *SQLite) PutInvestigation(ctx context.Context, inv *model.Investigation) error {
	if inv == nil {
		return goerr.New("investigation is nil")
	}
	if inv.ID == "" {
		return goerr.New("investigation ID is empty")
	}

	doc, err := json.Marshal(inv)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal investigation",
			goerr.V("id", inv.ID))
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO investigations (id, status, created_at, doc_json)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status = excluded.status, doc_json = excluded.doc_json
	`, inv.ID.String(), inv.Status.String(), inv.CreatedAt.UnixNano(), string(doc))
	if err != nil {
		return goerr.Wrap(err, "failed to save investigation",
			goerr.V("id", inv.ID))
	}
	return nil
}

// GetInvestigation retrieves an investigation by ID
func (s *SQLite) GetInvestigation(ctx context.Context, id types.InvestigationID) (*model.Investigation, error) {
	if id == "" {
		return nil, goerr.New("investigation ID is empty")
	}

	var doc string
	err := s.db.QueryRowContext(ctx,
		"SELECT doc_json FROM investigations WHERE id = ?", id.String(),
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, goerr.Wrap(model.ErrInvestigationNotFound, "no such investigation",
			goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query investigation",
			goerr.V("id", id))
	}

	var inv model.Investigation
	if err := json.Unmarshal([]byte(doc), &inv); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal investigation",
			goerr.V("id", id))
	}
	return &inv, nil
}

// ListInvestigations lists investigations, newest first
func (s *SQLite) ListInvestigations(ctx context.Context, limit int) ([]*model.Investigation, error) {
	query := "SELECT doc_json FROM investigations ORDER BY created_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query investigations")
	}
	defer rows.Close()

	var investigations []*model.Investigation
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to scan investigation row")
		}

		var inv model.Investigation
		if err := json.Unmarshal([]byte(doc), &inv); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal investigation")
		}
		investigations = append(investigations, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate investigation rows")
	}

	return investigations, nil
}

// SaveRelayRecord appends a relay audit record
func (s *SQLite) SaveRelayRecord(ctx context.Context, record *model.RelayRecord) error {
	if record == nil {
		return goerr.New("relay record is nil")
	}
	if record.RequestID == "" {
		return goerr.New("relay record request ID is empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO relay_records (request_id, route, prompt_bytes, upstream_status, duration_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.RequestID.String(), record.Route, record.PromptBytes,
		record.UpstreamStatus, int64(record.Duration), record.CreatedAt.UnixNano())
	if err != nil {
		return goerr.Wrap(err, "failed to save relay record",
			goerr.V("requestID", record.RequestID))
	}
	return nil
}

// ListRelayRecords lists relay audit records, newest first
func (s *SQLite) ListRelayRecords(ctx context.Context, limit int) ([]*model.RelayRecord, error) {
	query := `
		SELECT request_id, route, prompt_bytes, upstream_status, duration_ns, created_at
		FROM relay_records ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query relay records")
	}
	defer rows.Close()

	var records []*model.RelayRecord
	for rows.Next() {
		var record model.RelayRecord
		var requestID string
		var durationNS, createdAtNS int64
		if err := rows.Scan(&requestID, &record.Route, &record.PromptBytes,
			&record.UpstreamStatus, &durationNS, &createdAtNS); err != nil {
			return nil, goerr.Wrap(err, "failed to scan relay record row")
		}
		record.RequestID = types.RequestID(requestID)
		record.Duration = time.Duration(durationNS)
		record.CreatedAt = time.Unix(0, createdAtNS)
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate relay record rows")
	}

	return records, nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}
