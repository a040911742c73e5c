package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/kord-legal/kord/pkg/domain/interfaces"
	"github.com/kord-legal/kord/pkg/repository"
)

// Database holds repository backend configuration. Firestore and SQLite
// are mutually exclusive; when neither is configured, the in-memory
// repository is used.
type Database struct {
	SQLitePath          string
	FirestoreProjectID  string
	FirestoreDatabaseID string
}

// Flags returns CLI flags for Database configuration
func (d *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db-path",
			Usage:       "SQLite database file path",
			Category:    "Database",
			Sources:     cli.EnvVars("KORD_DB_PATH"),
			Destination: &d.SQLitePath,
		},
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "GCP project ID for Firestore",
			Category:    "Database",
			Sources:     cli.EnvVars("KORD_FIRESTORE_PROJECT"),
			Destination: &d.FirestoreProjectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Category:    "Database",
			Value:       "(default)",
			Sources:     cli.EnvVars("KORD_FIRESTORE_DATABASE"),
			Destination: &d.FirestoreDatabaseID,
		},
	}
}

// Validate validates the database configuration
func (d *Database) Validate() error {
	if d.SQLitePath != "" && d.FirestoreProjectID != "" {
		return goerr.New("db-path and firestore-project are mutually exclusive")
	}
	return nil
}

// Configure creates and returns the configured repository backend
func (d *Database) Configure(ctx context.Context) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	if err := d.Validate(); err != nil {
		return nil, err
	}

	switch {
	case d.FirestoreProjectID != "":
		repo, err := repository.NewFirestore(ctx, d.FirestoreProjectID, d.FirestoreDatabaseID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init firestore",
				goerr.V("project", d.FirestoreProjectID),
				goerr.V("database", d.FirestoreDatabaseID),
			)
		}
		return repo, nil

	case d.SQLitePath != "":
		repo, err := repository.NewSQLite(ctx, d.SQLitePath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init sqlite",
				goerr.V("path", d.SQLitePath),
			)
		}
		logger.Info("SQLite repository initialized", "path", d.SQLitePath)
		return repo, nil

	default:
		logger.Warn("Using memory database. The data will be removed when shutting down")
		return repository.NewMemory(), nil
	}
}

// LogValue returns structured log value
func (d Database) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("sqlitePath", d.SQLitePath),
		slog.String("firestoreProject", d.FirestoreProjectID),
		slog.String("firestoreDatabase", d.FirestoreDatabaseID),
	)
}
