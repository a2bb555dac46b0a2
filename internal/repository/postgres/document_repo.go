package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freebusy/internal/domain"
)

type documentRepository struct {
	DB *sql.DB
}

// NewDocumentRepository returns a DocumentSnapshotRepository backed by the
// document_snapshots table:
//
//	CREATE TABLE document_snapshots (
//	    path       TEXT PRIMARY KEY,
//	    snapshot   JSONB NOT NULL,
//	    clock      BIGINT NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
func NewDocumentRepository(db *sql.DB) domain.DocumentSnapshotRepository {
	return &documentRepository{
		DB: db,
	}
}

func (r *documentRepository) Save(ctx context.Context, path string, snapshot []byte, clock int64) error {
	query := `
		INSERT INTO document_snapshots (path, snapshot, clock, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (path) DO UPDATE
		SET snapshot = EXCLUDED.snapshot, clock = EXCLUDED.clock, updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query, path, snapshot, clock, time.Now())
	return err
}

func (r *documentRepository) Load(ctx context.Context, path string) ([]byte, int64, error) {
	query := `
		SELECT snapshot, clock
		FROM document_snapshots
		WHERE path = $1
	`
	var snapshot []byte
	var clock int64
	err := r.DB.QueryRowContext(ctx, query, path).Scan(&snapshot, &clock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, err
	}
	return snapshot, clock, nil
}
