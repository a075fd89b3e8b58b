// Package repository implements data persistence for the evidence registry.
//
// Provides PostgreSQL and MySQL implementations with transaction support via database.GetTx().
// Driver failures are reported as apperrors.ErrStorageUnavailable so callers can tell them
// apart from validation outcomes.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/custody/internal/database"
	apperrors "github.com/allisson/custody/internal/errors"
	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
)

const postgresEvidenceColumns = `id, evidence_type, identifier, content_hash, size, registered_at`

// PostgreSQLEvidenceRepository implements Evidence persistence for PostgreSQL.
type PostgreSQLEvidenceRepository struct {
	db *sql.DB
}

// Create inserts a new Evidence and sets its generated ID. Returns ErrDuplicateIdentifier
// or ErrDuplicateContent when a unique constraint rejects the row.
func (p *PostgreSQLEvidenceRepository) Create(ctx context.Context, evidence *evidenceDomain.Evidence) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO evidence (evidence_type, identifier, content_hash, size, registered_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`

	err := querier.QueryRowContext(
		ctx,
		query,
		string(evidence.EvidenceType),
		evidence.Identifier,
		evidence.ContentHash,
		evidence.Size,
		evidence.RegisteredAt,
	).Scan(&evidence.ID)
	if err != nil {
		if dupErr := duplicateFromPostgres(err); dupErr != nil {
			return dupErr
		}
		return apperrors.Unavailable(err, "failed to create evidence")
	}

	return nil
}

// Get retrieves an Evidence by ID.
func (p *PostgreSQLEvidenceRepository) Get(ctx context.Context, id int64) (*evidenceDomain.Evidence, error) {
	query := `SELECT ` + postgresEvidenceColumns + ` FROM evidence WHERE id = $1`
	return p.getOne(ctx, query, id)
}

// GetForUpdate retrieves an Evidence by ID and locks its row until the surrounding
// transaction ends. Custody appends use it to serialize writers per evidence.
func (p *PostgreSQLEvidenceRepository) GetForUpdate(
	ctx context.Context,
	id int64,
) (*evidenceDomain.Evidence, error) {
	query := `SELECT ` + postgresEvidenceColumns + ` FROM evidence WHERE id = $1 FOR UPDATE`
	return p.getOne(ctx, query, id)
}

// GetByIdentifier retrieves an Evidence by its type and identifier.
func (p *PostgreSQLEvidenceRepository) GetByIdentifier(
	ctx context.Context,
	evidenceType evidenceDomain.EvidenceType,
	identifier string,
) (*evidenceDomain.Evidence, error) {
	query := `SELECT ` + postgresEvidenceColumns + ` FROM evidence WHERE evidence_type = $1 AND identifier = $2`
	return p.getOne(ctx, query, string(evidenceType), identifier)
}

// List retrieves evidence ordered by ID ascending with pagination.
func (p *PostgreSQLEvidenceRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*evidenceDomain.Evidence, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + postgresEvidenceColumns + ` FROM evidence ORDER BY id ASC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Unavailable(err, "failed to list evidence")
	}
	defer func() {
		_ = rows.Close()
	}()

	evidences := make([]*evidenceDomain.Evidence, 0)
	for rows.Next() {
		evidence, err := scanEvidence(rows)
		if err != nil {
			return nil, apperrors.Unavailable(err, "failed to scan evidence")
		}
		evidences = append(evidences, evidence)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Unavailable(err, "failed to iterate evidence")
	}

	return evidences, nil
}

// ListIDs returns the IDs of all registered evidence in ascending order.
func (p *PostgreSQLEvidenceRepository) ListIDs(ctx context.Context) ([]int64, error) {
	querier := database.GetTx(ctx, p.db)

	rows, err := querier.QueryContext(ctx, `SELECT id FROM evidence ORDER BY id ASC`)
	if err != nil {
		return nil, apperrors.Unavailable(err, "failed to list evidence ids")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanIDs(rows)
}

// Delete removes an Evidence. Custody events cascade with it.
func (p *PostgreSQLEvidenceRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM evidence WHERE id = $1`, id)
	if err != nil {
		return apperrors.Unavailable(err, "failed to delete evidence")
	}

	return checkDeleted(result)
}

// CreateDeletion inserts a deletion journal entry and sets its generated ID.
func (p *PostgreSQLEvidenceRepository) CreateDeletion(
	ctx context.Context,
	deletion *evidenceDomain.Deletion,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO evidence_deletions
			  (evidence_id, evidence_type, identifier, content_hash, event_count, last_hash_after, handler, reason, deleted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`

	err := querier.QueryRowContext(
		ctx,
		query,
		deletion.EvidenceID,
		string(deletion.EvidenceType),
		deletion.Identifier,
		deletion.ContentHash,
		deletion.EventCount,
		deletion.LastHashAfter,
		deletion.Handler,
		deletion.Reason,
		deletion.DeletedAt,
	).Scan(&deletion.ID)
	if err != nil {
		return apperrors.Unavailable(err, "failed to create evidence deletion")
	}

	return nil
}

// ListDeletions retrieves deletion journal entries ordered by ID descending (newest first).
func (p *PostgreSQLEvidenceRepository) ListDeletions(
	ctx context.Context,
	offset, limit int,
) ([]*evidenceDomain.Deletion, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, evidence_id, evidence_type, identifier, content_hash, event_count,
			  last_hash_after, handler, reason, deleted_at
			  FROM evidence_deletions
			  ORDER BY id DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Unavailable(err, "failed to list evidence deletions")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanDeletions(rows)
}

func (p *PostgreSQLEvidenceRepository) getOne(
	ctx context.Context,
	query string,
	args ...any,
) (*evidenceDomain.Evidence, error) {
	querier := database.GetTx(ctx, p.db)

	evidence, err := scanEvidence(querier.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, evidenceDomain.ErrEvidenceNotFound
		}
		return nil, apperrors.Unavailable(err, "failed to get evidence")
	}

	return evidence, nil
}

// NewPostgreSQLEvidenceRepository creates a new PostgreSQL Evidence repository.
func NewPostgreSQLEvidenceRepository(db *sql.DB) *PostgreSQLEvidenceRepository {
	return &PostgreSQLEvidenceRepository{db: db}
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.Unavailable(err, "failed to scan evidence id")
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Unavailable(err, "failed to iterate evidence ids")
	}

	return ids, nil
}

func scanDeletions(rows *sql.Rows) ([]*evidenceDomain.Deletion, error) {
	deletions := make([]*evidenceDomain.Deletion, 0)
	for rows.Next() {
		deletion, err := scanDeletion(rows)
		if err != nil {
			return nil, apperrors.Unavailable(err, "failed to scan evidence deletion")
		}
		deletions = append(deletions, deletion)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Unavailable(err, "failed to iterate evidence deletions")
	}

	return deletions, nil
}

func checkDeleted(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Unavailable(err, "failed to read deleted rows")
	}
	if affected == 0 {
		return evidenceDomain.ErrEvidenceNotFound
	}
	return nil
}
