package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/custody/internal/database"
	apperrors "github.com/allisson/custody/internal/errors"
	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
)

const mysqlEvidenceColumns = "id, evidence_type, identifier, content_hash, size, registered_at"

// MySQLEvidenceRepository implements Evidence persistence for MySQL.
// IDs come from AUTO_INCREMENT and are read back with LastInsertId.
type MySQLEvidenceRepository struct {
	db *sql.DB
}

// Create inserts a new Evidence and sets its generated ID. Returns ErrDuplicateIdentifier
// or ErrDuplicateContent when a unique key rejects the row.
func (m *MySQLEvidenceRepository) Create(ctx context.Context, evidence *evidenceDomain.Evidence) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO evidence (evidence_type, identifier, content_hash, size, registered_at)
			  VALUES (?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(evidence.EvidenceType),
		evidence.Identifier,
		evidence.ContentHash,
		evidence.Size,
		evidence.RegisteredAt,
	)
	if err != nil {
		if dupErr := duplicateFromMySQL(err); dupErr != nil {
			return dupErr
		}
		return apperrors.Unavailable(err, "failed to create evidence")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Unavailable(err, "failed to read evidence id")
	}
	evidence.ID = id

	return nil
}

// Get retrieves an Evidence by ID.
func (m *MySQLEvidenceRepository) Get(ctx context.Context, id int64) (*evidenceDomain.Evidence, error) {
	query := "SELECT " + mysqlEvidenceColumns + " FROM evidence WHERE id = ?"
	return m.getOne(ctx, query, id)
}

// GetForUpdate retrieves an Evidence by ID and locks its row until the surrounding
// transaction ends.
func (m *MySQLEvidenceRepository) GetForUpdate(
	ctx context.Context,
	id int64,
) (*evidenceDomain.Evidence, error) {
	query := "SELECT " + mysqlEvidenceColumns + " FROM evidence WHERE id = ? FOR UPDATE"
	return m.getOne(ctx, query, id)
}

// GetByIdentifier retrieves an Evidence by its type and identifier.
func (m *MySQLEvidenceRepository) GetByIdentifier(
	ctx context.Context,
	evidenceType evidenceDomain.EvidenceType,
	identifier string,
) (*evidenceDomain.Evidence, error) {
	query := "SELECT " + mysqlEvidenceColumns + " FROM evidence WHERE evidence_type = ? AND identifier = ?"
	return m.getOne(ctx, query, string(evidenceType), identifier)
}

// List retrieves evidence ordered by ID ascending with pagination.
func (m *MySQLEvidenceRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*evidenceDomain.Evidence, error) {
	querier := database.GetTx(ctx, m.db)

	query := "SELECT " + mysqlEvidenceColumns + " FROM evidence ORDER BY id ASC LIMIT ? OFFSET ?"

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
func (m *MySQLEvidenceRepository) ListIDs(ctx context.Context) ([]int64, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, "SELECT id FROM evidence ORDER BY id ASC")
	if err != nil {
		return nil, apperrors.Unavailable(err, "failed to list evidence ids")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanIDs(rows)
}

// Delete removes an Evidence. Custody events cascade with it.
func (m *MySQLEvidenceRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, "DELETE FROM evidence WHERE id = ?", id)
	if err != nil {
		return apperrors.Unavailable(err, "failed to delete evidence")
	}

	return checkDeleted(result)
}

// CreateDeletion inserts a deletion journal entry and sets its generated ID.
func (m *MySQLEvidenceRepository) CreateDeletion(
	ctx context.Context,
	deletion *evidenceDomain.Deletion,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO evidence_deletions
			  (evidence_id, evidence_type, identifier, content_hash, event_count, last_hash_after, handler, reason, deleted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
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
	)
	if err != nil {
		return apperrors.Unavailable(err, "failed to create evidence deletion")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Unavailable(err, "failed to read evidence deletion id")
	}
	deletion.ID = id

	return nil
}

// ListDeletions retrieves deletion journal entries ordered by ID descending (newest first).
func (m *MySQLEvidenceRepository) ListDeletions(
	ctx context.Context,
	offset, limit int,
) ([]*evidenceDomain.Deletion, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, evidence_id, evidence_type, identifier, content_hash, event_count,
			  last_hash_after, handler, reason, deleted_at
			  FROM evidence_deletions
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Unavailable(err, "failed to list evidence deletions")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanDeletions(rows)
}

func (m *MySQLEvidenceRepository) getOne(
	ctx context.Context,
	query string,
	args ...any,
) (*evidenceDomain.Evidence, error) {
	querier := database.GetTx(ctx, m.db)

	evidence, err := scanEvidence(querier.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, evidenceDomain.ErrEvidenceNotFound
		}
		return nil, apperrors.Unavailable(err, "failed to get evidence")
	}

	return evidence, nil
}

// NewMySQLEvidenceRepository creates a new MySQL Evidence repository.
func NewMySQLEvidenceRepository(db *sql.DB) *MySQLEvidenceRepository {
	return &MySQLEvidenceRepository{db: db}
}
