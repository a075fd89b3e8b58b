package repository

import (
	"context"
	"database/sql"
	"errors"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	"github.com/allisson/custody/internal/database"
	apperrors "github.com/allisson/custody/internal/errors"
)

// MySQLCustodyEventRepository implements CustodyEvent persistence for MySQL.
type MySQLCustodyEventRepository struct {
	db *sql.DB
}

// Create inserts a custody event and sets its generated ID.
func (m *MySQLCustodyEventRepository) Create(
	ctx context.Context,
	event *custodyDomain.CustodyEvent,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO custody_events
			  (evidence_id, sequence, evidence_type, action_type, handler, location, hash_before, hash_after, notes, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		event.EvidenceID,
		event.Sequence,
		string(event.EvidenceType),
		string(event.ActionType),
		event.Handler,
		event.Location,
		event.HashBefore,
		event.HashAfter,
		event.Notes,
		event.CreatedAt,
	)
	if err != nil {
		if conflictErr := conflictFromMySQL(err); conflictErr != nil {
			return conflictErr
		}
		return apperrors.Unavailable(err, "failed to create custody event")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Unavailable(err, "failed to read custody event id")
	}
	event.ID = id

	return nil
}

// GetLatest retrieves the last event of an evidence chain. Returns ErrCustodyEventNotFound
// when the chain is empty.
func (m *MySQLCustodyEventRepository) GetLatest(
	ctx context.Context,
	evidenceID int64,
) (*custodyDomain.CustodyEvent, error) {
	querier := database.GetTx(ctx, m.db)

	query := "SELECT " + custodyEventColumns + `
			  FROM custody_events
			  WHERE evidence_id = ?
			  ORDER BY sequence DESC, id DESC
			  LIMIT 1`

	event, err := scanCustodyEvent(querier.QueryRowContext(ctx, query, evidenceID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, custodyDomain.ErrCustodyEventNotFound
		}
		return nil, apperrors.Unavailable(err, "failed to get latest custody event")
	}

	return event, nil
}

// ListByEvidence retrieves every event of an evidence chain in creation order, or its
// reverse. Returns an empty slice for unknown evidence.
func (m *MySQLCustodyEventRepository) ListByEvidence(
	ctx context.Context,
	evidenceID int64,
	order custodyDomain.SortOrder,
) ([]*custodyDomain.CustodyEvent, error) {
	querier := database.GetTx(ctx, m.db)

	query := "SELECT " + custodyEventColumns + `
			  FROM custody_events
			  WHERE evidence_id = ?
			  ORDER BY id ` + orderDirection(order)

	rows, err := querier.QueryContext(ctx, query, evidenceID)
	if err != nil {
		return nil, apperrors.Unavailable(err, "failed to list custody events")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanCustodyEvents(rows)
}

// Summarize returns the event count, last sequence and last hash_after of a chain.
func (m *MySQLCustodyEventRepository) Summarize(
	ctx context.Context,
	evidenceID int64,
) (*custodyDomain.ChainSummary, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*), COALESCE(MAX(sequence), 0),
			  (SELECT hash_after FROM custody_events WHERE evidence_id = ? ORDER BY sequence DESC, id DESC LIMIT 1)
			  FROM custody_events
			  WHERE evidence_id = ?`

	summary := &custodyDomain.ChainSummary{EvidenceID: evidenceID}
	err := querier.QueryRowContext(ctx, query, evidenceID, evidenceID).Scan(
		&summary.EventCount,
		&summary.LastSequence,
		&summary.LastHashAfter,
	)
	if err != nil {
		return nil, apperrors.Unavailable(err, "failed to summarize custody chain")
	}

	return summary, nil
}

// NewMySQLCustodyEventRepository creates a new MySQL CustodyEvent repository.
func NewMySQLCustodyEventRepository(db *sql.DB) *MySQLCustodyEventRepository {
	return &MySQLCustodyEventRepository{db: db}
}
