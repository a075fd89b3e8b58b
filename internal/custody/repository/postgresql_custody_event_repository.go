// Package repository implements data persistence for the custody ledger.
//
// Custody events are insert-only: neither implementation exposes an update, and the
// schemas reject UPDATE on custody_events with a trigger.
package repository

import (
	"context"
	"database/sql"
	"errors"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	"github.com/allisson/custody/internal/database"
	apperrors "github.com/allisson/custody/internal/errors"
)

// PostgreSQLCustodyEventRepository implements CustodyEvent persistence for PostgreSQL.
type PostgreSQLCustodyEventRepository struct {
	db *sql.DB
}

// Create inserts a custody event and sets its generated ID.
func (p *PostgreSQLCustodyEventRepository) Create(
	ctx context.Context,
	event *custodyDomain.CustodyEvent,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO custody_events
			  (evidence_id, sequence, evidence_type, action_type, handler, location, hash_before, hash_after, notes, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`

	err := querier.QueryRowContext(
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
	).Scan(&event.ID)
	if err != nil {
		if conflictErr := conflictFromPostgres(err); conflictErr != nil {
			return conflictErr
		}
		return apperrors.Unavailable(err, "failed to create custody event")
	}

	return nil
}

// GetLatest retrieves the last event of an evidence chain. Returns ErrCustodyEventNotFound
// when the chain is empty.
func (p *PostgreSQLCustodyEventRepository) GetLatest(
	ctx context.Context,
	evidenceID int64,
) (*custodyDomain.CustodyEvent, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + custodyEventColumns + `
			  FROM custody_events
			  WHERE evidence_id = $1
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
func (p *PostgreSQLCustodyEventRepository) ListByEvidence(
	ctx context.Context,
	evidenceID int64,
	order custodyDomain.SortOrder,
) ([]*custodyDomain.CustodyEvent, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + custodyEventColumns + `
			  FROM custody_events
			  WHERE evidence_id = $1
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
func (p *PostgreSQLCustodyEventRepository) Summarize(
	ctx context.Context,
	evidenceID int64,
) (*custodyDomain.ChainSummary, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*), COALESCE(MAX(sequence), 0),
			  (SELECT hash_after FROM custody_events WHERE evidence_id = $1 ORDER BY sequence DESC, id DESC LIMIT 1)
			  FROM custody_events
			  WHERE evidence_id = $1`

	summary := &custodyDomain.ChainSummary{EvidenceID: evidenceID}
	err := querier.QueryRowContext(ctx, query, evidenceID).Scan(
		&summary.EventCount,
		&summary.LastSequence,
		&summary.LastHashAfter,
	)
	if err != nil {
		return nil, apperrors.Unavailable(err, "failed to summarize custody chain")
	}

	return summary, nil
}

// NewPostgreSQLCustodyEventRepository creates a new PostgreSQL CustodyEvent repository.
func NewPostgreSQLCustodyEventRepository(db *sql.DB) *PostgreSQLCustodyEventRepository {
	return &PostgreSQLCustodyEventRepository{db: db}
}
