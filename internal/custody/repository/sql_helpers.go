package repository

import (
	"database/sql"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	apperrors "github.com/allisson/custody/internal/errors"
	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
)

const custodyEventColumns = "id, evidence_id, sequence, evidence_type, action_type, handler, location, " +
	"hash_before, hash_after, notes, created_at"

const sequenceConstraint = "custody_events_evidence_sequence_key"

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	mysqlDuplicateEntry   = 1062
	mysqlNoReferencedRow  = 1452
)

// conflictFromPostgres maps constraint violations raised by an insert into custody_events.
func conflictFromPostgres(err error) error {
	var pqErr *pq.Error
	if !apperrors.As(err, &pqErr) {
		return nil
	}
	switch {
	case string(pqErr.Code) == pqUniqueViolation && pqErr.Constraint == sequenceConstraint:
		return custodyDomain.ErrDuplicateSequence
	case string(pqErr.Code) == pqForeignKeyViolation:
		return custodyDomain.ErrUnknownEvidence
	default:
		return nil
	}
}

// conflictFromMySQL maps constraint violations raised by an insert into custody_events.
func conflictFromMySQL(err error) error {
	var myErr *mysql.MySQLError
	if !apperrors.As(err, &myErr) {
		return nil
	}
	switch {
	case myErr.Number == mysqlDuplicateEntry && strings.Contains(myErr.Message, sequenceConstraint):
		return custodyDomain.ErrDuplicateSequence
	case myErr.Number == mysqlNoReferencedRow:
		return custodyDomain.ErrUnknownEvidence
	default:
		return nil
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustodyEvent(row rowScanner) (*custodyDomain.CustodyEvent, error) {
	var event custodyDomain.CustodyEvent
	var evidenceType, actionType string

	err := row.Scan(
		&event.ID,
		&event.EvidenceID,
		&event.Sequence,
		&evidenceType,
		&actionType,
		&event.Handler,
		&event.Location,
		&event.HashBefore,
		&event.HashAfter,
		&event.Notes,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.EvidenceType = evidenceDomain.EvidenceType(evidenceType)
	event.ActionType = custodyDomain.ActionType(actionType)
	return &event, nil
}

func scanCustodyEvents(rows *sql.Rows) ([]*custodyDomain.CustodyEvent, error) {
	events := make([]*custodyDomain.CustodyEvent, 0)
	for rows.Next() {
		event, err := scanCustodyEvent(rows)
		if err != nil {
			return nil, apperrors.Unavailable(err, "failed to scan custody event")
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Unavailable(err, "failed to iterate custody events")
	}

	return events, nil
}

func orderDirection(order custodyDomain.SortOrder) string {
	if order == custodyDomain.OrderAscending {
		return "ASC"
	}
	return "DESC"
}
