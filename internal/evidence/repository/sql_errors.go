package repository

import (
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	apperrors "github.com/allisson/custody/internal/errors"
	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
)

// Unique constraint names shared by both schemas.
const (
	identifierConstraint  = "evidence_identifier_key"
	contentHashConstraint = "evidence_content_hash_key"
)

const (
	pqUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	mysqlDuplicateMarker = "for key"
)

// duplicateFromPostgres maps a unique violation on the evidence table to a domain error.
// It returns nil for any other error.
func duplicateFromPostgres(err error) error {
	var pqErr *pq.Error
	if !apperrors.As(err, &pqErr) || string(pqErr.Code) != pqUniqueViolation {
		return nil
	}
	switch pqErr.Constraint {
	case identifierConstraint:
		return evidenceDomain.ErrDuplicateIdentifier
	case contentHashConstraint:
		return evidenceDomain.ErrDuplicateContent
	default:
		return evidenceDomain.ErrDuplicateEvidence
	}
}

// duplicateFromMySQL maps error 1062 on the evidence table to a domain error. MySQL only
// reports the key name inside the message, e.g. "Duplicate entry 'x' for key
// 'evidence.evidence_content_hash_key'".
func duplicateFromMySQL(err error) error {
	var myErr *mysql.MySQLError
	if !apperrors.As(err, &myErr) || myErr.Number != mysqlDuplicateEntry {
		return nil
	}
	_, key, found := strings.Cut(myErr.Message, mysqlDuplicateMarker)
	switch {
	case found && strings.Contains(key, identifierConstraint):
		return evidenceDomain.ErrDuplicateIdentifier
	case found && strings.Contains(key, contentHashConstraint):
		return evidenceDomain.ErrDuplicateContent
	default:
		return evidenceDomain.ErrDuplicateEvidence
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvidence(row rowScanner) (*evidenceDomain.Evidence, error) {
	var evidence evidenceDomain.Evidence
	var evidenceType string

	err := row.Scan(
		&evidence.ID,
		&evidenceType,
		&evidence.Identifier,
		&evidence.ContentHash,
		&evidence.Size,
		&evidence.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}

	evidence.EvidenceType = evidenceDomain.EvidenceType(evidenceType)
	return &evidence, nil
}

func scanDeletion(row rowScanner) (*evidenceDomain.Deletion, error) {
	var deletion evidenceDomain.Deletion
	var evidenceType string

	err := row.Scan(
		&deletion.ID,
		&deletion.EvidenceID,
		&evidenceType,
		&deletion.Identifier,
		&deletion.ContentHash,
		&deletion.EventCount,
		&deletion.LastHashAfter,
		&deletion.Handler,
		&deletion.Reason,
		&deletion.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	deletion.EvidenceType = evidenceDomain.EvidenceType(evidenceType)
	return &deletion, nil
}
