package domain

import (
	"github.com/allisson/custody/internal/errors"
)

// Evidence registry errors.
var (
	// ErrEvidenceNotFound indicates no evidence matches the given ID or identifier.
	ErrEvidenceNotFound = errors.Wrap(errors.ErrNotFound, "evidence not found")

	// ErrDuplicateEvidence indicates the evidence is already registered.
	ErrDuplicateEvidence = errors.Wrap(errors.ErrConflict, "duplicate evidence")

	// ErrDuplicateIdentifier indicates another evidence of the same type uses the identifier.
	ErrDuplicateIdentifier = errors.Wrap(ErrDuplicateEvidence, "identifier already registered")

	// ErrDuplicateContent indicates another evidence already has the same content hash.
	ErrDuplicateContent = errors.Wrap(ErrDuplicateEvidence, "content hash already registered")

	// ErrInvalidEvidenceType indicates an unknown evidence type.
	ErrInvalidEvidenceType = errors.Wrap(errors.ErrInvalidInput, "invalid evidence type")

	// ErrInvalidHandler indicates a removal without an attributable handler.
	ErrInvalidHandler = errors.Wrap(errors.ErrInvalidInput, "handler must not be blank")
)
