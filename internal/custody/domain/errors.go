package domain

import (
	"github.com/allisson/custody/internal/errors"
)

// Custody ledger errors. Validation failures are returned to the caller as-is and
// never swallowed: every write must be accounted for.
var (
	// ErrUnknownEvidence indicates an append referenced evidence the registry does not know.
	ErrUnknownEvidence = errors.Wrap(errors.ErrNotFound, "unknown evidence")

	// ErrInvalidActor indicates an append without an attributable handler.
	ErrInvalidActor = errors.Wrap(errors.ErrInvalidInput, "handler must not be blank")

	// ErrInvalidActionType indicates an unknown custody action.
	ErrInvalidActionType = errors.Wrap(errors.ErrInvalidInput, "invalid action type")

	// ErrEvidenceTypeMismatch indicates an event type that contradicts the registered evidence.
	ErrEvidenceTypeMismatch = errors.Wrap(errors.ErrInvalidInput, "evidence type does not match the registry")

	// ErrInvalidHash indicates a hash that is not a hex-encoded SHA-256 digest.
	ErrInvalidHash = errors.Wrap(errors.ErrInvalidInput, "hash must be a hex-encoded SHA-256 digest")

	// ErrInvalidSortOrder indicates an order other than asc or desc.
	ErrInvalidSortOrder = errors.Wrap(errors.ErrInvalidInput, "order must be asc or desc")

	// ErrEvidenceSealed indicates an append after a TOMBSTONE event.
	ErrEvidenceSealed = errors.Wrap(errors.ErrConflict, "custody chain is sealed by a tombstone event")

	// ErrCustodyEventNotFound indicates the evidence has no custody event.
	ErrCustodyEventNotFound = errors.Wrap(errors.ErrNotFound, "custody event not found")

	// ErrDuplicateSequence indicates a concurrent writer already used the sequence number.
	ErrDuplicateSequence = errors.Wrap(errors.ErrConflict, "custody event sequence already recorded")
)
