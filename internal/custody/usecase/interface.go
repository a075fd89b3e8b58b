// Package usecase defines business logic interfaces for the custody ledger.
package usecase

import (
	"context"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
)

// CustodyEventRepository defines persistence operations for custody events. There is no
// update: events are immutable once created.
type CustodyEventRepository interface {
	// Create stores a new event and sets its ID. Returns ErrDuplicateSequence when another
	// writer already used the sequence number.
	Create(ctx context.Context, event *custodyDomain.CustodyEvent) error

	// GetLatest returns the last event of a chain, or ErrCustodyEventNotFound.
	GetLatest(ctx context.Context, evidenceID int64) (*custodyDomain.CustodyEvent, error)

	// ListByEvidence returns all events of a chain ordered by ID.
	ListByEvidence(
		ctx context.Context,
		evidenceID int64,
		order custodyDomain.SortOrder,
	) ([]*custodyDomain.CustodyEvent, error)

	// Summarize returns the event count, last sequence and last hash_after of a chain,
	// used to journal a removal before the cascade.
	Summarize(ctx context.Context, evidenceID int64) (*custodyDomain.ChainSummary, error)
}

// EvidenceReader is the slice of the evidence registry the ledger consults.
type EvidenceReader interface {
	// GetForUpdate resolves evidence and locks its row for the surrounding transaction.
	GetForUpdate(ctx context.Context, id int64) (*evidenceDomain.Evidence, error)

	ListIDs(ctx context.Context) ([]int64, error)
}

// CustodyUseCase is the only write path into custody history and answers chain
// verification queries.
type CustodyUseCase interface {
	// Append records an action on evidence. Appends for one evidence ID are serialized;
	// different IDs proceed concurrently. Fails with ErrUnknownEvidence, ErrInvalidActor,
	// ErrInvalidActionType, ErrInvalidHash, ErrEvidenceTypeMismatch or ErrEvidenceSealed
	// without writing anything.
	Append(ctx context.Context, input *custodyDomain.AppendEventInput) (*custodyDomain.CustodyEvent, error)

	// History returns every event for the evidence. Unknown evidence yields an empty slice.
	History(
		ctx context.Context,
		evidenceID int64,
		order custodyDomain.SortOrder,
	) ([]*custodyDomain.CustodyEvent, error)

	// VerifyChain walks the chain and reports the first broken link. Storage failures
	// are returned as errors, never as an invalid chain.
	VerifyChain(ctx context.Context, evidenceID int64) (*custodyDomain.ChainVerification, error)

	// VerifyIntegrity compares a freshly computed hash of the evidence bytes with the
	// last recorded hash_after.
	VerifyIntegrity(
		ctx context.Context,
		evidenceID int64,
		currentHash string,
	) (*custodyDomain.IntegrityResult, error)

	// VerifyAll verifies the chain of every registered evidence.
	VerifyAll(ctx context.Context) (*custodyDomain.VerificationReport, error)
}
