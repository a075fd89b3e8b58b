// Package usecase defines business logic interfaces for the evidence registry.
package usecase

import (
	"context"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
)

// EvidenceRepository defines persistence operations for registered evidence.
// Implementations must support transaction-aware operations via context propagation.
type EvidenceRepository interface {
	// Create stores new evidence and sets its ID. Returns ErrDuplicateIdentifier or
	// ErrDuplicateContent on collisions.
	Create(ctx context.Context, evidence *evidenceDomain.Evidence) error

	// Get retrieves evidence by ID. Returns ErrEvidenceNotFound if not found.
	Get(ctx context.Context, id int64) (*evidenceDomain.Evidence, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*evidenceDomain.Evidence, error)

	// GetByIdentifier retrieves evidence by type and identifier.
	GetByIdentifier(
		ctx context.Context,
		evidenceType evidenceDomain.EvidenceType,
		identifier string,
	) (*evidenceDomain.Evidence, error)

	List(ctx context.Context, offset, limit int) ([]*evidenceDomain.Evidence, error)

	ListIDs(ctx context.Context) ([]int64, error)

	// Delete removes evidence; its custody events cascade.
	Delete(ctx context.Context, id int64) error

	CreateDeletion(ctx context.Context, deletion *evidenceDomain.Deletion) error

	ListDeletions(ctx context.Context, offset, limit int) ([]*evidenceDomain.Deletion, error)
}

// ChainSummarizer reports the tail of an evidence custody chain. The custody
// repositories implement it.
type ChainSummarizer interface {
	Summarize(ctx context.Context, evidenceID int64) (*custodyDomain.ChainSummary, error)
}

// EvidenceUseCase mints evidence identities and removes evidence together with its
// custody history.
type EvidenceUseCase interface {
	// Register validates and stores new evidence. The content hash is normalised to
	// lowercase. Returns ErrDuplicateIdentifier when the identifier is taken within its
	// evidence type, ErrDuplicateContent when the hash is already registered.
	Register(ctx context.Context, input *evidenceDomain.RegisterEvidenceInput) (*evidenceDomain.Evidence, error)

	// Get retrieves evidence by ID. Returns ErrEvidenceNotFound if not found.
	Get(ctx context.Context, id int64) (*evidenceDomain.Evidence, error)

	// Lookup resolves evidence by type and identifier. Returns ErrEvidenceNotFound if
	// nothing is registered under that identifier.
	Lookup(
		ctx context.Context,
		evidenceType evidenceDomain.EvidenceType,
		identifier string,
	) (*evidenceDomain.Evidence, error)

	// List retrieves evidence ordered by ID ascending with pagination.
	List(ctx context.Context, offset, limit int) ([]*evidenceDomain.Evidence, error)

	// Remove journals the deletion with the chain summary, then deletes the evidence
	// and every custody event for it, in one transaction.
	Remove(ctx context.Context, input *evidenceDomain.RemoveEvidenceInput) (*evidenceDomain.Deletion, error)

	// ListDeletions retrieves the deletion journal newest first.
	ListDeletions(ctx context.Context, offset, limit int) ([]*evidenceDomain.Deletion, error)
}
