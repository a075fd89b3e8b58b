package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/custody/internal/database"
	apperrors "github.com/allisson/custody/internal/errors"
	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
	"github.com/allisson/custody/internal/lock"
	customValidation "github.com/allisson/custody/internal/validation"
)

// evidenceUseCase implements EvidenceUseCase.
type evidenceUseCase struct {
	txManager       database.TxManager
	evidenceRepo    EvidenceRepository
	chainSummarizer ChainSummarizer
	locker          *lock.KeyedMutex
	logger          *slog.Logger
}

func validateRegisterInput(input *evidenceDomain.RegisterEvidenceInput) error {
	if err := input.EvidenceType.Validate(); err != nil {
		return evidenceDomain.ErrInvalidEvidenceType
	}

	err := validation.ValidateStruct(input,
		validation.Field(&input.Identifier,
			validation.Required.Error("identifier is required"),
			customValidation.NotBlank,
			validation.RuneLength(1, evidenceDomain.MaxIdentifierLength),
		),
		validation.Field(&input.Size,
			validation.Min(int64(0)).Error("size must not be negative"),
		),
		validation.Field(&input.ContentHash,
			validation.Required.Error("content hash is required"),
			customValidation.SHA256Hex,
		),
	)
	return customValidation.WrapValidationError(err)
}

// Register validates the input, then creates the evidence while holding the identifier
// lock so concurrent registrations of one identifier fail deterministically.
func (e *evidenceUseCase) Register(
	ctx context.Context,
	input *evidenceDomain.RegisterEvidenceInput,
) (*evidenceDomain.Evidence, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	unlock := e.locker.Lock(lock.IdentifierKey(input.EvidenceType.String(), input.Identifier))
	defer unlock()

	evidence := &evidenceDomain.Evidence{
		EvidenceType: input.EvidenceType,
		Identifier:   input.Identifier,
		ContentHash:  customValidation.NormalizeHash(input.ContentHash),
		Size:         input.Size,
		RegisteredAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	if err := e.evidenceRepo.Create(ctx, evidence); err != nil {
		return nil, apperrors.Wrap(err, "failed to register evidence")
	}

	e.logger.Info("evidence registered",
		slog.Int64("evidence_id", evidence.ID),
		slog.String("evidence_type", evidence.EvidenceType.String()),
		slog.String("content_hash", evidence.ContentHash),
	)

	return evidence, nil
}

// Get retrieves evidence by ID.
func (e *evidenceUseCase) Get(ctx context.Context, id int64) (*evidenceDomain.Evidence, error) {
	evidence, err := e.evidenceRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get evidence")
	}
	return evidence, nil
}

// Lookup resolves evidence by type and identifier.
func (e *evidenceUseCase) Lookup(
	ctx context.Context,
	evidenceType evidenceDomain.EvidenceType,
	identifier string,
) (*evidenceDomain.Evidence, error) {
	if err := evidenceType.Validate(); err != nil {
		return nil, evidenceDomain.ErrInvalidEvidenceType
	}

	evidence, err := e.evidenceRepo.GetByIdentifier(ctx, evidenceType, identifier)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to lookup evidence")
	}
	return evidence, nil
}

// List retrieves evidence ordered by ID ascending with pagination.
func (e *evidenceUseCase) List(ctx context.Context, offset, limit int) ([]*evidenceDomain.Evidence, error) {
	evidences, err := e.evidenceRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list evidence")
	}
	return evidences, nil
}

// Remove holds the evidence lock for the whole transaction, the same lock custody
// appends take, so no event can land between the summary and the delete.
func (e *evidenceUseCase) Remove(
	ctx context.Context,
	input *evidenceDomain.RemoveEvidenceInput,
) (*evidenceDomain.Deletion, error) {
	if strings.TrimSpace(input.Handler) == "" {
		return nil, evidenceDomain.ErrInvalidHandler
	}
	err := validation.Validate(input.Reason, validation.RuneLength(0, evidenceDomain.MaxReasonLength))
	if err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	unlock := e.locker.Lock(lock.EvidenceKey(input.ID))
	defer unlock()

	var deletion *evidenceDomain.Deletion
	err = e.txManager.WithTx(ctx, func(ctx context.Context) error {
		evidence, err := e.evidenceRepo.GetForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}

		summary, err := e.chainSummarizer.Summarize(ctx, input.ID)
		if err != nil {
			return err
		}

		deletion = &evidenceDomain.Deletion{
			EvidenceID:    evidence.ID,
			EvidenceType:  evidence.EvidenceType,
			Identifier:    evidence.Identifier,
			ContentHash:   evidence.ContentHash,
			EventCount:    summary.EventCount,
			LastHashAfter: summary.LastHashAfter,
			Handler:       input.Handler,
			Reason:        input.Reason,
			DeletedAt:     time.Now().UTC(),
		}
		if err := e.evidenceRepo.CreateDeletion(ctx, deletion); err != nil {
			return err
		}

		return e.evidenceRepo.Delete(ctx, input.ID)
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to remove evidence")
	}

	e.logger.Info("evidence removed",
		slog.Int64("evidence_id", deletion.EvidenceID),
		slog.Int64("event_count", deletion.EventCount),
		slog.String("handler", deletion.Handler),
	)

	return deletion, nil
}

// ListDeletions retrieves the deletion journal newest first.
func (e *evidenceUseCase) ListDeletions(
	ctx context.Context,
	offset, limit int,
) ([]*evidenceDomain.Deletion, error) {
	deletions, err := e.evidenceRepo.ListDeletions(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list evidence deletions")
	}
	return deletions, nil
}

// NewEvidenceUseCase creates a new EvidenceUseCase. locker must be the instance the
// custody use case uses.
func NewEvidenceUseCase(
	txManager database.TxManager,
	evidenceRepo EvidenceRepository,
	chainSummarizer ChainSummarizer,
	locker *lock.KeyedMutex,
	logger *slog.Logger,
) EvidenceUseCase {
	return &evidenceUseCase{
		txManager:       txManager,
		evidenceRepo:    evidenceRepo,
		chainSummarizer: chainSummarizer,
		locker:          locker,
		logger:          logger,
	}
}
