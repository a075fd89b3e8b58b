package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	validation "github.com/jellydator/validation"
	"golang.org/x/sync/errgroup"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	"github.com/allisson/custody/internal/database"
	apperrors "github.com/allisson/custody/internal/errors"
	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
	"github.com/allisson/custody/internal/lock"
	customValidation "github.com/allisson/custody/internal/validation"
)

// DefaultVerifyConcurrency bounds VerifyAll when Config leaves it unset.
const DefaultVerifyConcurrency = 4

// Config holds custody use case configuration
type Config struct {
	// VerifyConcurrency is the number of chains VerifyAll walks at once.
	VerifyConcurrency int
}

// custodyUseCase implements CustodyUseCase.
type custodyUseCase struct {
	config       Config
	txManager    database.TxManager
	evidenceRepo EvidenceReader
	custodyRepo  CustodyEventRepository
	locker       *lock.KeyedMutex
	logger       *slog.Logger
	now          func() time.Time
}

func validateAppendInput(input *custodyDomain.AppendEventInput) error {
	if strings.TrimSpace(input.Handler) == "" {
		return custodyDomain.ErrInvalidActor
	}
	if err := input.ActionType.Validate(); err != nil {
		return custodyDomain.ErrInvalidActionType
	}
	if input.EvidenceType != "" {
		if err := input.EvidenceType.Validate(); err != nil {
			return evidenceDomain.ErrInvalidEvidenceType
		}
	}
	if input.HashAfter != nil && !customValidation.IsSHA256Hex(*input.HashAfter) {
		return custodyDomain.ErrInvalidHash
	}

	err := validation.ValidateStruct(input,
		validation.Field(&input.Handler, validation.RuneLength(1, custodyDomain.MaxHandlerLength)),
		validation.Field(&input.Location, validation.RuneLength(0, custodyDomain.MaxLocationLength)),
		validation.Field(&input.Notes, validation.RuneLength(0, custodyDomain.MaxNotesLength)),
	)
	return customValidation.WrapValidationError(err)
}

// nextEvent builds the event that follows latest (nil for an empty chain). An omitted
// hashAfter carries the previous hashAfter forward, or the registered content hash for
// the first event, so hashAfter is never null. The timestamp never precedes latest.
func nextEvent(
	evidence *evidenceDomain.Evidence,
	latest *custodyDomain.CustodyEvent,
	input *custodyDomain.AppendEventInput,
	now time.Time,
) (*custodyDomain.CustodyEvent, error) {
	if input.EvidenceType != "" && input.EvidenceType != evidence.EvidenceType {
		return nil, custodyDomain.ErrEvidenceTypeMismatch
	}
	if latest != nil && latest.ActionType.IsTerminal() {
		return nil, custodyDomain.ErrEvidenceSealed
	}

	event := &custodyDomain.CustodyEvent{
		EvidenceID:   evidence.ID,
		Sequence:     1,
		EvidenceType: evidence.EvidenceType,
		ActionType:   input.ActionType,
		Handler:      strings.TrimSpace(input.Handler),
		Location:     input.Location,
		Notes:        input.Notes,
		CreatedAt:    now.UTC().Truncate(time.Microsecond),
	}

	var carried string
	if latest == nil {
		carried = evidence.ContentHash
	} else {
		event.Sequence = latest.Sequence + 1
		event.HashBefore = latest.HashAfter
		if latest.HashAfter != nil {
			carried = *latest.HashAfter
		}
		if event.CreatedAt.Before(latest.CreatedAt) {
			event.CreatedAt = latest.CreatedAt
		}
	}

	if input.HashAfter != nil {
		carried = customValidation.NormalizeHash(*input.HashAfter)
	}
	if carried != "" {
		event.HashAfter = &carried
	}

	return event, nil
}

// Append resolves the evidence under a row lock before validating the input, so an
// unknown evidence ID is reported ahead of any other failure.
func (c *custodyUseCase) Append(
	ctx context.Context,
	input *custodyDomain.AppendEventInput,
) (*custodyDomain.CustodyEvent, error) {
	unlock := c.locker.Lock(lock.EvidenceKey(input.EvidenceID))
	defer unlock()

	var event *custodyDomain.CustodyEvent
	err := c.txManager.WithTx(ctx, func(ctx context.Context) error {
		evidence, err := c.evidenceRepo.GetForUpdate(ctx, input.EvidenceID)
		if err != nil {
			if apperrors.Is(err, evidenceDomain.ErrEvidenceNotFound) {
				return custodyDomain.ErrUnknownEvidence
			}
			return err
		}

		if err := validateAppendInput(input); err != nil {
			return err
		}

		latest, err := c.custodyRepo.GetLatest(ctx, evidence.ID)
		if err != nil {
			if !apperrors.Is(err, custodyDomain.ErrCustodyEventNotFound) {
				return err
			}
			latest = nil
		}

		event, err = nextEvent(evidence, latest, input, c.now())
		if err != nil {
			return err
		}

		return c.custodyRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to append custody event")
	}

	c.logger.Info("custody event appended",
		slog.Int64("evidence_id", event.EvidenceID),
		slog.Int64("event_id", event.ID),
		slog.Int64("sequence", event.Sequence),
		slog.String("action_type", event.ActionType.String()),
		slog.String("handler", event.Handler),
	)

	return event, nil
}

// History returns every event for the evidence in the requested order.
func (c *custodyUseCase) History(
	ctx context.Context,
	evidenceID int64,
	order custodyDomain.SortOrder,
) ([]*custodyDomain.CustodyEvent, error) {
	if order != custodyDomain.OrderAscending && order != custodyDomain.OrderDescending {
		return nil, custodyDomain.ErrInvalidSortOrder
	}

	events, err := c.custodyRepo.ListByEvidence(ctx, evidenceID, order)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get custody history")
	}
	return events, nil
}

// VerifyChain reads the chain in creation order and walks it.
func (c *custodyUseCase) VerifyChain(
	ctx context.Context,
	evidenceID int64,
) (*custodyDomain.ChainVerification, error) {
	events, err := c.custodyRepo.ListByEvidence(ctx, evidenceID, custodyDomain.OrderAscending)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to verify custody chain")
	}

	result := custodyDomain.VerifyChain(evidenceID, events)
	if !result.Valid {
		c.logger.Warn("custody chain broken",
			slog.Int64("evidence_id", evidenceID),
			slog.Int64("broken_at", *result.BrokenAt),
			slog.String("reason", string(result.Reason)),
		)
	}

	return result, nil
}

// VerifyIntegrity compares currentHash with the latest recorded hash_after. A mismatch
// is logged as a forensic alarm and returned as a result, not an error.
func (c *custodyUseCase) VerifyIntegrity(
	ctx context.Context,
	evidenceID int64,
	currentHash string,
) (*custodyDomain.IntegrityResult, error) {
	if !customValidation.IsSHA256Hex(currentHash) {
		return nil, custodyDomain.ErrInvalidHash
	}

	latest, err := c.custodyRepo.GetLatest(ctx, evidenceID)
	if err != nil {
		if !apperrors.Is(err, custodyDomain.ErrCustodyEventNotFound) {
			return nil, apperrors.Wrap(err, "failed to verify evidence integrity")
		}
		latest = nil
	}

	result := custodyDomain.CheckIntegrity(evidenceID, latest, customValidation.NormalizeHash(currentHash))
	if !result.Matches {
		attrs := []any{
			slog.Int64("evidence_id", evidenceID),
			slog.String("current_hash", result.CurrentHash),
		}
		if result.RecordedHash != nil {
			attrs = append(attrs, slog.String("recorded_hash", *result.RecordedHash))
		}
		c.logger.Warn("evidence integrity mismatch", attrs...)
	}

	return result, nil
}

// VerifyAll walks every chain with bounded concurrency. The first storage error cancels
// the remaining walks.
func (c *custodyUseCase) VerifyAll(ctx context.Context) (*custodyDomain.VerificationReport, error) {
	ids, err := c.evidenceRepo.ListIDs(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to verify custody chains")
	}

	results := make([]*custodyDomain.ChainVerification, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.VerifyConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			result, err := c.VerifyChain(gctx, id)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &custodyDomain.VerificationReport{
		TotalChecked: int64(len(results)),
		Broken:       make([]*custodyDomain.ChainVerification, 0),
	}
	for _, result := range results {
		if result.Valid {
			report.ValidCount++
			continue
		}
		report.BrokenCount++
		report.Broken = append(report.Broken, result)
	}

	return report, nil
}

// NewCustodyUseCase creates a new CustodyUseCase. locker must be shared with the
// evidence use case so removals and appends on one evidence serialize.
func NewCustodyUseCase(
	config Config,
	txManager database.TxManager,
	evidenceRepo EvidenceReader,
	custodyRepo CustodyEventRepository,
	locker *lock.KeyedMutex,
	logger *slog.Logger,
) CustodyUseCase {
	if config.VerifyConcurrency <= 0 {
		config.VerifyConcurrency = DefaultVerifyConcurrency
	}

	return &custodyUseCase{
		config:       config,
		txManager:    txManager,
		evidenceRepo: evidenceRepo,
		custodyRepo:  custodyRepo,
		locker:       locker,
		logger:       logger,
		now:          time.Now,
	}
}
