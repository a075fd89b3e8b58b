package usecase

import (
	"context"
	"time"

	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
	"github.com/allisson/custody/internal/metrics"
)

// evidenceUseCaseWithMetrics decorates EvidenceUseCase with metrics instrumentation.
type evidenceUseCaseWithMetrics struct {
	next    EvidenceUseCase
	metrics metrics.BusinessMetrics
}

// NewEvidenceUseCaseWithMetrics wraps an EvidenceUseCase with metrics recording.
func NewEvidenceUseCaseWithMetrics(useCase EvidenceUseCase, m metrics.BusinessMetrics) EvidenceUseCase {
	return &evidenceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (e *evidenceUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "evidence", operation, status)
	e.metrics.RecordDuration(ctx, "evidence", operation, time.Since(start), status)
}

// Register records metrics for evidence registration.
func (e *evidenceUseCaseWithMetrics) Register(
	ctx context.Context,
	input *evidenceDomain.RegisterEvidenceInput,
) (*evidenceDomain.Evidence, error) {
	start := time.Now()
	evidence, err := e.next.Register(ctx, input)
	e.record(ctx, "evidence_register", start, err)
	return evidence, err
}

// Get records metrics for evidence retrieval.
func (e *evidenceUseCaseWithMetrics) Get(ctx context.Context, id int64) (*evidenceDomain.Evidence, error) {
	start := time.Now()
	evidence, err := e.next.Get(ctx, id)
	e.record(ctx, "evidence_get", start, err)
	return evidence, err
}

// Lookup records metrics for evidence lookups by identifier.
func (e *evidenceUseCaseWithMetrics) Lookup(
	ctx context.Context,
	evidenceType evidenceDomain.EvidenceType,
	identifier string,
) (*evidenceDomain.Evidence, error) {
	start := time.Now()
	evidence, err := e.next.Lookup(ctx, evidenceType, identifier)
	e.record(ctx, "evidence_lookup", start, err)
	return evidence, err
}

// List records metrics for evidence listing.
func (e *evidenceUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*evidenceDomain.Evidence, error) {
	start := time.Now()
	evidences, err := e.next.List(ctx, offset, limit)
	e.record(ctx, "evidence_list", start, err)
	return evidences, err
}

// Remove records metrics for evidence removal.
func (e *evidenceUseCaseWithMetrics) Remove(
	ctx context.Context,
	input *evidenceDomain.RemoveEvidenceInput,
) (*evidenceDomain.Deletion, error) {
	start := time.Now()
	deletion, err := e.next.Remove(ctx, input)
	e.record(ctx, "evidence_remove", start, err)
	return deletion, err
}

// ListDeletions records metrics for deletion journal listing.
func (e *evidenceUseCaseWithMetrics) ListDeletions(
	ctx context.Context,
	offset, limit int,
) ([]*evidenceDomain.Deletion, error) {
	start := time.Now()
	deletions, err := e.next.ListDeletions(ctx, offset, limit)
	e.record(ctx, "evidence_list_deletions", start, err)
	return deletions, err
}
