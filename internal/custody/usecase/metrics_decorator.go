package usecase

import (
	"context"
	"time"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	"github.com/allisson/custody/internal/metrics"
)

// custodyUseCaseWithMetrics decorates CustodyUseCase with metrics instrumentation.
type custodyUseCaseWithMetrics struct {
	next    CustodyUseCase
	metrics metrics.BusinessMetrics
}

// NewCustodyUseCaseWithMetrics wraps a CustodyUseCase with metrics recording.
func NewCustodyUseCaseWithMetrics(useCase CustodyUseCase, m metrics.BusinessMetrics) CustodyUseCase {
	return &custodyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *custodyUseCaseWithMetrics) record(ctx context.Context, operation, status string, start time.Time) {
	c.metrics.RecordOperation(ctx, "custody", operation, status)
	c.metrics.RecordDuration(ctx, "custody", operation, time.Since(start), status)
}

func errorStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// Append records metrics for custody appends.
func (c *custodyUseCaseWithMetrics) Append(
	ctx context.Context,
	input *custodyDomain.AppendEventInput,
) (*custodyDomain.CustodyEvent, error) {
	start := time.Now()
	event, err := c.next.Append(ctx, input)
	c.record(ctx, "custody_append", errorStatus(err), start)
	return event, err
}

// History records metrics for history reads.
func (c *custodyUseCaseWithMetrics) History(
	ctx context.Context,
	evidenceID int64,
	order custodyDomain.SortOrder,
) ([]*custodyDomain.CustodyEvent, error) {
	start := time.Now()
	events, err := c.next.History(ctx, evidenceID, order)
	c.record(ctx, "custody_history", errorStatus(err), start)
	return events, err
}

// VerifyChain records metrics for chain verification. A broken chain is recorded with
// status "broken" and raises a forensic alarm.
func (c *custodyUseCaseWithMetrics) VerifyChain(
	ctx context.Context,
	evidenceID int64,
) (*custodyDomain.ChainVerification, error) {
	start := time.Now()
	result, err := c.next.VerifyChain(ctx, evidenceID)

	status := errorStatus(err)
	if err == nil && !result.Valid {
		status = "broken"
		c.metrics.RecordForensicAlarm(ctx, metrics.AlarmChainBroken, string(result.Reason))
	}
	c.record(ctx, "custody_verify_chain", status, start)

	return result, err
}

// VerifyIntegrity records metrics for integrity checks, with status "mismatch" and a
// forensic alarm for a failed comparison.
func (c *custodyUseCaseWithMetrics) VerifyIntegrity(
	ctx context.Context,
	evidenceID int64,
	currentHash string,
) (*custodyDomain.IntegrityResult, error) {
	start := time.Now()
	result, err := c.next.VerifyIntegrity(ctx, evidenceID, currentHash)

	status := errorStatus(err)
	if err == nil && !result.Matches {
		status = "mismatch"
		reason := "hash_differs"
		if result.RecordedHash == nil {
			reason = "no_custody_events"
		}
		c.metrics.RecordForensicAlarm(ctx, metrics.AlarmIntegrityMismatch, reason)
	}
	c.record(ctx, "custody_verify_integrity", status, start)

	return result, err
}

// VerifyAll records metrics for full ledger verification and one forensic alarm per
// broken chain.
func (c *custodyUseCaseWithMetrics) VerifyAll(ctx context.Context) (*custodyDomain.VerificationReport, error) {
	start := time.Now()
	report, err := c.next.VerifyAll(ctx)
	c.record(ctx, "custody_verify_all", errorStatus(err), start)
	if err == nil {
		for _, broken := range report.Broken {
			c.metrics.RecordForensicAlarm(ctx, metrics.AlarmChainBroken, string(broken.Reason))
		}
	}
	return report, err
}
