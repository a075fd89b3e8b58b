package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics defines the interface for recording business operation metrics.
// Implementations track operation counts and durations for observability across
// business domains (evidence, custody).
type BusinessMetrics interface {
	// RecordOperation records a business operation with its status.
	// Domain examples: "evidence", "custody"
	// Operation examples: "evidence_register", "custody_append", "custody_verify_chain"
	// Status examples: "success", "error"
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the duration of a business operation with its status.
	// Duration is recorded in seconds as a histogram for percentile calculations.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordForensicAlarm counts a custody finding that needs an investigator: a broken
	// chain or an integrity mismatch.
	// Alarm examples: "chain_broken", "integrity_mismatch"
	// Reason examples: "hash_mismatch", "sequence_gap", "hash_differs", "no_custody_events"
	RecordForensicAlarm(ctx context.Context, alarm, reason string)
}

// Forensic alarm kinds.
const (
	AlarmChainBroken       = "chain_broken"
	AlarmIntegrityMismatch = "integrity_mismatch"
)

// businessMetrics implements BusinessMetrics using OpenTelemetry metrics.
type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	alarmCounter     metric.Int64Counter
}

// NewBusinessMetrics creates a new BusinessMetrics implementation using the provided meter provider.
// The namespace parameter is used as a prefix for all metric names (e.g., "custody").
// Returns error if meters cannot be initialized.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	// Create counter for total operations
	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	// Create histogram for operation durations
	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	alarmCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_forensic_alarms_total", namespace),
		metric.WithDescription("Total number of broken custody chains and integrity mismatches detected"),
		metric.WithUnit("{alarm}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create forensic alarm counter: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		alarmCounter:     alarmCounter,
	}, nil
}

// RecordOperation increments the operation counter with domain, operation, and status labels.
func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordDuration records the operation duration in seconds with domain, operation, and status labels.
func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordForensicAlarm increments the forensic alarm counter with alarm and reason labels.
func (b *businessMetrics) RecordForensicAlarm(ctx context.Context, alarm, reason string) {
	b.alarmCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("alarm", alarm),
			attribute.String("reason", reason),
		),
	)
}

// NoOpBusinessMetrics is a no-op implementation of BusinessMetrics for when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// RecordOperation does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	// No-op
}

// RecordDuration does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	// No-op
}

// RecordForensicAlarm does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordForensicAlarm(ctx context.Context, alarm, reason string) {
	// No-op
}
