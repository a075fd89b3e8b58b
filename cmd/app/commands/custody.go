package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	"github.com/allisson/custody/internal/custody/http/dto"
	custodyUseCase "github.com/allisson/custody/internal/custody/usecase"
	evidenceService "github.com/allisson/custody/internal/evidence/service"
)

// AppendCustodyParams holds the append-custody flag values.
type AppendCustodyParams struct {
	EvidenceID   int64
	EvidenceType string
	ActionType   string
	Handler      string
	Location     string
	HashAfter    string
	Notes        string
	Format       string
}

// RunAppendCustody records a custody event. An empty hash-after copies the previous
// event's hash forward.
func RunAppendCustody(
	ctx context.Context,
	custodyUC custodyUseCase.CustodyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	params AppendCustodyParams,
) error {
	if err := validateFormat(params.Format); err != nil {
		return err
	}

	req := &dto.AppendCustodyEventRequest{
		ActionType:   params.ActionType,
		Handler:      params.Handler,
		Location:     params.Location,
		EvidenceType: params.EvidenceType,
		HashAfter:    optionalString(params.HashAfter),
		Notes:        optionalString(params.Notes),
	}

	event, err := custodyUC.Append(ctx, req.ToInput(params.EvidenceID))
	if err != nil {
		return fmt.Errorf("failed to append custody event: %w", err)
	}

	logger.Info("custody event appended",
		slog.Int64("evidence_id", event.EvidenceID),
		slog.Int64("event_id", event.ID),
		slog.String("action_type", event.ActionType.String()),
	)

	if params.Format == "json" {
		return outputJSON(writer, dto.MapCustodyEventToResponse(event))
	}

	_, _ = fmt.Fprintf(writer, "Custody event recorded\n")
	writeEventText(writer, event)
	return nil
}

// RunCustodyHistory prints the custody chain of one evidence item.
func RunCustodyHistory(
	ctx context.Context,
	custodyUC custodyUseCase.CustodyUseCase,
	writer io.Writer,
	evidenceID int64,
	order string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	sortOrder, err := custodyDomain.ParseSortOrder(order)
	if err != nil {
		return err
	}

	events, err := custodyUC.History(ctx, evidenceID, sortOrder)
	if err != nil {
		return fmt.Errorf("failed to read custody history: %w", err)
	}

	if format == "json" {
		return outputJSON(writer, dto.MapCustodyEventsToListResponse(events))
	}

	_, _ = fmt.Fprintf(writer, "Custody history for evidence %d (%d events)\n", evidenceID, len(events))
	for _, event := range events {
		_, _ = fmt.Fprintln(writer)
		writeEventText(writer, event)
	}
	return nil
}

// RunVerifyChain checks one custody chain and fails when it is broken.
func RunVerifyChain(
	ctx context.Context,
	custodyUC custodyUseCase.CustodyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	evidenceID int64,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	result, err := custodyUC.VerifyChain(ctx, evidenceID)
	if err != nil {
		return fmt.Errorf("failed to verify custody chain: %w", err)
	}

	if format == "json" {
		if err := outputJSON(writer, dto.MapChainVerificationToResponse(result)); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Custody Chain Verification\n")
		_, _ = fmt.Fprintf(writer, "==========================\n\n")
		writeChainText(writer, result)
	}

	logger.Info("chain verification completed",
		slog.Int64("evidence_id", evidenceID),
		slog.Bool("valid", result.Valid),
		slog.Int("event_count", result.EventCount),
	)

	if !result.Valid {
		return fmt.Errorf("custody chain for evidence %d is broken: %s", evidenceID, result.Reason)
	}
	return nil
}

// RunVerifyIntegrity compares current content against the chain's last recorded hash.
// The current hash comes from filePath when set, otherwise from hash. A mismatch is
// returned as an error.
func RunVerifyIntegrity(
	ctx context.Context,
	custodyUC custodyUseCase.CustodyUseCase,
	hasher evidenceService.ContentHasher,
	logger *slog.Logger,
	writer io.Writer,
	evidenceID int64,
	filePath, hash string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	currentHash := hash
	switch {
	case filePath != "" && hash != "":
		return fmt.Errorf("use either --file or --hash, not both")
	case filePath != "":
		digest, err := hasher.HashFile(ctx, filePath)
		if err != nil {
			return fmt.Errorf("failed to hash evidence file: %w", err)
		}
		currentHash = digest.Hash
	case hash == "":
		return fmt.Errorf("one of --file or --hash is required")
	}

	result, err := custodyUC.VerifyIntegrity(ctx, evidenceID, currentHash)
	if err != nil {
		return fmt.Errorf("failed to verify integrity: %w", err)
	}

	if format == "json" {
		if err := outputJSON(writer, dto.MapIntegrityResultToResponse(result)); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Evidence Integrity Check\n")
		_, _ = fmt.Fprintf(writer, "========================\n\n")
		_, _ = fmt.Fprintf(writer, "Evidence:      %d\n", result.EvidenceID)
		_, _ = fmt.Fprintf(writer, "Current hash:  %s\n", result.CurrentHash)
		_, _ = fmt.Fprintf(writer, "Recorded hash: %s\n\n", displayHash(result.RecordedHash))
		if result.Matches {
			_, _ = fmt.Fprintf(writer, "Status: MATCH ✓\n")
		} else {
			_, _ = fmt.Fprintf(writer, "Status: MISMATCH ❌\n")
		}
	}

	if !result.Matches {
		return fmt.Errorf("integrity check failed for evidence %d", evidenceID)
	}
	return nil
}

// RunVerifyCustody verifies every custody chain and fails when any is broken.
func RunVerifyCustody(
	ctx context.Context,
	custodyUC custodyUseCase.CustodyUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("verifying all custody chains")

	report, err := custodyUC.VerifyAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify custody chains: %w", err)
	}

	if format == "json" {
		broken := make([]dto.ChainVerificationResponse, 0, len(report.Broken))
		for _, result := range report.Broken {
			broken = append(broken, dto.MapChainVerificationToResponse(result))
		}
		if err := outputJSON(writer, map[string]any{
			"total_checked": report.TotalChecked,
			"valid_count":   report.ValidCount,
			"broken_count":  report.BrokenCount,
			"broken":        broken,
			"passed":        report.BrokenCount == 0,
		}); err != nil {
			return err
		}
	} else {
		outputVerifyCustodyText(writer, report)
	}

	logger.Info("verification completed",
		slog.Int64("total_checked", report.TotalChecked),
		slog.Int64("valid", report.ValidCount),
		slog.Int64("broken", report.BrokenCount),
	)

	if report.BrokenCount > 0 {
		return fmt.Errorf("custody verification failed: %d broken chain(s)", report.BrokenCount)
	}
	return nil
}

func outputVerifyCustodyText(writer io.Writer, report *custodyDomain.VerificationReport) {
	_, _ = fmt.Fprintf(writer, "Custody Ledger Verification\n")
	_, _ = fmt.Fprintf(writer, "===========================\n\n")
	_, _ = fmt.Fprintf(writer, "Total Checked:  %d\n", report.TotalChecked)
	_, _ = fmt.Fprintf(writer, "Valid:          %d\n", report.ValidCount)
	_, _ = fmt.Fprintf(writer, "Broken:         %d\n\n", report.BrokenCount)

	switch {
	case report.BrokenCount > 0:
		_, _ = fmt.Fprintf(writer, "WARNING: %d chain(s) failed verification!\n\n", report.BrokenCount)
		for _, result := range report.Broken {
			_, _ = fmt.Fprintf(writer, "  - evidence %d: %s at event %d\n",
				result.EvidenceID, result.Reason, derefID(result.BrokenAt))
		}
		_, _ = fmt.Fprintf(writer, "\nStatus: FAILED ❌\n")
	case report.TotalChecked == 0:
		_, _ = fmt.Fprintf(writer, "Status: No evidence registered\n")
	default:
		_, _ = fmt.Fprintf(writer, "Status: PASSED ✓\n")
	}
}

func writeChainText(writer io.Writer, result *custodyDomain.ChainVerification) {
	_, _ = fmt.Fprintf(writer, "Evidence:    %d\n", result.EvidenceID)
	_, _ = fmt.Fprintf(writer, "Events:      %d\n", result.EventCount)
	if result.Valid {
		_, _ = fmt.Fprintf(writer, "\nStatus: VALID ✓\n")
		return
	}
	_, _ = fmt.Fprintf(writer, "Broken at:   event %d\n", derefID(result.BrokenAt))
	_, _ = fmt.Fprintf(writer, "Reason:      %s\n", result.Reason)
	if result.Reason == custodyDomain.BreakHashMismatch {
		_, _ = fmt.Fprintf(writer, "Expected:    %s\n", displayHash(result.Expected))
		_, _ = fmt.Fprintf(writer, "Found:       %s\n", displayHash(result.Found))
	}
	_, _ = fmt.Fprintf(writer, "\nStatus: BROKEN ❌\n")
}

func writeEventText(writer io.Writer, event *custodyDomain.CustodyEvent) {
	_, _ = fmt.Fprintf(writer, "  Event:       %d (sequence %d)\n", event.ID, event.Sequence)
	_, _ = fmt.Fprintf(writer, "  Action:      %s\n", event.ActionType)
	_, _ = fmt.Fprintf(writer, "  Handler:     %s\n", event.Handler)
	if event.Location != "" {
		_, _ = fmt.Fprintf(writer, "  Location:    %s\n", event.Location)
	}
	_, _ = fmt.Fprintf(writer, "  Hash before: %s\n", displayHash(event.HashBefore))
	_, _ = fmt.Fprintf(writer, "  Hash after:  %s\n", displayHash(event.HashAfter))
	_, _ = fmt.Fprintf(writer, "  At:          %s\n", event.CreatedAt.Format("2006-01-02 15:04:05.000000Z07:00"))
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
