package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
	"github.com/allisson/custody/internal/evidence/http/dto"
	evidenceUseCase "github.com/allisson/custody/internal/evidence/usecase"
)

// RunRemoveEvidence deletes evidence and its custody history, leaving a deletion
// journal entry with the chain summary.
func RunRemoveEvidence(
	ctx context.Context,
	evidenceUC evidenceUseCase.EvidenceUseCase,
	logger *slog.Logger,
	writer io.Writer,
	evidenceID int64,
	handler, reason string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	deletion, err := evidenceUC.Remove(ctx, &evidenceDomain.RemoveEvidenceInput{
		ID:      evidenceID,
		Handler: handler,
		Reason:  reason,
	})
	if err != nil {
		return fmt.Errorf("failed to remove evidence: %w", err)
	}

	logger.Info("evidence removed",
		slog.Int64("evidence_id", deletion.EvidenceID),
		slog.Int64("event_count", deletion.EventCount),
		slog.String("handler", deletion.Handler),
	)

	if format == "json" {
		return outputJSON(writer, dto.MapDeletionToResponse(deletion))
	}

	_, _ = fmt.Fprintf(writer, "Evidence removed\n")
	_, _ = fmt.Fprintf(writer, "  Evidence:        %d (%s %s)\n",
		deletion.EvidenceID, deletion.EvidenceType, deletion.Identifier)
	_, _ = fmt.Fprintf(writer, "  Custody events:  %d\n", deletion.EventCount)
	_, _ = fmt.Fprintf(writer, "  Last hash after: %s\n", displayHash(deletion.LastHashAfter))
	_, _ = fmt.Fprintf(writer, "  Journal entry:   %d\n", deletion.ID)
	return nil
}
