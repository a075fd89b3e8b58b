package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	custodyHTTPDto "github.com/allisson/custody/internal/custody/http/dto"
	custodyUseCase "github.com/allisson/custody/internal/custody/usecase"
	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
	evidenceHTTPDto "github.com/allisson/custody/internal/evidence/http/dto"
	evidenceService "github.com/allisson/custody/internal/evidence/service"
	evidenceUseCase "github.com/allisson/custody/internal/evidence/usecase"
)

// RegisterEvidenceParams holds the register-evidence flag values.
type RegisterEvidenceParams struct {
	EvidenceType string
	Identifier   string
	FilePath     string
	Handler      string
	Location     string
	Notes        string
	Format       string
}

// RunRegisterEvidence acts as a collector: it hashes the file, registers the digest
// and opens the custody chain with an INITIAL_UPLOAD event carrying the content hash.
// The identifier defaults to the file path. A blank handler is rejected before anything
// is registered.
func RunRegisterEvidence(
	ctx context.Context,
	evidenceUC evidenceUseCase.EvidenceUseCase,
	custodyUC custodyUseCase.CustodyUseCase,
	hasher evidenceService.ContentHasher,
	logger *slog.Logger,
	writer io.Writer,
	params RegisterEvidenceParams,
) error {
	if err := validateFormat(params.Format); err != nil {
		return err
	}

	// Checked before Register: the opening event requires a handler.
	if strings.TrimSpace(params.Handler) == "" {
		return fmt.Errorf("--handler or DEFAULT_HANDLER is required: %w", custodyDomain.ErrInvalidActor)
	}

	identifier := params.Identifier
	if identifier == "" {
		identifier = params.FilePath
	}

	digest, err := hasher.HashFile(ctx, params.FilePath)
	if err != nil {
		return fmt.Errorf("failed to hash evidence file: %w", err)
	}

	evidence, err := evidenceUC.Register(ctx, &evidenceDomain.RegisterEvidenceInput{
		EvidenceType: evidenceDomain.EvidenceType(params.EvidenceType),
		Identifier:   identifier,
		Size:         digest.Size,
		ContentHash:  digest.Hash,
	})
	if err != nil {
		return fmt.Errorf("failed to register evidence: %w", err)
	}

	event, err := custodyUC.Append(ctx, &custodyDomain.AppendEventInput{
		EvidenceID:   evidence.ID,
		EvidenceType: evidence.EvidenceType,
		ActionType:   custodyDomain.ActionInitialUpload,
		Handler:      params.Handler,
		Location:     params.Location,
		HashAfter:    &digest.Hash,
		Notes:        optionalString(params.Notes),
	})
	if err != nil {
		return fmt.Errorf("evidence %d registered but initial custody event failed: %w", evidence.ID, err)
	}

	logger.Info("evidence registered",
		slog.Int64("evidence_id", evidence.ID),
		slog.String("evidence_type", evidence.EvidenceType.String()),
		slog.String("content_hash", evidence.ContentHash),
	)

	if params.Format == "json" {
		return outputJSON(writer, map[string]any{
			"evidence":      evidenceHTTPDto.MapEvidenceToResponse(evidence),
			"custody_event": custodyHTTPDto.MapCustodyEventToResponse(event),
		})
	}

	_, _ = fmt.Fprintf(writer, "Evidence registered\n")
	_, _ = fmt.Fprintf(writer, "  ID:           %d\n", evidence.ID)
	_, _ = fmt.Fprintf(writer, "  Type:         %s\n", evidence.EvidenceType)
	_, _ = fmt.Fprintf(writer, "  Identifier:   %s\n", evidence.Identifier)
	_, _ = fmt.Fprintf(writer, "  Size:         %d\n", evidence.Size)
	_, _ = fmt.Fprintf(writer, "  Content hash: %s\n", evidence.ContentHash)
	_, _ = fmt.Fprintf(writer, "  Custody:      event %d (%s)\n", event.ID, event.ActionType)
	return nil
}
