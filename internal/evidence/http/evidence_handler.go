// Package http provides HTTP handlers for the evidence registry.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
	"github.com/allisson/custody/internal/evidence/http/dto"
	evidenceUseCase "github.com/allisson/custody/internal/evidence/usecase"
	"github.com/allisson/custody/internal/httputil"
	customValidation "github.com/allisson/custody/internal/validation"
)

// EvidenceHandler handles HTTP requests for evidence registration, lookup and removal.
type EvidenceHandler struct {
	evidenceUseCase evidenceUseCase.EvidenceUseCase
	logger          *slog.Logger
}

// NewEvidenceHandler creates a new evidence handler with required dependencies.
func NewEvidenceHandler(evidenceUseCase evidenceUseCase.EvidenceUseCase, logger *slog.Logger) *EvidenceHandler {
	return &EvidenceHandler{
		evidenceUseCase: evidenceUseCase,
		logger:          logger,
	}
}

// RegisterHandler registers new evidence.
// POST /v1/evidence - Returns 201 Created.
func (h *EvidenceHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	evidence, err := h.evidenceUseCase.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapEvidenceToResponse(evidence))
}

// GetHandler retrieves evidence by ID.
// GET /v1/evidence/:id
func (h *EvidenceHandler) GetHandler(c *gin.Context) {
	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	evidence, err := h.evidenceUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEvidenceToResponse(evidence))
}

// LookupHandler resolves evidence by its type and collector identifier.
// GET /v1/evidence/lookup?type=file&identifier=...
func (h *EvidenceHandler) LookupHandler(c *gin.Context) {
	evidenceType := evidenceDomain.EvidenceType(c.Query("type"))
	identifier := c.Query("identifier")
	if identifier == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("identifier query parameter is required"), h.logger)
		return
	}

	evidence, err := h.evidenceUseCase.Lookup(c.Request.Context(), evidenceType, identifier)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEvidenceToResponse(evidence))
}

// ListHandler lists registered evidence.
// GET /v1/evidence?offset=0&limit=50
func (h *EvidenceHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	evidence, err := h.evidenceUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEvidenceListToResponse(evidence))
}

// RemoveHandler deletes evidence and its custody history after journaling the removal.
// DELETE /v1/evidence/:id - Returns 200 OK with the journal entry.
func (h *EvidenceHandler) RemoveHandler(c *gin.Context) {
	id, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.RemoveEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	deletion, err := h.evidenceUseCase.Remove(c.Request.Context(), &evidenceDomain.RemoveEvidenceInput{
		ID:      id,
		Handler: req.Handler,
		Reason:  req.Reason,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDeletionToResponse(deletion))
}

// ListDeletionsHandler lists the deletion journal newest first.
// GET /v1/evidence-deletions?offset=0&limit=50
func (h *EvidenceHandler) ListDeletionsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	deletions, err := h.evidenceUseCase.ListDeletions(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDeletionsToListResponse(deletions))
}
