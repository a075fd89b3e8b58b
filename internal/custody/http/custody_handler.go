// Package http provides HTTP handlers for the custody ledger.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	"github.com/allisson/custody/internal/custody/http/dto"
	custodyUseCase "github.com/allisson/custody/internal/custody/usecase"
	"github.com/allisson/custody/internal/httputil"
	customValidation "github.com/allisson/custody/internal/validation"
)

// CustodyHandler handles HTTP requests for custody events and chain verification.
type CustodyHandler struct {
	custodyUseCase custodyUseCase.CustodyUseCase
	logger         *slog.Logger
}

// NewCustodyHandler creates a new custody handler with required dependencies.
func NewCustodyHandler(custodyUseCase custodyUseCase.CustodyUseCase, logger *slog.Logger) *CustodyHandler {
	return &CustodyHandler{
		custodyUseCase: custodyUseCase,
		logger:         logger,
	}
}

// AppendHandler records an action on evidence.
// POST /v1/evidence/:id/custody - Returns 201 Created with the persisted event.
func (h *CustodyHandler) AppendHandler(c *gin.Context) {
	evidenceID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.AppendCustodyEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	event, err := h.custodyUseCase.Append(c.Request.Context(), req.ToInput(evidenceID))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCustodyEventToResponse(event))
}

// HistoryHandler returns the custody history of evidence.
// GET /v1/evidence/:id/custody?order=desc
func (h *CustodyHandler) HistoryHandler(c *gin.Context) {
	evidenceID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	order, err := custodyDomain.ParseSortOrder(c.Query("order"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	events, err := h.custodyUseCase.History(c.Request.Context(), evidenceID, order)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCustodyEventsToListResponse(events))
}

// VerifyChainHandler walks the custody chain of evidence. A broken chain is a finding
// and is returned with 200 OK and valid=false.
// GET /v1/evidence/:id/custody/verify
func (h *CustodyHandler) VerifyChainHandler(c *gin.Context) {
	evidenceID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	result, err := h.custodyUseCase.VerifyChain(c.Request.Context(), evidenceID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapChainVerificationToResponse(result))
}

// VerifyIntegrityHandler compares a freshly computed hash against the ledger.
// POST /v1/evidence/:id/integrity - Returns 200 OK; matches=false on mismatch.
func (h *CustodyHandler) VerifyIntegrityHandler(c *gin.Context) {
	evidenceID, err := httputil.ParseIDParam(c, "id")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.VerifyIntegrityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.custodyUseCase.VerifyIntegrity(c.Request.Context(), evidenceID, req.CurrentHash)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIntegrityResultToResponse(result))
}
