package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	"github.com/allisson/custody/internal/custody/http/dto"
	"github.com/allisson/custody/internal/custody/usecase/mocks"
	apperrors "github.com/allisson/custody/internal/errors"
)

var (
	hashA = strings.Repeat("a", 64)
	hashB = strings.Repeat("b", 64)
)

func setupTestHandler(t *testing.T) (*CustodyHandler, *mocks.MockCustodyUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockCustodyUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewCustodyHandler(mockUseCase, logger), mockUseCase
}

func withID(c *gin.Context, id string) {
	c.Params = gin.Params{{Key: "id", Value: id}}
}

func TestCustodyHandler_AppendHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		request := dto.AppendCustodyEventRequest{
			ActionType: "ANALYSIS_COMPLETED",
			Handler:    "alice",
			Location:   "lab-1",
			HashAfter:  &hashA,
		}
		event := &custodyDomain.CustodyEvent{
			ID:         11,
			EvidenceID: 3,
			Sequence:   2,
			ActionType: custodyDomain.ActionAnalysisCompleted,
			Handler:    "alice",
			HashBefore: &hashA,
			HashAfter:  &hashA,
			CreatedAt:  time.Now().UTC(),
		}

		mockUseCase.On("Append", mock.Anything, request.ToInput(3)).Return(event, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/evidence/3/custody", request)
		withID(c, "3")
		handler.AppendHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.CustodyEventResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(11), response.ID)
		assert.Equal(t, int64(2), response.Sequence)
		assert.Equal(t, hashA, *response.HashBefore)
	})

	t.Run("Error_UnknownEvidence", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Append", mock.Anything, mock.Anything).Return(nil, custodyDomain.ErrUnknownEvidence).Once()

		c, w := createTestContext(http.MethodPost, "/v1/evidence/99/custody",
			dto.AppendCustodyEventRequest{ActionType: "ACCESS"})
		withID(c, "99")
		handler.AppendHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidActor", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Append", mock.Anything, mock.Anything).Return(nil, custodyDomain.ErrInvalidActor).Once()

		c, w := createTestContext(http.MethodPost, "/v1/evidence/1/custody",
			dto.AppendCustodyEventRequest{ActionType: "ACCESS", Handler: " "})
		withID(c, "1")
		handler.AppendHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_Sealed", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Append", mock.Anything, mock.Anything).Return(nil, custodyDomain.ErrEvidenceSealed).Once()

		c, w := createTestContext(http.MethodPost, "/v1/evidence/1/custody",
			dto.AppendCustodyEventRequest{ActionType: "ACCESS", Handler: "alice"})
		withID(c, "1")
		handler.AppendHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/evidence/1/custody", nil)
		c.Request.Body = io.NopCloser(bytes.NewReader([]byte("{")))
		withID(c, "1")
		handler.AppendHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCustodyHandler_HistoryHandler(t *testing.T) {
	t.Run("Success_DefaultOrder", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		events := []*custodyDomain.CustodyEvent{{ID: 2, Sequence: 2}, {ID: 1, Sequence: 1}}
		mockUseCase.On("History", mock.Anything, int64(1), custodyDomain.OrderDescending).Return(events, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/evidence/1/custody", nil)
		withID(c, "1")
		handler.HistoryHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ListCustodyEventsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 2)
		assert.Equal(t, int64(2), response.Data[0].Sequence)
	})

	t.Run("Success_AscendingAndEmpty", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("History", mock.Anything, int64(404), custodyDomain.OrderAscending).
			Return([]*custodyDomain.CustodyEvent{}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/evidence/404/custody?order=asc", nil)
		withID(c, "404")
		handler.HistoryHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("Error_InvalidOrder", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/evidence/1/custody?order=random", nil)
		withID(c, "1")
		handler.HistoryHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestCustodyHandler_VerifyChainHandler(t *testing.T) {
	t.Run("Success_BrokenChainIsOK", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		brokenAt := int64(7)
		mockUseCase.On("VerifyChain", mock.Anything, int64(1)).Return(&custodyDomain.ChainVerification{
			EvidenceID: 1,
			EventCount: 4,
			BrokenAt:   &brokenAt,
			Reason:     custodyDomain.BreakHashMismatch,
			Expected:   &hashA,
			Found:      &hashB,
		}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/evidence/1/custody/verify", nil)
		withID(c, "1")
		handler.VerifyChainHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ChainVerificationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Valid)
		assert.Equal(t, int64(7), *response.BrokenAt)
		assert.Equal(t, "hash_mismatch", response.Reason)
	})

	t.Run("Error_StorageUnavailable", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("VerifyChain", mock.Anything, int64(1)).
			Return(nil, apperrors.Unavailable(errors.New("timeout"), "failed to list custody events")).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/evidence/1/custody/verify", nil)
		withID(c, "1")
		handler.VerifyChainHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestCustodyHandler_VerifyIntegrityHandler(t *testing.T) {
	t.Run("Success_Mismatch", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		eventID := int64(2)
		mockUseCase.On("VerifyIntegrity", mock.Anything, int64(1), hashB).Return(&custodyDomain.IntegrityResult{
			EvidenceID:   1,
			CurrentHash:  hashB,
			RecordedHash: &hashA,
			EventID:      &eventID,
		}, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/evidence/1/integrity",
			dto.VerifyIntegrityRequest{CurrentHash: hashB})
		withID(c, "1")
		handler.VerifyIntegrityHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.IntegrityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Matches)
		assert.Equal(t, hashA, *response.RecordedHash)
	})

	t.Run("Error_InvalidHash", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/evidence/1/integrity",
			dto.VerifyIntegrityRequest{CurrentHash: "nope"})
		withID(c, "1")
		handler.VerifyIntegrityHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/evidence/x/integrity",
			dto.VerifyIntegrityRequest{CurrentHash: hashA})
		withID(c, "x")
		handler.VerifyIntegrityHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
