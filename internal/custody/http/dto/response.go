package dto

import (
	"time"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
)

// CustodyEventResponse represents a custody event in API responses.
type CustodyEventResponse struct {
	ID           int64     `json:"id"`
	EvidenceID   int64     `json:"evidence_id"`
	Sequence     int64     `json:"sequence"`
	EvidenceType string    `json:"evidence_type"`
	ActionType   string    `json:"action_type"`
	Handler      string    `json:"handler"`
	Location     string    `json:"location"`
	HashBefore   *string   `json:"hash_before"`
	HashAfter    *string   `json:"hash_after"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListCustodyEventsResponse represents the custody history of one evidence item.
type ListCustodyEventsResponse struct {
	Data []CustodyEventResponse `json:"data"`
}

// ChainVerificationResponse reports the result of walking a custody chain.
type ChainVerificationResponse struct {
	EvidenceID int64   `json:"evidence_id"`
	Valid      bool    `json:"valid"`
	EventCount int     `json:"event_count"`
	BrokenAt   *int64  `json:"broken_at,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Expected   *string `json:"expected,omitempty"`
	Found      *string `json:"found,omitempty"`
}

// IntegrityResponse reports whether the evidence bytes still match the ledger.
type IntegrityResponse struct {
	EvidenceID   int64   `json:"evidence_id"`
	Matches      bool    `json:"matches"`
	CurrentHash  string  `json:"current_hash"`
	RecordedHash *string `json:"recorded_hash"`
	EventID      *int64  `json:"event_id"`
}

// MapCustodyEventToResponse converts a domain custody event to an API response.
func MapCustodyEventToResponse(event *custodyDomain.CustodyEvent) CustodyEventResponse {
	return CustodyEventResponse{
		ID:           event.ID,
		EvidenceID:   event.EvidenceID,
		Sequence:     event.Sequence,
		EvidenceType: event.EvidenceType.String(),
		ActionType:   event.ActionType.String(),
		Handler:      event.Handler,
		Location:     event.Location,
		HashBefore:   event.HashBefore,
		HashAfter:    event.HashAfter,
		Notes:        event.Notes,
		CreatedAt:    event.CreatedAt,
	}
}

// MapCustodyEventsToListResponse converts a slice of custody events to a list response.
func MapCustodyEventsToListResponse(events []*custodyDomain.CustodyEvent) ListCustodyEventsResponse {
	data := make([]CustodyEventResponse, 0, len(events))
	for _, event := range events {
		data = append(data, MapCustodyEventToResponse(event))
	}
	return ListCustodyEventsResponse{Data: data}
}

// MapChainVerificationToResponse converts a chain verification to an API response.
func MapChainVerificationToResponse(result *custodyDomain.ChainVerification) ChainVerificationResponse {
	return ChainVerificationResponse{
		EvidenceID: result.EvidenceID,
		Valid:      result.Valid,
		EventCount: result.EventCount,
		BrokenAt:   result.BrokenAt,
		Reason:     string(result.Reason),
		Expected:   result.Expected,
		Found:      result.Found,
	}
}

// MapIntegrityResultToResponse converts an integrity result to an API response.
func MapIntegrityResultToResponse(result *custodyDomain.IntegrityResult) IntegrityResponse {
	return IntegrityResponse{
		EvidenceID:   result.EvidenceID,
		Matches:      result.Matches,
		CurrentHash:  result.CurrentHash,
		RecordedHash: result.RecordedHash,
		EventID:      result.EventID,
	}
}
