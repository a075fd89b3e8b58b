package dto

import (
	"time"

	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
)

// EvidenceResponse represents registered evidence in API responses.
type EvidenceResponse struct {
	ID           int64     `json:"id"`
	EvidenceType string    `json:"evidence_type"`
	Identifier   string    `json:"identifier"`
	ContentHash  string    `json:"content_hash"`
	Size         int64     `json:"size"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ListEvidenceResponse represents a paginated list of evidence.
type ListEvidenceResponse struct {
	Data []EvidenceResponse `json:"data"`
}

// DeletionResponse represents a deletion journal entry in API responses.
type DeletionResponse struct {
	ID            int64     `json:"id"`
	EvidenceID    int64     `json:"evidence_id"`
	EvidenceType  string    `json:"evidence_type"`
	Identifier    string    `json:"identifier"`
	ContentHash   string    `json:"content_hash"`
	EventCount    int64     `json:"event_count"`
	LastHashAfter *string   `json:"last_hash_after"`
	Handler       string    `json:"handler"`
	Reason        string    `json:"reason"`
	DeletedAt     time.Time `json:"deleted_at"`
}

// ListDeletionsResponse represents a paginated list of deletion journal entries.
type ListDeletionsResponse struct {
	Data []DeletionResponse `json:"data"`
}

// MapEvidenceToResponse converts domain evidence to an API response.
func MapEvidenceToResponse(evidence *evidenceDomain.Evidence) EvidenceResponse {
	return EvidenceResponse{
		ID:           evidence.ID,
		EvidenceType: evidence.EvidenceType.String(),
		Identifier:   evidence.Identifier,
		ContentHash:  evidence.ContentHash,
		Size:         evidence.Size,
		RegisteredAt: evidence.RegisteredAt,
	}
}

// MapEvidenceListToResponse converts a slice of domain evidence to a list response.
func MapEvidenceListToResponse(evidence []*evidenceDomain.Evidence) ListEvidenceResponse {
	data := make([]EvidenceResponse, 0, len(evidence))
	for _, e := range evidence {
		data = append(data, MapEvidenceToResponse(e))
	}
	return ListEvidenceResponse{Data: data}
}

// MapDeletionToResponse converts a domain deletion to an API response.
func MapDeletionToResponse(deletion *evidenceDomain.Deletion) DeletionResponse {
	return DeletionResponse{
		ID:            deletion.ID,
		EvidenceID:    deletion.EvidenceID,
		EvidenceType:  deletion.EvidenceType.String(),
		Identifier:    deletion.Identifier,
		ContentHash:   deletion.ContentHash,
		EventCount:    deletion.EventCount,
		LastHashAfter: deletion.LastHashAfter,
		Handler:       deletion.Handler,
		Reason:        deletion.Reason,
		DeletedAt:     deletion.DeletedAt,
	}
}

// MapDeletionsToListResponse converts a slice of domain deletions to a list response.
func MapDeletionsToListResponse(deletions []*evidenceDomain.Deletion) ListDeletionsResponse {
	data := make([]DeletionResponse, 0, len(deletions))
	for _, d := range deletions {
		data = append(data, MapDeletionToResponse(d))
	}
	return ListDeletionsResponse{Data: data}
}
