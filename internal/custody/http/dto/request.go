// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	custodyDomain "github.com/allisson/custody/internal/custody/domain"
	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
	customValidation "github.com/allisson/custody/internal/validation"
)

// AppendCustodyEventRequest records one action on evidence. Field validation is left to
// the ledger so that an unknown evidence ID is reported before malformed input.
type AppendCustodyEventRequest struct {
	ActionType   string  `json:"action_type"`
	Handler      string  `json:"handler"`
	Location     string  `json:"location"`
	EvidenceType string  `json:"evidence_type"`
	HashAfter    *string `json:"hash_after"`
	Notes        *string `json:"notes"`
}

// ToInput converts the request to the use case input for the given evidence.
func (r *AppendCustodyEventRequest) ToInput(evidenceID int64) *custodyDomain.AppendEventInput {
	return &custodyDomain.AppendEventInput{
		EvidenceID:   evidenceID,
		EvidenceType: evidenceDomain.EvidenceType(r.EvidenceType),
		ActionType:   custodyDomain.ActionType(r.ActionType),
		Handler:      r.Handler,
		Location:     r.Location,
		HashAfter:    r.HashAfter,
		Notes:        r.Notes,
	}
}

// VerifyIntegrityRequest carries a freshly computed hash of the evidence bytes.
type VerifyIntegrityRequest struct {
	CurrentHash string `json:"current_hash"`
}

// Validate checks if the verify integrity request is valid.
func (r *VerifyIntegrityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CurrentHash,
			validation.Required,
			customValidation.SHA256Hex,
		),
	)
}
