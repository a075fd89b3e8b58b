// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
	customValidation "github.com/allisson/custody/internal/validation"
)

// RegisterEvidenceRequest contains what a collector computed for new evidence.
type RegisterEvidenceRequest struct {
	EvidenceType string `json:"evidence_type"`
	Identifier   string `json:"identifier"`
	Size         int64  `json:"size"`
	ContentHash  string `json:"content_hash"`
}

// Validate checks if the register evidence request is valid.
func (r *RegisterEvidenceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EvidenceType,
			validation.Required,
			validation.In(
				string(evidenceDomain.EvidenceTypeFile),
				string(evidenceDomain.EvidenceTypeEmail),
				string(evidenceDomain.EvidenceTypeMemoryDump),
			),
		),
		validation.Field(&r.Identifier,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, 512),
		),
		validation.Field(&r.Size, validation.Min(int64(0))),
		validation.Field(&r.ContentHash,
			validation.Required,
			customValidation.SHA256Hex,
		),
	)
}

// ToInput converts the request to the use case input.
func (r *RegisterEvidenceRequest) ToInput() *evidenceDomain.RegisterEvidenceInput {
	return &evidenceDomain.RegisterEvidenceInput{
		EvidenceType: evidenceDomain.EvidenceType(r.EvidenceType),
		Identifier:   r.Identifier,
		Size:         r.Size,
		ContentHash:  r.ContentHash,
	}
}

// RemoveEvidenceRequest names who removes evidence and why.
type RemoveEvidenceRequest struct {
	Handler string `json:"handler"`
	Reason  string `json:"reason"`
}

// Validate checks if the remove evidence request is valid.
func (r *RemoveEvidenceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Handler,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, 255),
		),
		validation.Field(&r.Reason, validation.RuneLength(0, 4096)),
	)
}
