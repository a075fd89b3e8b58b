// Package domain defines the evidence registry entities: registered evidence records
// and the journal of removed evidence.
package domain

import (
	"errors"
)

// EvidenceType classifies the origin of a piece of evidence.
type EvidenceType string

const (
	EvidenceTypeFile       EvidenceType = "file"
	EvidenceTypeEmail      EvidenceType = "email"
	EvidenceTypeMemoryDump EvidenceType = "memory_dump"
)

// Field length limits shared by the HTTP layer and both SQL schemas.
const (
	// MaxIdentifierLength bounds identifiers so the (evidence_type, identifier)
	// unique index fits MySQL's key length limit.
	MaxIdentifierLength = 512

	// MaxReasonLength bounds the free-text reason recorded when evidence is removed.
	MaxReasonLength = 1024
)

// Validate checks if the evidence type is valid.
func (e EvidenceType) Validate() error {
	switch e {
	case EvidenceTypeFile, EvidenceTypeEmail, EvidenceTypeMemoryDump:
		return nil
	default:
		return errors.New("invalid evidence type")
	}
}

// String returns the string representation of the evidence type.
func (e EvidenceType) String() string {
	return string(e)
}
