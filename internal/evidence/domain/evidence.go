package domain

import (
	"time"
)

// Evidence is a registered file, email or memory capture. It is created once when
// the evidence enters the system and never mutated afterwards; the custody ledger
// references it by ID.
type Evidence struct {
	ID           int64
	EvidenceType EvidenceType
	Identifier   string
	ContentHash  string
	Size         int64
	RegisteredAt time.Time
}

// RegisterEvidenceInput carries what a collector computed for new evidence.
type RegisterEvidenceInput struct {
	EvidenceType EvidenceType
	Identifier   string
	Size         int64
	ContentHash  string
}

// RemoveEvidenceInput identifies the evidence to remove and who removes it.
type RemoveEvidenceInput struct {
	ID      int64
	Handler string
	Reason  string
}

// Deletion is the journal entry written before evidence and its custody history are
// deleted. It keeps the last known state of the chain after the cascade.
type Deletion struct {
	ID            int64
	EvidenceID    int64
	EvidenceType  EvidenceType
	Identifier    string
	ContentHash   string
	EventCount    int64
	LastHashAfter *string
	Handler       string
	Reason        string
	DeletedAt     time.Time
}
