package domain

import (
	"time"

	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
)

// CustodyEvent is one attributed action taken on a piece of evidence. Events are
// immutable once appended. HashBefore is the HashAfter of the previous event for the
// same evidence (nil for the first), which links every evidence history into a chain.
type CustodyEvent struct {
	ID           int64
	EvidenceID   int64
	Sequence     int64
	EvidenceType evidenceDomain.EvidenceType
	ActionType   ActionType
	Handler      string
	Location     string
	HashBefore   *string
	HashAfter    *string
	Notes        *string
	CreatedAt    time.Time
}

// AppendEventInput describes an action to record. HashAfter is optional: actions
// that do not touch the evidence bytes carry the previous hash forward.
type AppendEventInput struct {
	EvidenceID   int64
	EvidenceType evidenceDomain.EvidenceType
	ActionType   ActionType
	Handler      string
	Location     string
	HashAfter    *string
	Notes        *string
}

// ChainSummary is the tail state of one evidence chain.
type ChainSummary struct {
	EvidenceID    int64
	EventCount    int64
	LastSequence  int64
	LastHashAfter *string
}
