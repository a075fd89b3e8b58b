// Package domain defines the chain-of-custody ledger: hash-linked custody events,
// chain verification results and integrity checks.
package domain

import (
	"errors"
	"strings"
)

// ActionType is the kind of action a custody event records.
type ActionType string

const (
	ActionInitialUpload     ActionType = "INITIAL_UPLOAD"
	ActionAcquisition       ActionType = "ACQUISITION"
	ActionAccess            ActionType = "ACCESS"
	ActionAnalysisStarted   ActionType = "ANALYSIS_STARTED"
	ActionAnalysisCompleted ActionType = "ANALYSIS_COMPLETED"
	ActionTransfer          ActionType = "TRANSFER"
	ActionExport            ActionType = "EXPORT"
	ActionDeletion          ActionType = "DELETION"
	// ActionTombstone seals the chain: no event may follow it.
	ActionTombstone ActionType = "TOMBSTONE"
)

// Validate checks if the action type is valid.
func (a ActionType) Validate() error {
	switch a {
	case ActionInitialUpload,
		ActionAcquisition,
		ActionAccess,
		ActionAnalysisStarted,
		ActionAnalysisCompleted,
		ActionTransfer,
		ActionExport,
		ActionDeletion,
		ActionTombstone:
		return nil
	default:
		return errors.New("invalid action type")
	}
}

// IsTerminal reports whether no further event may be appended after this action.
func (a ActionType) IsTerminal() bool {
	return a == ActionTombstone
}

// String returns the string representation of the action type.
func (a ActionType) String() string {
	return string(a)
}

// SortOrder is the order in which custody history is returned.
type SortOrder string

const (
	OrderAscending  SortOrder = "asc"
	OrderDescending SortOrder = "desc"
)

// ParseSortOrder converts a query value into a SortOrder. Empty means descending,
// the newest-first view an audit viewer expects.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(OrderDescending):
		return OrderDescending, nil
	case string(OrderAscending):
		return OrderAscending, nil
	default:
		return "", ErrInvalidSortOrder
	}
}

// Free-text field limits, mirrored by the custody_events column sizes.
const (
	MaxHandlerLength  = 255
	MaxLocationLength = 255
	MaxNotesLength    = 4096
)

// BreakReason explains why a chain verification failed.
type BreakReason string

const (
	// BreakHashMismatch means hash_before differs from the previous hash_after,
	// or a non-first event has no hash_before, or the first event has one.
	BreakHashMismatch BreakReason = "hash_mismatch"
	// BreakSequenceGap means an event is missing or was reordered.
	BreakSequenceGap BreakReason = "sequence_gap"
	// BreakTimestampRegression means an event is older than its predecessor.
	BreakTimestampRegression BreakReason = "timestamp_regression"
)
