package domain

// ChainVerification is the outcome of walking one evidence chain. A broken chain is an
// investigative finding, not an error: Valid is false and BrokenAt names the first event
// whose link does not hold.
type ChainVerification struct {
	EvidenceID int64
	Valid      bool
	EventCount int
	BrokenAt   *int64
	Reason     BreakReason
	// Expected and Found describe the failed hash link when Reason is BreakHashMismatch.
	Expected *string
	Found    *string
}

// IntegrityResult compares live evidence bytes against the last recorded hash.
// Matches is false when the evidence has no custody event at all.
type IntegrityResult struct {
	EvidenceID   int64
	Matches      bool
	CurrentHash  string
	RecordedHash *string
	EventID      *int64
}

// VerificationReport aggregates chain verification across all registered evidence.
type VerificationReport struct {
	TotalChecked int64
	ValidCount   int64
	BrokenCount  int64
	Broken       []*ChainVerification
}

// VerifyChain walks events in creation order and reports the first event that breaks
// the chain. Checks per event, in order: hash link, gapless sequence starting at 1,
// non-decreasing timestamp.
func VerifyChain(evidenceID int64, events []*CustodyEvent) *ChainVerification {
	result := &ChainVerification{
		EvidenceID: evidenceID,
		Valid:      true,
		EventCount: len(events),
	}

	var prev *CustodyEvent
	for _, event := range events {
		var expected *string
		var expectedSequence int64 = 1
		if prev != nil {
			expected = prev.HashAfter
			expectedSequence = prev.Sequence + 1
		}

		switch {
		case !linkHolds(prev, event):
			result.markBroken(event, BreakHashMismatch)
			result.Expected = expected
			result.Found = event.HashBefore
		case event.Sequence != expectedSequence:
			result.markBroken(event, BreakSequenceGap)
		case prev != nil && event.CreatedAt.Before(prev.CreatedAt):
			result.markBroken(event, BreakTimestampRegression)
		}

		if !result.Valid {
			return result
		}
		prev = event
	}

	return result
}

// CheckIntegrity compares currentHash with the HashAfter of the latest event.
// latest is nil when the evidence has no custody history.
func CheckIntegrity(evidenceID int64, latest *CustodyEvent, currentHash string) *IntegrityResult {
	result := &IntegrityResult{
		EvidenceID:  evidenceID,
		CurrentHash: currentHash,
	}
	if latest == nil {
		return result
	}

	eventID := latest.ID
	result.EventID = &eventID
	result.RecordedHash = latest.HashAfter
	result.Matches = latest.HashAfter != nil && *latest.HashAfter == currentHash

	return result
}

// linkHolds checks the hash link between prev and event. Only the first event may
// have a nil HashBefore; every later one must repeat the previous HashAfter.
func linkHolds(prev, event *CustodyEvent) bool {
	if prev == nil {
		return event.HashBefore == nil
	}
	if event.HashBefore == nil || prev.HashAfter == nil {
		return false
	}
	return *event.HashBefore == *prev.HashAfter
}

func (c *ChainVerification) markBroken(event *CustodyEvent, reason BreakReason) {
	id := event.ID
	c.Valid = false
	c.BrokenAt = &id
	c.Reason = reason
}
