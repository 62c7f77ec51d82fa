package pipeline

// NextStage returns the stage immediately after s in the canonical order.
// The second return value is false when s is terminal or unknown.
func NextStage(s Stage) (Stage, bool) {
	idx := StageIndex(s)
	if idx == -1 || idx == len(StageOrder)-1 {
		return "", false
	}
	return StageOrder[idx+1], true
}

// PreviousStage returns the stage immediately before s in the canonical
// order. The second return value is false when s is first or unknown.
func PreviousStage(s Stage) (Stage, bool) {
	idx := StageIndex(s)
	if idx <= 0 {
		return "", false
	}
	return StageOrder[idx-1], true
}

// IsValidTransition decides whether an application may move from one stage
// to another. Closing is legal from any stage, CLOSED is terminal, and any
// other move must be to an adjacent stage: no stage may be silently
// skipped, even if only to be marked discarded.
func IsValidTransition(from, to Stage) bool {
	if to == StageClosed {
		return true
	}
	if from == StageClosed {
		return false
	}

	fromIdx, toIdx := StageIndex(from), StageIndex(to)
	if fromIdx == -1 || toIdx == -1 {
		return false
	}

	diff := toIdx - fromIdx
	return diff >= -1 && diff <= 1
}

// RequiresOfferStatus reports whether an application in the given stage
// must carry an offer status.
func RequiresOfferStatus(s Stage) bool {
	return s == StageOffer || s == StageClosed
}

// CanHaveFinalOutcome reports whether a final outcome is meaningful for
// the given stage.
func CanHaveFinalOutcome(s Stage) bool {
	return s == StageClosed
}
