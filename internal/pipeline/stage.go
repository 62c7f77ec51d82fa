package pipeline

import "fmt"

// Stage is one step of the recruiting pipeline.
type Stage string

const (
	StageCVReceived       Stage = "CV_RECEIVED"
	StageHRReview         Stage = "HR_REVIEW"
	StageHRInterview      Stage = "HR_INTERVIEW"
	StageLeadInterview    Stage = "LEAD_INTERVIEW"
	StageEOInterview      Stage = "EO_INTERVIEW"
	StageReferencesCheck  Stage = "REFERENCES_CHECK"
	StageSelectedForOffer Stage = "SELECTED_FOR_OFFER"
	StageOffer            Stage = "OFFER"
	StageClosed           Stage = "CLOSED"
)

// StageOrder is the canonical pipeline order. It is the only place the
// order is expressed; every ordering decision derives from it.
var StageOrder = []Stage{
	StageCVReceived,
	StageHRReview,
	StageHRInterview,
	StageLeadInterview,
	StageEOInterview,
	StageReferencesCheck,
	StageSelectedForOffer,
	StageOffer,
	StageClosed,
}

// StageIndex returns the position of s in the canonical order, or -1 for
// an unknown stage.
func StageIndex(s Stage) int {
	for i, stage := range StageOrder {
		if stage == s {
			return i
		}
	}
	return -1
}

// ParseStage converts a raw string to a Stage, returning an error for
// unknown values.
func ParseStage(s string) (Stage, error) {
	stage := Stage(s)
	if StageIndex(stage) == -1 {
		return "", fmt.Errorf("unknown stage %q", s)
	}
	return stage, nil
}
