package pipeline

import "fmt"

// OfferStatus is the sub-state tracked once an offer is extended. It is
// meaningful only while the application sits in OFFER or CLOSED.
type OfferStatus string

const (
	OfferPendingToSend       OfferStatus = "PENDING_TO_SEND"
	OfferSent                OfferStatus = "SENT"
	OfferAccepted            OfferStatus = "ACCEPTED"
	OfferRejectedByCandidate OfferStatus = "REJECTED_BY_CANDIDATE"
	OfferWithdrawnByPOW      OfferStatus = "WITHDRAWN_BY_POW"
	OfferExpired             OfferStatus = "EXPIRED"
)

var offerStatuses = []OfferStatus{
	OfferPendingToSend,
	OfferSent,
	OfferAccepted,
	OfferRejectedByCandidate,
	OfferWithdrawnByPOW,
	OfferExpired,
}

func ParseOfferStatus(s string) (OfferStatus, error) {
	status := OfferStatus(s)
	for _, known := range offerStatuses {
		if known == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown offer status %q", s)
}

// FinalOutcome is the terminal disposition of an application, set at most
// once, when the application is closed.
type FinalOutcome string

const (
	OutcomeHired               FinalOutcome = "HIRED"
	OutcomeRejectedByPOW       FinalOutcome = "REJECTED_BY_POW"
	OutcomeRejectedByCandidate FinalOutcome = "REJECTED_BY_CANDIDATE"
	OutcomeRoleCancelled       FinalOutcome = "ROLE_CANCELLED"
	OutcomeTalentPool          FinalOutcome = "TALENT_POOL"
)

var finalOutcomes = []FinalOutcome{
	OutcomeHired,
	OutcomeRejectedByPOW,
	OutcomeRejectedByCandidate,
	OutcomeRoleCancelled,
	OutcomeTalentPool,
}

func ParseFinalOutcome(s string) (FinalOutcome, error) {
	outcome := FinalOutcome(s)
	for _, known := range finalOutcomes {
		if known == outcome {
			return outcome, nil
		}
	}
	return "", fmt.Errorf("unknown final outcome %q", s)
}

// RejectionReason qualifies a rejection outcome. The valid subset depends
// on who rejected; OTHER is accepted for every outcome.
type RejectionReason string

const (
	ReasonNotEnoughExperience  RejectionReason = "NOT_ENOUGH_EXPERIENCE"
	ReasonSkillsMismatch       RejectionReason = "SKILLS_MISMATCH"
	ReasonFailedInterview      RejectionReason = "FAILED_INTERVIEW"
	ReasonReferencesNotOk      RejectionReason = "REFERENCES_NOT_SATISFACTORY"
	ReasonAcceptedAnotherOffer RejectionReason = "ACCEPTED_ANOTHER_OFFER"
	ReasonSalaryExpectations   RejectionReason = "SALARY_EXPECTATIONS"
	ReasonPersonalReasons      RejectionReason = "PERSONAL_REASONS"
	ReasonNoResponse           RejectionReason = "NO_RESPONSE"
	ReasonOther                RejectionReason = "OTHER"
)

var (
	powRejectionReasons = []RejectionReason{
		ReasonNotEnoughExperience,
		ReasonSkillsMismatch,
		ReasonFailedInterview,
		ReasonReferencesNotOk,
		ReasonOther,
	}

	candidateRejectionReasons = []RejectionReason{
		ReasonAcceptedAnotherOffer,
		ReasonSalaryExpectations,
		ReasonPersonalReasons,
		ReasonNoResponse,
		ReasonOther,
	}
)

var rejectionReasons = []RejectionReason{
	ReasonNotEnoughExperience,
	ReasonSkillsMismatch,
	ReasonFailedInterview,
	ReasonReferencesNotOk,
	ReasonAcceptedAnotherOffer,
	ReasonSalaryExpectations,
	ReasonPersonalReasons,
	ReasonNoResponse,
	ReasonOther,
}

func ParseRejectionReason(s string) (RejectionReason, error) {
	reason := RejectionReason(s)
	for _, known := range rejectionReasons {
		if known == reason {
			return reason, nil
		}
	}
	return "", fmt.Errorf("unknown rejection reason %q", s)
}

// ValidRejectionReasons returns the rejection reasons accepted for the
// given outcome. Non-rejection outcomes accept only OTHER.
func ValidRejectionReasons(outcome FinalOutcome) []RejectionReason {
	switch outcome {
	case OutcomeRejectedByPOW:
		return powRejectionReasons
	case OutcomeRejectedByCandidate:
		return candidateRejectionReasons
	default:
		return []RejectionReason{ReasonOther}
	}
}

// FinalOutcomeFromOfferStatus derives the final outcome from a resolved
// offer. Unresolved offer statuses yield no outcome; outcomes that do not
// follow from an offer (ROLE_CANCELLED, TALENT_POOL) must be set manually.
func FinalOutcomeFromOfferStatus(status OfferStatus) (FinalOutcome, bool) {
	switch status {
	case OfferAccepted:
		return OutcomeHired, true
	case OfferRejectedByCandidate:
		return OutcomeRejectedByCandidate, true
	case OfferWithdrawnByPOW:
		return OutcomeRejectedByPOW, true
	default:
		return "", false
	}
}
