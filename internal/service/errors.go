package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/pipeline"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrApplicationNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "application")
}

func NewErrPositionNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "position")
}

func NewErrCandidateNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "candidate")
}

type ErrInvalidTransition struct {
	error
}

func NewErrInvalidTransition(from, to pipeline.Stage) *ErrInvalidTransition {
	return &ErrInvalidTransition{fmt.Errorf("transition from %s to %s is not allowed", from, to)}
}

func NewErrInvalidTransitionReason(reason string) *ErrInvalidTransition {
	return &ErrInvalidTransition{fmt.Errorf("transition is not allowed: %s", reason)}
}

type ErrMissingOfferStatus struct {
	error
}

func NewErrMissingOfferStatus(stage pipeline.Stage) *ErrMissingOfferStatus {
	return &ErrMissingOfferStatus{fmt.Errorf("an offer status is required to enter stage %s", stage)}
}

type ErrInvalidRejectionReason struct {
	error
}

func NewErrInvalidRejectionReason(reason pipeline.RejectionReason, outcome pipeline.FinalOutcome) *ErrInvalidRejectionReason {
	return &ErrInvalidRejectionReason{fmt.Errorf("rejection reason %s is not valid for outcome %s", reason, outcome)}
}

func NewErrRejectionReasonWithoutOutcome(reason pipeline.RejectionReason) *ErrInvalidRejectionReason {
	return &ErrInvalidRejectionReason{fmt.Errorf("rejection reason %s supplied without a final outcome", reason)}
}

type ErrConcurrentModification struct {
	error
}

func NewErrConcurrentModification(id uuid.UUID) *ErrConcurrentModification {
	return &ErrConcurrentModification{fmt.Errorf("application %s was modified concurrently, reload and retry", id)}
}

type ErrDuplicateResource struct {
	error
}

func NewErrDuplicateResource(resourceType string) *ErrDuplicateResource {
	return &ErrDuplicateResource{fmt.Errorf("%s already exists", resourceType)}
}
