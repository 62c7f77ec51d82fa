// Package v1alpha1 holds the wire types of the v1alpha1 REST API.
package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

type Error struct {
	Message string `json:"message"`
}

type ApplicationCreate struct {
	CandidateId uuid.UUID `json:"candidateId" validate:"required"`
	PositionId  uuid.UUID `json:"positionId" validate:"required"`
}

type TransitionRequest struct {
	ToStage         string  `json:"toStage" validate:"required,stage"`
	Status          *string `json:"status,omitempty" validate:"omitempty,stage_status"`
	OfferStatus     *string `json:"offerStatus,omitempty" validate:"omitempty,offer_status"`
	FinalOutcome    *string `json:"finalOutcome,omitempty" validate:"omitempty,final_outcome"`
	RejectionReason *string `json:"rejectionReason,omitempty" validate:"omitempty,rejection_reason"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type Application struct {
	Id                 uuid.UUID `json:"id"`
	CandidateId        uuid.UUID `json:"candidateId"`
	PositionId         uuid.UUID `json:"positionId"`
	CurrentStage       string    `json:"currentStage"`
	CurrentStageStatus string    `json:"currentStageStatus"`
	OfferStatus        *string   `json:"offerStatus,omitempty"`
	FinalOutcome       *string   `json:"finalOutcome,omitempty"`
	RejectionReason    *string   `json:"rejectionReason,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type ApplicationList []Application

type StageHistoryEntry struct {
	Id        uint      `json:"id"`
	FromStage *string   `json:"fromStage,omitempty"`
	ToStage   string    `json:"toStage"`
	Status    string    `json:"status"`
	ChangedBy *string   `json:"changedBy,omitempty"`
	ChangedAt time.Time `json:"changedAt"`
	Notes     *string   `json:"notes,omitempty"`
}

type StageHistoryList []StageHistoryEntry

type JobPositionCreate struct {
	Title       string `json:"title" validate:"required,position_title"`
	Department  string `json:"department" validate:"omitempty,max=100"`
	Location    string `json:"location" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty,max=5000"`
}

type JobPosition struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department,omitempty"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type JobPositionList []JobPosition

type CandidateCreate struct {
	FirstName string  `json:"firstName" validate:"required,person_name"`
	LastName  string  `json:"lastName" validate:"required,person_name"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	LinkedIn  *string `json:"linkedIn,omitempty" validate:"omitempty,url"`
}

type Candidate struct {
	Id        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	LinkedIn  *string   `json:"linkedIn,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CandidateList []Candidate
