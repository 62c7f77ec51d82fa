package model

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/pipeline"
	"gorm.io/gorm"
)

// Application is the mutable projection of an application's latest state.
// Its pipeline fields must always equal the result of replaying the
// application's stage history in order; the ledger is the source of truth.
type Application struct {
	gorm.Model
	ID          uuid.UUID `gorm:"primaryKey;"`
	CandidateID uuid.UUID `gorm:"not null;index"`
	Candidate   Candidate
	PositionID  uuid.UUID `gorm:"not null;index"`
	Position    JobPosition
	OrgID       string `gorm:"not null"`

	CurrentStage         pipeline.Stage            `gorm:"type:VARCHAR;size:50;not null"`
	CurrentStageStatus   pipeline.StageStatus      `gorm:"type:VARCHAR;size:50;not null"`
	OfferStatus          *pipeline.OfferStatus     `gorm:"type:VARCHAR;size:50"`
	FinalOutcome         *pipeline.FinalOutcome    `gorm:"type:VARCHAR;size:50"`
	FinalRejectionReason *pipeline.RejectionReason `gorm:"type:VARCHAR;size:50"`

	History []StageHistory `gorm:"foreignKey:ApplicationID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (a Application) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}

// ApplicationStateUpdate carries the projected fields written by a single
// pipeline transition. ObservedStage is the stage read before the change
// and is used as the optimistic-lock predicate.
type ApplicationStateUpdate struct {
	ID            uuid.UUID
	ObservedStage pipeline.Stage

	Stage           pipeline.Stage
	StageStatus     pipeline.StageStatus
	OfferStatus     *pipeline.OfferStatus
	FinalOutcome    *pipeline.FinalOutcome
	RejectionReason *pipeline.RejectionReason
}
