package mappers

import (
	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/pipeline"
	"github.com/powhr/talentflow/internal/store/model"
)

// TransitionForm is a validated, parsed stage-change request.
type TransitionForm struct {
	ApplicationID   uuid.UUID
	ToStage         pipeline.Stage
	Status          *pipeline.StageStatus
	OfferStatus     *pipeline.OfferStatus
	FinalOutcome    *pipeline.FinalOutcome
	RejectionReason *pipeline.RejectionReason
	Notes           *string
}

type ApplicationCreateForm struct {
	CandidateID uuid.UUID
	PositionID  uuid.UUID
	OrgID       string
}

func (f ApplicationCreateForm) ToApplication() model.Application {
	return model.Application{
		ID:          uuid.New(),
		CandidateID: f.CandidateID,
		PositionID:  f.PositionID,
		OrgID:       f.OrgID,
	}
}

type JobPositionCreateForm struct {
	Title       string
	Department  string
	Location    string
	Description string
	OrgID       string
}

func (f JobPositionCreateForm) ToJobPosition() model.JobPosition {
	return model.JobPosition{
		ID:          uuid.New(),
		Title:       f.Title,
		Department:  f.Department,
		Location:    f.Location,
		Description: f.Description,
		OrgID:       f.OrgID,
	}
}

type CandidateCreateForm struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	LinkedIn  *string
	OrgID     string
}

func (f CandidateCreateForm) ToCandidate() model.Candidate {
	return model.Candidate{
		ID:        uuid.New(),
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		LinkedIn:  f.LinkedIn,
		OrgID:     f.OrgID,
	}
}
