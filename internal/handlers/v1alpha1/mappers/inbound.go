package mappers

import (
	"github.com/google/uuid"
	api "github.com/powhr/talentflow/api/v1alpha1"
	"github.com/powhr/talentflow/internal/pipeline"
	"github.com/powhr/talentflow/internal/service/mappers"
)

// TransitionFormApi converts a validated request into a service form. The
// request must have passed the transition validation rules; the parse
// results are trusted here.
func TransitionFormApi(applicationID uuid.UUID, request api.TransitionRequest) mappers.TransitionForm {
	form := mappers.TransitionForm{
		ApplicationID: applicationID,
		ToStage:       pipeline.Stage(request.ToStage),
		Notes:         request.Notes,
	}
	if request.Status != nil {
		status := pipeline.StageStatus(*request.Status)
		form.Status = &status
	}
	if request.OfferStatus != nil {
		offerStatus := pipeline.OfferStatus(*request.OfferStatus)
		form.OfferStatus = &offerStatus
	}
	if request.FinalOutcome != nil {
		outcome := pipeline.FinalOutcome(*request.FinalOutcome)
		form.FinalOutcome = &outcome
	}
	if request.RejectionReason != nil {
		reason := pipeline.RejectionReason(*request.RejectionReason)
		form.RejectionReason = &reason
	}
	return form
}

func ApplicationFormApi(resource api.ApplicationCreate, orgID string) mappers.ApplicationCreateForm {
	return mappers.ApplicationCreateForm{
		CandidateID: resource.CandidateId,
		PositionID:  resource.PositionId,
		OrgID:       orgID,
	}
}

func JobPositionFormApi(resource api.JobPositionCreate, orgID string) mappers.JobPositionCreateForm {
	return mappers.JobPositionCreateForm{
		Title:       resource.Title,
		Department:  resource.Department,
		Location:    resource.Location,
		Description: resource.Description,
		OrgID:       orgID,
	}
}

func CandidateFormApi(resource api.CandidateCreate, orgID string) mappers.CandidateCreateForm {
	return mappers.CandidateCreateForm{
		FirstName: resource.FirstName,
		LastName:  resource.LastName,
		Email:     resource.Email,
		Phone:     resource.Phone,
		LinkedIn:  resource.LinkedIn,
		OrgID:     orgID,
	}
}
