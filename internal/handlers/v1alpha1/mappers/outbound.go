package mappers

import (
	api "github.com/powhr/talentflow/api/v1alpha1"
	"github.com/powhr/talentflow/internal/pipeline"
	"github.com/powhr/talentflow/internal/store/model"
)

func stagePtrToString(s *pipeline.Stage) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func ApplicationToApi(application *model.Application) api.Application {
	resource := api.Application{
		Id:                 application.ID,
		CandidateId:        application.CandidateID,
		PositionId:         application.PositionID,
		CurrentStage:       string(application.CurrentStage),
		CurrentStageStatus: string(application.CurrentStageStatus),
		CreatedAt:          application.CreatedAt,
		UpdatedAt:          application.UpdatedAt,
	}
	if application.OfferStatus != nil {
		v := string(*application.OfferStatus)
		resource.OfferStatus = &v
	}
	if application.FinalOutcome != nil {
		v := string(*application.FinalOutcome)
		resource.FinalOutcome = &v
	}
	if application.FinalRejectionReason != nil {
		v := string(*application.FinalRejectionReason)
		resource.RejectionReason = &v
	}
	return resource
}

func ApplicationListToApi(applications []model.Application) api.ApplicationList {
	resources := make(api.ApplicationList, 0, len(applications))
	for i := range applications {
		resources = append(resources, ApplicationToApi(&applications[i]))
	}
	return resources
}

func StageHistoryToApi(entry model.StageHistory) api.StageHistoryEntry {
	return api.StageHistoryEntry{
		Id:        entry.ID,
		FromStage: stagePtrToString(entry.FromStage),
		ToStage:   string(entry.ToStage),
		Status:    string(entry.Status),
		ChangedBy: entry.ChangedBy,
		ChangedAt: entry.ChangedAt,
		Notes:     entry.Notes,
	}
}

func StageHistoryListToApi(entries model.StageHistoryList) api.StageHistoryList {
	resources := make(api.StageHistoryList, 0, len(entries))
	for _, entry := range entries {
		resources = append(resources, StageHistoryToApi(entry))
	}
	return resources
}

func JobPositionToApi(position *model.JobPosition) api.JobPosition {
	return api.JobPosition{
		Id:          position.ID,
		Title:       position.Title,
		Department:  position.Department,
		Location:    position.Location,
		Description: position.Description,
		CreatedAt:   position.CreatedAt,
	}
}

func JobPositionListToApi(positions []model.JobPosition) api.JobPositionList {
	resources := make(api.JobPositionList, 0, len(positions))
	for i := range positions {
		resources = append(resources, JobPositionToApi(&positions[i]))
	}
	return resources
}

func CandidateToApi(candidate *model.Candidate) api.Candidate {
	return api.Candidate{
		Id:        candidate.ID,
		FirstName: candidate.FirstName,
		LastName:  candidate.LastName,
		Email:     candidate.Email,
		Phone:     candidate.Phone,
		LinkedIn:  candidate.LinkedIn,
		CreatedAt: candidate.CreatedAt,
	}
}

func CandidateListToApi(candidates []model.Candidate) api.CandidateList {
	resources := make(api.CandidateList, 0, len(candidates))
	for i := range candidates {
		resources = append(resources, CandidateToApi(&candidates[i]))
	}
	return resources
}
