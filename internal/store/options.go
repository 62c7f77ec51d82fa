package store

import (
	"github.com/powhr/talentflow/internal/pipeline"
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type ApplicationQueryFilter BaseQuerier

func NewApplicationQueryFilter() *ApplicationQueryFilter {
	return &ApplicationQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *ApplicationQueryFilter) ByOrgID(id string) *ApplicationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("org_id = ?", id)
	})
	return f
}

func (f *ApplicationQueryFilter) ByPositionID(id string) *ApplicationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("position_id = ?", id)
	})
	return f
}

func (f *ApplicationQueryFilter) ByCandidateID(id string) *ApplicationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("candidate_id = ?", id)
	})
	return f
}

func (f *ApplicationQueryFilter) ByStage(stage pipeline.Stage) *ApplicationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("current_stage = ?", stage)
	})
	return f
}

func (f *ApplicationQueryFilter) ByStageStatus(status pipeline.StageStatus) *ApplicationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("current_stage_status = ?", status)
	})
	return f
}

func (f *ApplicationQueryFilter) WithoutHistory() *ApplicationQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("NOT EXISTS (SELECT 1 FROM stage_histories WHERE stage_histories.application_id = applications.id)")
	})
	return f
}

type ApplicationQueryOptions BaseQuerier

func NewApplicationQueryOptions() *ApplicationQueryOptions {
	return &ApplicationQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *ApplicationQueryOptions) WithSortOrder(sort SortOrder) *ApplicationQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByID:
			return tx.Order("id")
		case SortByUpdatedTime:
			return tx.Order("updated_at")
		case SortByCreatedTime:
			return tx.Order("created_at")
		default:
			return tx
		}
	})
	return o
}

type JobPositionQueryFilter BaseQuerier

func NewJobPositionQueryFilter() *JobPositionQueryFilter {
	return &JobPositionQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *JobPositionQueryFilter) ByOrgID(id string) *JobPositionQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("org_id = ?", id)
	})
	return f
}

func (f *JobPositionQueryFilter) ByDepartment(department string) *JobPositionQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("department = ?", department)
	})
	return f
}

type CandidateQueryFilter BaseQuerier

func NewCandidateQueryFilter() *CandidateQueryFilter {
	return &CandidateQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *CandidateQueryFilter) ByOrgID(id string) *CandidateQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("org_id = ?", id)
	})
	return f
}

func (f *CandidateQueryFilter) ByEmail(email string) *CandidateQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("email = ?", email)
	})
	return f
}
