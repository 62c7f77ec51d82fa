package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/service/mappers"
	"github.com/powhr/talentflow/internal/store"
	"github.com/powhr/talentflow/internal/store/model"
)

type PositionService struct {
	store store.Store
}

func NewPositionService(store store.Store) *PositionService {
	return &PositionService{store: store}
}

func (s *PositionService) Create(ctx context.Context, form mappers.JobPositionCreateForm) (*model.JobPosition, error) {
	position, err := s.store.JobPosition().Create(ctx, form.ToJobPosition())
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrDuplicateResource("position")
		}
		return nil, err
	}
	return position, nil
}

func (s *PositionService) Get(ctx context.Context, id uuid.UUID) (*model.JobPosition, error) {
	position, err := s.store.JobPosition().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrPositionNotFound(id)
		}
		return nil, err
	}
	return position, nil
}

func (s *PositionService) List(ctx context.Context, orgID string, department *string) ([]model.JobPosition, error) {
	filter := store.NewJobPositionQueryFilter().ByOrgID(orgID)
	if department != nil {
		filter = filter.ByDepartment(*department)
	}
	return s.store.JobPosition().List(ctx, filter)
}

// Delete removes a position together with its applications and their
// histories. Deleting an unknown id is a no-op.
func (s *PositionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.JobPosition().Delete(ctx, id)
}
