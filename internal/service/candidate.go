package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/service/mappers"
	"github.com/powhr/talentflow/internal/store"
	"github.com/powhr/talentflow/internal/store/model"
)

type CandidateService struct {
	store store.Store
}

func NewCandidateService(store store.Store) *CandidateService {
	return &CandidateService{store: store}
}

func (s *CandidateService) Create(ctx context.Context, form mappers.CandidateCreateForm) (*model.Candidate, error) {
	candidate, err := s.store.Candidate().Create(ctx, form.ToCandidate())
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrDuplicateResource("candidate")
		}
		return nil, err
	}
	return candidate, nil
}

func (s *CandidateService) Get(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	candidate, err := s.store.Candidate().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCandidateNotFound(id)
		}
		return nil, err
	}
	return candidate, nil
}

func (s *CandidateService) List(ctx context.Context, orgID string, email *string) ([]model.Candidate, error) {
	filter := store.NewCandidateQueryFilter().ByOrgID(orgID)
	if email != nil {
		filter = filter.ByEmail(*email)
	}
	return s.store.Candidate().List(ctx, filter)
}
