package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/pipeline"
	"github.com/powhr/talentflow/internal/service/mappers"
	"github.com/powhr/talentflow/internal/store"
	"github.com/powhr/talentflow/internal/store/model"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

// PipelineService is the only writer of the application projection and its
// stage history. Every stage change goes through Transition; no other code
// path may touch current_stage, current_stage_status, offer_status or
// final_outcome.
type PipelineService struct {
	store store.Store
}

func NewPipelineService(store store.Store) *PipelineService {
	return &PipelineService{store: store}
}

// CreateApplication registers a new application and seeds its pipeline:
// the CV is recorded as received and the application is advanced to
// HR_REVIEW, the first stage requiring human action. Both seed entries are
// system-generated.
func (s *PipelineService) CreateApplication(ctx context.Context, form mappers.ApplicationCreateForm) (*model.Application, error) {
	if _, err := s.store.Candidate().Get(ctx, form.CandidateID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrCandidateNotFound(form.CandidateID)
		}
		return nil, err
	}
	if _, err := s.store.JobPosition().Get(ctx, form.PositionID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrPositionNotFound(form.PositionID)
		}
		return nil, err
	}

	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	application := form.ToApplication()
	application.CurrentStage = pipeline.StageCVReceived
	application.CurrentStageStatus = pipeline.StatusCompleted

	created, err := s.store.Application().Create(ctx, application)
	if err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrDuplicateResource("application")
		}
		return nil, err
	}

	now := time.Now().UTC()
	cvReceived := pipeline.StageCVReceived

	if _, err := s.store.StageHistory().Append(ctx, model.StageHistory{
		ApplicationID: created.ID,
		FromStage:     nil,
		ToStage:       pipeline.StageCVReceived,
		Status:        pipeline.StatusCompleted,
		ChangedAt:     now,
	}); err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := s.store.StageHistory().Append(ctx, model.StageHistory{
		ApplicationID: created.ID,
		FromStage:     &cvReceived,
		ToStage:       pipeline.StageHRReview,
		Status:        pipeline.StatusPending,
		ChangedAt:     now,
	}); err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	updated, err := s.store.Application().UpdateState(ctx, model.ApplicationStateUpdate{
		ID:            created.ID,
		ObservedStage: pipeline.StageCVReceived,
		Stage:         pipeline.StageHRReview,
		StageStatus:   pipeline.StatusPending,
	})
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	zap.S().Named("pipeline").Infow("application created", "application_id", created.ID, "position_id", form.PositionID)

	return updated, nil
}

// Transition applies one validated stage change: it appends exactly one
// ledger entry and updates the projected fields, all inside a single
// transaction. The stage observed at read time is the optimistic-lock
// predicate on the write.
func (s *PipelineService) Transition(ctx context.Context, form mappers.TransitionForm, actor *string) (*model.Application, error) {
	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	application, err := s.store.Application().Get(ctx, form.ApplicationID)
	if err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrApplicationNotFound(form.ApplicationID)
		}
		return nil, err
	}

	observedStage := application.CurrentStage

	if !pipeline.IsValidTransition(observedStage, form.ToStage) {
		_, _ = store.Rollback(ctx)
		return nil, NewErrInvalidTransition(observedStage, form.ToStage)
	}

	if form.OfferStatus != nil && !pipeline.RequiresOfferStatus(form.ToStage) {
		_, _ = store.Rollback(ctx)
		return nil, NewErrInvalidTransitionReason("an offer status is only meaningful when entering OFFER or CLOSED")
	}

	if pipeline.RequiresOfferStatus(form.ToStage) && form.OfferStatus == nil && application.OfferStatus == nil {
		_, _ = store.Rollback(ctx)
		return nil, NewErrMissingOfferStatus(form.ToStage)
	}

	// The caller's explicit outcome always wins over the derived one.
	outcome := form.FinalOutcome
	if outcome == nil && form.OfferStatus != nil {
		if derived, ok := pipeline.FinalOutcomeFromOfferStatus(*form.OfferStatus); ok && pipeline.CanHaveFinalOutcome(form.ToStage) {
			outcome = &derived
		}
	}

	if outcome != nil && !pipeline.CanHaveFinalOutcome(form.ToStage) {
		_, _ = store.Rollback(ctx)
		return nil, NewErrInvalidTransitionReason("a final outcome can only be set when closing the application")
	}

	if form.RejectionReason != nil {
		if outcome == nil && application.FinalOutcome != nil {
			outcome = application.FinalOutcome
		}
		if outcome == nil {
			_, _ = store.Rollback(ctx)
			return nil, NewErrRejectionReasonWithoutOutcome(*form.RejectionReason)
		}
		if !funk.Contains(pipeline.ValidRejectionReasons(*outcome), *form.RejectionReason) {
			_, _ = store.Rollback(ctx)
			return nil, NewErrInvalidRejectionReason(*form.RejectionReason, *outcome)
		}
	}

	status := application.CurrentStageStatus
	switch {
	case form.Status != nil:
		status = *form.Status
	case form.ToStage != observedStage:
		// entering a new stage
		status = pipeline.StatusPending
	}

	// The ledger entry is appended before the projection moves so the
	// append-time consistency check still sees the observed stage.
	if _, err := s.store.StageHistory().Append(ctx, model.StageHistory{
		ApplicationID: application.ID,
		FromStage:     &observedStage,
		ToStage:       form.ToStage,
		Status:        status,
		ChangedBy:     actor,
		ChangedAt:     time.Now().UTC(),
		Notes:         form.Notes,
	}); err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrInvalidHistoryEntry) {
			return nil, NewErrConcurrentModification(application.ID)
		}
		return nil, err
	}

	updated, err := s.store.Application().UpdateState(ctx, model.ApplicationStateUpdate{
		ID:              application.ID,
		ObservedStage:   observedStage,
		Stage:           form.ToStage,
		StageStatus:     status,
		OfferStatus:     form.OfferStatus,
		FinalOutcome:    outcome,
		RejectionReason: form.RejectionReason,
	})
	if err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrStaleRecord) {
			return nil, NewErrConcurrentModification(application.ID)
		}
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	zap.S().Named("pipeline").Infow("application transitioned",
		"application_id", application.ID,
		"from_stage", observedStage,
		"to_stage", form.ToStage,
		"status", status,
	)

	return updated, nil
}

func (s *PipelineService) GetApplication(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	application, err := s.store.Application().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrApplicationNotFound(id)
		}
		return nil, err
	}
	return application, nil
}

func (s *PipelineService) ListApplications(ctx context.Context, filter *ApplicationFilter) ([]model.Application, error) {
	storeFilter := store.NewApplicationQueryFilter().ByOrgID(filter.OrgID)
	if filter.PositionID != nil {
		storeFilter = storeFilter.ByPositionID(filter.PositionID.String())
	}
	if filter.Stage != nil {
		storeFilter = storeFilter.ByStage(*filter.Stage)
	}
	if filter.Status != nil {
		storeFilter = storeFilter.ByStageStatus(*filter.Status)
	}

	return s.store.Application().List(ctx, storeFilter)
}

// GetHistory returns the application's full ledger, chronological
// ascending. Folding the entries in order reproduces the projection.
func (s *PipelineService) GetHistory(ctx context.Context, id uuid.UUID) (model.StageHistoryList, error) {
	if _, err := s.store.Application().Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrApplicationNotFound(id)
		}
		return nil, err
	}

	return s.store.StageHistory().ListFor(ctx, id)
}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	OrgID      string
	PositionID *uuid.UUID
	Stage      *pipeline.Stage
	Status     *pipeline.StageStatus
}

type ApplicationFilterOption func(*ApplicationFilter)

func NewApplicationFilter(opts ...ApplicationFilterOption) *ApplicationFilter {
	f := &ApplicationFilter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithOrgID(orgID string) ApplicationFilterOption {
	return func(f *ApplicationFilter) {
		f.OrgID = orgID
	}
}

func WithPositionID(id uuid.UUID) ApplicationFilterOption {
	return func(f *ApplicationFilter) {
		f.PositionID = &id
	}
}

func WithStage(stage pipeline.Stage) ApplicationFilterOption {
	return func(f *ApplicationFilter) {
		f.Stage = &stage
	}
}

func WithStageStatus(status pipeline.StageStatus) ApplicationFilterOption {
	return func(f *ApplicationFilter) {
		f.Status = &status
	}
}
