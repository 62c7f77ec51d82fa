package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/store/model"
	"gorm.io/gorm"
)

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByID
	SortByUpdatedTime
	SortByCreatedTime
)

type Application interface {
	List(ctx context.Context, filter *ApplicationQueryFilter, opts ...*ApplicationQueryOptions) ([]model.Application, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Application, error)
	Create(ctx context.Context, application model.Application) (*model.Application, error)
	UpdateState(ctx context.Context, update model.ApplicationStateUpdate) (*model.Application, error)
}

type ApplicationStore struct {
	db *gorm.DB
}

// Make sure we conform to Application interface
var _ Application = (*ApplicationStore)(nil)

func NewApplicationStore(db *gorm.DB) Application {
	return &ApplicationStore{db: db}
}

func (a *ApplicationStore) List(ctx context.Context, filter *ApplicationQueryFilter, opts ...*ApplicationQueryOptions) ([]model.Application, error) {
	var applications []model.Application
	tx := a.getDB(ctx)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		for _, fn := range opt.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Model(&model.Application{}).Order("id").Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

func (a *ApplicationStore) Get(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	application := &model.Application{ID: id}

	if err := a.getDB(ctx).WithContext(ctx).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return application, nil
}

func (a *ApplicationStore) Create(ctx context.Context, application model.Application) (*model.Application, error) {
	if err := a.getDB(ctx).WithContext(ctx).Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	return &application, nil
}

// UpdateState writes the projected pipeline fields of a single transition.
// The observed stage is the optimistic-lock predicate: if another
// transition committed since the caller read the application, zero rows
// match and ErrStaleRecord is returned.
func (a *ApplicationStore) UpdateState(ctx context.Context, update model.ApplicationStateUpdate) (*model.Application, error) {
	fields := map[string]any{
		"current_stage":        update.Stage,
		"current_stage_status": update.StageStatus,
	}
	if update.OfferStatus != nil {
		fields["offer_status"] = *update.OfferStatus
	}
	if update.FinalOutcome != nil {
		fields["final_outcome"] = *update.FinalOutcome
	}
	if update.RejectionReason != nil {
		fields["final_rejection_reason"] = *update.RejectionReason
	}

	result := a.getDB(ctx).WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ? AND current_stage = ?", update.ID, update.ObservedStage).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// either the row is gone or someone moved the stage under us
		if err := a.getDB(ctx).WithContext(ctx).First(&model.Application{ID: update.ID}).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRecordNotFound
			}
			return nil, err
		}
		return nil, ErrStaleRecord
	}

	return a.Get(ctx, update.ID)
}

func (a *ApplicationStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return a.db
}
