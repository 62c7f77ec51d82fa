package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/store/model"
	"gorm.io/gorm"
)

type JobPosition interface {
	List(ctx context.Context, filter *JobPositionQueryFilter) ([]model.JobPosition, error)
	Get(ctx context.Context, id uuid.UUID) (*model.JobPosition, error)
	Create(ctx context.Context, position model.JobPosition) (*model.JobPosition, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type JobPositionStore struct {
	db *gorm.DB
}

// Make sure we conform to JobPosition interface
var _ JobPosition = (*JobPositionStore)(nil)

func NewJobPositionStore(db *gorm.DB) JobPosition {
	return &JobPositionStore{db: db}
}

func (p *JobPositionStore) List(ctx context.Context, filter *JobPositionQueryFilter) ([]model.JobPosition, error) {
	var positions []model.JobPosition
	tx := p.getDB(ctx)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Model(&model.JobPosition{}).Order("id").Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (p *JobPositionStore) Get(ctx context.Context, id uuid.UUID) (*model.JobPosition, error) {
	position := &model.JobPosition{ID: id}

	if err := p.getDB(ctx).WithContext(ctx).First(&position).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return position, nil
}

func (p *JobPositionStore) Create(ctx context.Context, position model.JobPosition) (*model.JobPosition, error) {
	if err := p.getDB(ctx).WithContext(ctx).Create(&position).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	return &position, nil
}

func (p *JobPositionStore) Delete(ctx context.Context, id uuid.UUID) error {
	position := &model.JobPosition{ID: id}
	result := p.getDB(ctx).WithContext(ctx).Unscoped().Delete(&position)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func (p *JobPositionStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return p.db
}
