package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/store/model"
	"gorm.io/gorm"
)

type Candidate interface {
	List(ctx context.Context, filter *CandidateQueryFilter) ([]model.Candidate, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	Create(ctx context.Context, candidate model.Candidate) (*model.Candidate, error)
}

type CandidateStore struct {
	db *gorm.DB
}

// Make sure we conform to Candidate interface
var _ Candidate = (*CandidateStore)(nil)

func NewCandidateStore(db *gorm.DB) Candidate {
	return &CandidateStore{db: db}
}

func (c *CandidateStore) List(ctx context.Context, filter *CandidateQueryFilter) ([]model.Candidate, error) {
	var candidates []model.Candidate
	tx := c.getDB(ctx)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Model(&model.Candidate{}).Order("id").Find(&candidates).Error; err != nil {
		return nil, err
	}

	return candidates, nil
}

func (c *CandidateStore) Get(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	candidate := &model.Candidate{ID: id}

	if err := c.getDB(ctx).WithContext(ctx).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return candidate, nil
}

func (c *CandidateStore) Create(ctx context.Context, candidate model.Candidate) (*model.Candidate, error) {
	if err := c.getDB(ctx).WithContext(ctx).Create(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	return &candidate, nil
}

func (c *CandidateStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return c.db
}
