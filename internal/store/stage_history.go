package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/powhr/talentflow/internal/store/model"
	"gorm.io/gorm"
)

type StageHistory interface {
	Append(ctx context.Context, entry model.StageHistory) (*model.StageHistory, error)
	Backfill(ctx context.Context, entries []model.StageHistory) error
	ListFor(ctx context.Context, applicationID uuid.UUID) (model.StageHistoryList, error)
}

type StageHistoryStore struct {
	db *gorm.DB
}

// Make sure we conform to StageHistory interface
var _ StageHistory = (*StageHistoryStore)(nil)

func NewStageHistoryStore(db *gorm.DB) StageHistory {
	return &StageHistoryStore{db: db}
}

// Append inserts one ledger entry. Prior entries are never touched. A
// non-nil from_stage must equal the application's current stage at append
// time; the check guards against lost updates when two transitions race
// on the same application.
func (s *StageHistoryStore) Append(ctx context.Context, entry model.StageHistory) (*model.StageHistory, error) {
	if entry.ToStage == "" {
		return nil, ErrInvalidHistoryEntry
	}

	if entry.FromStage != nil {
		var current struct{ CurrentStage string }
		err := s.getDB(ctx).WithContext(ctx).
			Model(&model.Application{}).
			Select("current_stage").
			Where("id = ?", entry.ApplicationID).
			First(&current).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRecordNotFound
			}
			return nil, err
		}
		if current.CurrentStage != string(*entry.FromStage) {
			return nil, ErrInvalidHistoryEntry
		}
	}

	if err := s.getDB(ctx).WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// Backfill inserts reconstructed entries for an application whose ledger
// is missing. It skips the current-stage check because the entries being
// written describe past transitions, not the one in flight. Maintenance
// use only.
func (s *StageHistoryStore) Backfill(ctx context.Context, entries []model.StageHistory) error {
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		if entries[i].ToStage == "" {
			return ErrInvalidHistoryEntry
		}
	}

	return s.getDB(ctx).WithContext(ctx).Create(&entries).Error
}

// ListFor returns the full history of an application, chronological
// ascending. Ties on changed_at are broken by insertion order.
func (s *StageHistoryStore) ListFor(ctx context.Context, applicationID uuid.UUID) (model.StageHistoryList, error) {
	var entries model.StageHistoryList
	err := s.getDB(ctx).WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("changed_at, id").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *StageHistoryStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
