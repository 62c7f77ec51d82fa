package store

import (
	"context"

	"github.com/powhr/talentflow/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Application() Application
	StageHistory() StageHistory
	JobPosition() JobPosition
	Candidate() Candidate
	Statistics(ctx context.Context) (model.PipelineStats, error)
	InitialMigration() error
	Close() error
}

type DataStore struct {
	db           *gorm.DB
	application  Application
	stageHistory StageHistory
	jobPosition  JobPosition
	candidate    Candidate
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		application:  NewApplicationStore(db),
		stageHistory: NewStageHistoryStore(db),
		jobPosition:  NewJobPositionStore(db),
		candidate:    NewCandidateStore(db),
		db:           db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Application() Application {
	return s.application
}

func (s *DataStore) StageHistory() StageHistory {
	return s.stageHistory
}

func (s *DataStore) JobPosition() JobPosition {
	return s.jobPosition
}

func (s *DataStore) Candidate() Candidate {
	return s.candidate
}

func (s *DataStore) Statistics(ctx context.Context) (model.PipelineStats, error) {
	applications, err := s.Application().List(ctx, NewApplicationQueryFilter())
	if err != nil {
		return model.PipelineStats{}, err
	}
	return model.NewPipelineStats(applications), nil
}

func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(
		&model.Candidate{},
		&model.JobPosition{},
		&model.Application{},
		&model.StageHistory{},
	)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
