package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recruithub/hiring-pipeline/internal/store/model"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Candidate() Candidate
	Job() Job
	Talent() Talent
	InitialMigration() error
	Seed() error
	Statistics(ctx context.Context) (model.PipelineStats, error)
	Close() error
}

type DataStore struct {
	db        *gorm.DB
	candidate Candidate
	job       Job
	talent    Talent
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:        db,
		candidate: NewCandidateStore(db),
		job:       NewJobStore(db),
		talent:    NewTalentStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Candidate() Candidate {
	return s.candidate
}

func (s *DataStore) Job() Job {
	return s.job
}

func (s *DataStore) Talent() Talent {
	return s.talent
}

func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(
		&model.Experience{},
		&model.Job{},
		&model.Candidate{},
		&model.TalentProfile{},
	)
}

// Seed creates the default job posting used by fresh installations.
func (s *DataStore) Seed() error {
	job := model.Job{
		ID:       uuid.UUID{},
		Title:    "General Application",
		IsActive: true,
	}

	tx, err := newTransaction(s.db)
	if err != nil {
		return err
	}
	if err := tx.tx.Where("id = ?", job.ID).FirstOrCreate(&job).Error; err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *DataStore) Statistics(ctx context.Context) (model.PipelineStats, error) {
	candidates, err := s.Candidate().List(ctx, NewCandidateQueryFilter(), NewCandidateQueryOptions())
	if err != nil {
		return model.PipelineStats{}, err
	}
	talent, err := s.Talent().List(ctx, NewTalentQueryFilter())
	if err != nil {
		return model.PipelineStats{}, err
	}
	return model.NewPipelineStats(candidates, talent), nil
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
