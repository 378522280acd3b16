package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recruithub/hiring-pipeline/internal/store/model"
)

type Job interface {
	List(ctx context.Context, filter *JobQueryFilter) (model.JobList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Job, error)
	Create(ctx context.Context, job model.Job) (*model.Job, error)
	Update(ctx context.Context, job model.Job) (*model.Job, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*model.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type JobStore struct {
	db *gorm.DB
}

// Make sure we conform to Job interface
var _ Job = (*JobStore)(nil)

func NewJobStore(db *gorm.DB) Job {
	return &JobStore{db: db}
}

func (s *JobStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}

func (s *JobStore) List(ctx context.Context, filter *JobQueryFilter) (model.JobList, error) {
	var jobs model.JobList
	tx := s.getDB(ctx).Model(&model.Job{})

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Order("created_at").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobStore) Get(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job := model.NewJobFromID(id)
	if err := s.getDB(ctx).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *JobStore) Create(ctx context.Context, job model.Job) (*model.Job, error) {
	if err := s.getDB(ctx).Create(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &job, nil
}

func (s *JobStore) Update(ctx context.Context, job model.Job) (*model.Job, error) {
	result := s.getDB(ctx).Model(&job).
		Select("title", "description", "location", "is_active").
		Updates(&job)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return s.Get(ctx, job.ID)
}

func (s *JobStore) SetActive(ctx context.Context, id uuid.UUID, active bool) (*model.Job, error) {
	result := s.getDB(ctx).Model(model.NewJobFromID(id)).Update("is_active", active)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return s.Get(ctx, id)
}

func (s *JobStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).Unscoped().Delete(model.NewJobFromID(id))
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}
