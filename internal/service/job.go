package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/recruithub/hiring-pipeline/internal/service/mappers"
	"github.com/recruithub/hiring-pipeline/internal/store"
	"github.com/recruithub/hiring-pipeline/internal/store/model"
)

// JobService manages job postings. A posting's active flag gates new
// applications only; candidates already in flight are unaffected when it
// flips.
type JobService struct {
	store store.Store
}

func NewJobService(store store.Store) *JobService {
	return &JobService{store: store}
}

func (s *JobService) CreateJob(ctx context.Context, form mappers.JobCreateForm) (*model.Job, error) {
	if err := form.Validate(); err != nil {
		return nil, NewErrInvalidForm(err)
	}

	job := model.Job{
		ID:          uuid.New(),
		Title:       form.Title,
		Description: form.Description,
		Location:    form.Location,
		IsActive:    true,
	}
	return s.store.Job().Create(ctx, job)
}

func (s *JobService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*model.Job, error) {
	job, err := s.store.Job().SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}
	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job, err := s.store.Job().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}
	return job, nil
}

func (s *JobService) ListJobs(ctx context.Context, activeOnly bool) (model.JobList, error) {
	filter := store.NewJobQueryFilter()
	if activeOnly {
		filter = filter.ByActive(true)
	}
	return s.store.Job().List(ctx, filter)
}

func (s *JobService) DeleteJob(ctx context.Context, id uuid.UUID) error {
	return s.store.Job().Delete(ctx, id)
}
