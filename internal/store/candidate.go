package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recruithub/hiring-pipeline/internal/store/model"
)

type Candidate interface {
	List(ctx context.Context, filter *CandidateQueryFilter, opts *CandidateQueryOptions) (model.CandidateList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Candidate, error)
	GetByDisplayID(ctx context.Context, displayID string) (*model.Candidate, error)
	Create(ctx context.Context, candidate model.Candidate) (*model.Candidate, error)
	Update(ctx context.Context, candidate model.Candidate, expectedVersion int) (*model.Candidate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CandidateStore struct {
	db *gorm.DB
}

// Make sure we conform to Candidate interface
var _ Candidate = (*CandidateStore)(nil)

func NewCandidateStore(db *gorm.DB) Candidate {
	return &CandidateStore{db: db}
}

func (s *CandidateStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}

func (s *CandidateStore) List(ctx context.Context, filter *CandidateQueryFilter, opts *CandidateQueryOptions) (model.CandidateList, error) {
	var candidates model.CandidateList
	tx := s.getDB(ctx).Model(&model.Candidate{}).Preload("Experiences")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if opts != nil {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *CandidateStore) Get(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	candidate := model.NewCandidateFromID(id)
	if err := s.getDB(ctx).Preload("Experiences").First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return candidate, nil
}

func (s *CandidateStore) GetByDisplayID(ctx context.Context, displayID string) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := s.getDB(ctx).Preload("Experiences").Where("display_id = ?", displayID).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

func (s *CandidateStore) Create(ctx context.Context, candidate model.Candidate) (*model.Candidate, error) {
	tx := s.getDB(ctx)

	experiences, err := resolveExperiences(tx, candidate.Experiences)
	if err != nil {
		return nil, err
	}
	candidate.Experiences = experiences

	if err := tx.Create(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &candidate, nil
}

// Update persists the engine-owned fields conditioned on the optimistic
// version. RowsAffected = 0 means another transition won the race; the caller
// retries against fresh state.
func (s *CandidateStore) Update(ctx context.Context, candidate model.Candidate, expectedVersion int) (*model.Candidate, error) {
	tx := s.getDB(ctx)

	result := tx.Model(&model.Candidate{}).
		Where("id = ? AND version = ?", candidate.ID, expectedVersion).
		Updates(map[string]any{
			"status":          candidate.Status,
			"task_submission": candidate.TaskSubmission,
			"evaluation":      candidate.Evaluation,
			"interviews":      candidate.Interviews,
			"final_selection": candidate.FinalSelection,
			"version":         expectedVersion + 1,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrConcurrentModification
	}

	return s.Get(ctx, candidate.ID)
}

func (s *CandidateStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).Unscoped().Delete(model.NewCandidateFromID(id))
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

// resolveExperiences maps tag names onto existing experience rows, creating
// the missing ones, so the many2many join never duplicates a tag.
func resolveExperiences(tx *gorm.DB, experiences []model.Experience) ([]model.Experience, error) {
	resolved := make([]model.Experience, 0, len(experiences))
	for _, exp := range experiences {
		var row model.Experience
		if err := tx.Where(model.Experience{Name: exp.Name}).FirstOrCreate(&row).Error; err != nil {
			return nil, err
		}
		resolved = append(resolved, row)
	}
	return resolved, nil
}
