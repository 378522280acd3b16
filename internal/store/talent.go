package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recruithub/hiring-pipeline/internal/store/model"
)

type Talent interface {
	List(ctx context.Context, filter *TalentQueryFilter) (model.TalentProfileList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.TalentProfile, error)
	GetByDisplayID(ctx context.Context, displayID string) (*model.TalentProfile, error)
	Create(ctx context.Context, profile model.TalentProfile) (*model.TalentProfile, error)
	Update(ctx context.Context, profile model.TalentProfile, expectedVersion int) (*model.TalentProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TalentStore struct {
	db *gorm.DB
}

// Make sure we conform to Talent interface
var _ Talent = (*TalentStore)(nil)

func NewTalentStore(db *gorm.DB) Talent {
	return &TalentStore{db: db}
}

func (s *TalentStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}

func (s *TalentStore) List(ctx context.Context, filter *TalentQueryFilter) (model.TalentProfileList, error) {
	var profiles model.TalentProfileList
	tx := s.getDB(ctx).Model(&model.TalentProfile{}).Preload("Experiences")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Order("created_at").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *TalentStore) Get(ctx context.Context, id uuid.UUID) (*model.TalentProfile, error) {
	profile := model.NewTalentProfileFromID(id)
	if err := s.getDB(ctx).Preload("Experiences").First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *TalentStore) GetByDisplayID(ctx context.Context, displayID string) (*model.TalentProfile, error) {
	var profile model.TalentProfile
	if err := s.getDB(ctx).Preload("Experiences").Where("display_id = ?", displayID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *TalentStore) Create(ctx context.Context, profile model.TalentProfile) (*model.TalentProfile, error) {
	tx := s.getDB(ctx)

	experiences, err := resolveExperiences(tx, profile.Experiences)
	if err != nil {
		return nil, err
	}
	profile.Experiences = experiences

	if err := tx.Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &profile, nil
}

// Update persists profile edits and the active flag conditioned on the
// optimistic version, same discipline as the candidate store.
func (s *TalentStore) Update(ctx context.Context, profile model.TalentProfile, expectedVersion int) (*model.TalentProfile, error) {
	tx := s.getDB(ctx)

	if len(profile.Experiences) > 0 {
		experiences, err := resolveExperiences(tx, profile.Experiences)
		if err != nil {
			return nil, err
		}
		if err := tx.Model(&profile).Association("Experiences").Replace(experiences); err != nil {
			return nil, err
		}
	}

	result := tx.Model(&model.TalentProfile{}).
		Where("id = ? AND version = ?", profile.ID, expectedVersion).
		Updates(map[string]any{
			"name":               profile.Name,
			"email":              profile.Email,
			"phone":              profile.Phone,
			"cv_ref":             profile.CVRef,
			"years_experience":   profile.YearsExperience,
			"expected_salary":    profile.ExpectedSalary,
			"notice_period_days": profile.NoticePeriodDays,
			"referred_by":        profile.ReferredBy,
			"is_active":          profile.IsActive,
			"version":            expectedVersion + 1,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrConcurrentModification
	}

	return s.Get(ctx, profile.ID)
}

func (s *TalentStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).Unscoped().Delete(model.NewTalentProfileFromID(id))
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}
