package model

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recruithub/hiring-pipeline/internal/lifecycle"
)

// TalentProfile is a standing profile in the talent pool. Same optimistic
// versioning discipline as Candidate.
type TalentProfile struct {
	gorm.Model
	ID        uuid.UUID `gorm:"primaryKey"`
	DisplayID string    `gorm:"uniqueIndex;not null;type:VARCHAR(20)"`

	Name             string `gorm:"not null"`
	Email            string `gorm:"not null;index"`
	Phone            string
	CVRef            string `gorm:"column:cv_ref"`
	YearsExperience  int
	ExpectedSalary   int64
	NoticePeriodDays int
	ReferredBy       *string

	IsActive bool `gorm:"not null;default:true"`
	Version  int  `gorm:"not null;default:1"`

	Experiences []Experience `gorm:"many2many:talent_experiences;"`
}

type TalentProfileList []TalentProfile

func (p TalentProfile) String() string {
	val, _ := json.Marshal(p)
	return string(val)
}

func NewTalentProfileFromID(id uuid.UUID) *TalentProfile {
	return &TalentProfile{ID: id}
}

// NewTalentProfileFromDomain maps a new engine profile to its persisted form.
func NewTalentProfileFromDomain(p lifecycle.TalentProfile) *TalentProfile {
	out := &TalentProfile{
		ID:               p.ID,
		DisplayID:        p.DisplayID,
		Name:             p.Name,
		Email:            p.Email,
		Phone:            p.Phone,
		CVRef:            p.CVRef,
		YearsExperience:  p.YearsExperience,
		ExpectedSalary:   p.ExpectedSalary,
		NoticePeriodDays: p.NoticePeriodDays,
		ReferredBy:       p.ReferredBy,
		IsActive:         p.IsActive,
		Version:          1,
	}
	for _, tag := range p.ExperienceTags {
		out.Experiences = append(out.Experiences, Experience{Name: tag})
	}
	return out
}

// ToDomain rehydrates the engine profile.
func (m *TalentProfile) ToDomain() lifecycle.TalentProfile {
	p := lifecycle.TalentProfile{
		ID:               m.ID,
		DisplayID:        m.DisplayID,
		Name:             m.Name,
		Email:            m.Email,
		Phone:            m.Phone,
		CVRef:            m.CVRef,
		YearsExperience:  m.YearsExperience,
		ExpectedSalary:   m.ExpectedSalary,
		NoticePeriodDays: m.NoticePeriodDays,
		ReferredBy:       m.ReferredBy,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
	}
	for _, exp := range m.Experiences {
		p.ExperienceTags = append(p.ExperienceTags, exp.Name)
	}
	return p
}
