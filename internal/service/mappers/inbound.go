// Package mappers validates inbound forms and maps them onto engine and
// store types. Field-level validation lives here; business preconditions
// belong to the lifecycle guards.
package mappers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/recruithub/hiring-pipeline/internal/lifecycle"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type CandidateCreateForm struct {
	JobID             uuid.UUID `validate:"required"`
	Name              string    `validate:"required"`
	Email             string    `validate:"required,email"`
	Phone             string    `validate:"omitempty,e164"`
	CVRef             string    `validate:"required"`
	YearsExperience   int       `validate:"gte=0"`
	ExpectedSalary    int64     `validate:"gt=0"`
	NoticePeriodDays  int       `validate:"gte=0"`
	CurrentlyEmployed bool
	CurrentCompany    string   `validate:"required_if=CurrentlyEmployed true"`
	ExperienceTags    []string `validate:"min=1,dive,required"`
}

func (f CandidateCreateForm) Validate() error {
	return validate.Struct(f)
}

func (f CandidateCreateForm) ToApplyRequest() lifecycle.ApplyRequest {
	return lifecycle.ApplyRequest{
		Name:              f.Name,
		Email:             f.Email,
		Phone:             f.Phone,
		CVRef:             f.CVRef,
		YearsExperience:   f.YearsExperience,
		ExpectedSalary:    f.ExpectedSalary,
		NoticePeriodDays:  f.NoticePeriodDays,
		CurrentlyEmployed: f.CurrentlyEmployed,
		CurrentCompany:    f.CurrentCompany,
		ExperienceTags:    f.ExperienceTags,
	}
}

type TalentCreateForm struct {
	Name             string   `validate:"required"`
	Email            string   `validate:"required,email"`
	Phone            string   `validate:"omitempty,e164"`
	CVRef            string   `validate:"required"`
	YearsExperience  int      `validate:"gte=0"`
	ExpectedSalary   int64    `validate:"gt=0"`
	NoticePeriodDays int      `validate:"gte=0"`
	ReferredBy       *string  `validate:"omitempty,min=1"`
	ExperienceTags   []string `validate:"min=1,dive,required"`
}

func (f TalentCreateForm) Validate() error {
	return validate.Struct(f)
}

func (f TalentCreateForm) ToDomain(displayID string, now time.Time) lifecycle.TalentProfile {
	return lifecycle.TalentProfile{
		ID:               uuid.New(),
		DisplayID:        displayID,
		Name:             f.Name,
		Email:            f.Email,
		Phone:            f.Phone,
		CVRef:            f.CVRef,
		YearsExperience:  f.YearsExperience,
		ExpectedSalary:   f.ExpectedSalary,
		NoticePeriodDays: f.NoticePeriodDays,
		ReferredBy:       f.ReferredBy,
		ExperienceTags:   f.ExperienceTags,
		IsActive:         true,
		CreatedAt:        now,
	}
}

// TalentUpdateForm carries plain field edits. Nil means "leave unchanged";
// these are not state transitions and only field-level validation applies.
type TalentUpdateForm struct {
	Name             *string  `validate:"omitempty,min=1"`
	Email            *string  `validate:"omitempty,email"`
	Phone            *string  `validate:"omitempty,e164"`
	CVRef            *string  `validate:"omitempty,min=1"`
	YearsExperience  *int     `validate:"omitempty,gte=0"`
	ExpectedSalary   *int64   `validate:"omitempty,gt=0"`
	NoticePeriodDays *int     `validate:"omitempty,gte=0"`
	ReferredBy       *string  `validate:"omitempty,min=1"`
	ExperienceTags   []string `validate:"omitempty,min=1,dive,required"`
}

func (f TalentUpdateForm) Validate() error {
	return validate.Struct(f)
}

// ApplyTo copies the non-nil edits onto the profile.
func (f TalentUpdateForm) ApplyTo(p *lifecycle.TalentProfile) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Email != nil {
		p.Email = *f.Email
	}
	if f.Phone != nil {
		p.Phone = *f.Phone
	}
	if f.CVRef != nil {
		p.CVRef = *f.CVRef
	}
	if f.YearsExperience != nil {
		p.YearsExperience = *f.YearsExperience
	}
	if f.ExpectedSalary != nil {
		p.ExpectedSalary = *f.ExpectedSalary
	}
	if f.NoticePeriodDays != nil {
		p.NoticePeriodDays = *f.NoticePeriodDays
	}
	if f.ReferredBy != nil {
		p.ReferredBy = f.ReferredBy
	}
	if len(f.ExperienceTags) > 0 {
		p.ExperienceTags = f.ExperienceTags
	}
}

type JobCreateForm struct {
	Title       string `validate:"required"`
	Description string
	Location    string
}

func (f JobCreateForm) Validate() error {
	return validate.Struct(f)
}
