package model

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recruithub/hiring-pipeline/internal/lifecycle"
)

// Experience is a core-experience tag shared by candidates and talent-pool
// profiles.
type Experience struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;not null;type:VARCHAR(100)"`
}

// Candidate is the persisted form of one application. The engine-owned
// sub-records (task submission, evaluation, interviews, final selection) are
// jsonb columns so a transition is one versioned row write. Version is the
// optimistic concurrency token: every update is conditioned on it and
// increments it.
type Candidate struct {
	gorm.Model
	ID        uuid.UUID `gorm:"primaryKey"`
	DisplayID string    `gorm:"uniqueIndex;not null;type:VARCHAR(20)"`
	JobID     uuid.UUID `gorm:"not null;index"`

	Name              string `gorm:"not null"`
	Email             string `gorm:"not null;index"`
	Phone             string
	CVRef             string `gorm:"column:cv_ref"`
	YearsExperience   int
	ExpectedSalary    int64
	NoticePeriodDays  int
	CurrentlyEmployed bool
	CurrentCompany    string

	Status  string `gorm:"not null;index"`
	Version int    `gorm:"not null;default:1"`

	TaskSubmission *JSONField[lifecycle.TaskSubmission] `gorm:"type:jsonb"`
	Evaluation     *JSONField[lifecycle.Evaluation]     `gorm:"type:jsonb"`
	Interviews     *JSONField[[]lifecycle.Interview]    `gorm:"type:jsonb"`
	FinalSelection *JSONField[lifecycle.FinalSelection] `gorm:"type:jsonb"`

	Experiences []Experience `gorm:"many2many:candidate_experiences;"`
}

type CandidateList []Candidate

func (c Candidate) String() string {
	val, _ := json.Marshal(c)
	return string(val)
}

func NewCandidateFromID(id uuid.UUID) *Candidate {
	return &Candidate{ID: id}
}

// NewCandidateFromDomain maps a freshly created engine candidate to its
// persisted form.
func NewCandidateFromDomain(c lifecycle.Candidate) *Candidate {
	out := &Candidate{
		ID:                c.ID,
		DisplayID:         c.DisplayID,
		JobID:             c.JobID,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		CVRef:             c.CVRef,
		YearsExperience:   c.YearsExperience,
		ExpectedSalary:    c.ExpectedSalary,
		NoticePeriodDays:  c.NoticePeriodDays,
		CurrentlyEmployed: c.CurrentlyEmployed,
		CurrentCompany:    c.CurrentCompany,
		Status:            string(c.Status),
		Version:           1,
	}
	out.SetFromDomain(c)
	for _, tag := range c.ExperienceTags {
		out.Experiences = append(out.Experiences, Experience{Name: tag})
	}
	return out
}

// SetFromDomain copies the engine-owned fields back onto the record after a
// transition. The version is left to the store's conditional update.
func (m *Candidate) SetFromDomain(c lifecycle.Candidate) {
	m.Status = string(c.Status)
	if c.TaskSubmission != nil {
		m.TaskSubmission = MakeJSONField(*c.TaskSubmission)
	}
	if c.Evaluation != nil {
		m.Evaluation = MakeJSONField(*c.Evaluation)
	}
	if len(c.Interviews) > 0 {
		m.Interviews = MakeJSONField(c.Interviews)
	}
	if c.FinalSelection != nil {
		m.FinalSelection = MakeJSONField(*c.FinalSelection)
	}
}

// ToDomain rehydrates the engine entity.
func (m *Candidate) ToDomain() (lifecycle.Candidate, error) {
	status, err := lifecycle.ParseCandidateStatus(m.Status)
	if err != nil {
		return lifecycle.Candidate{}, err
	}

	c := lifecycle.Candidate{
		ID:                m.ID,
		DisplayID:         m.DisplayID,
		JobID:             m.JobID,
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		CVRef:             m.CVRef,
		YearsExperience:   m.YearsExperience,
		ExpectedSalary:    m.ExpectedSalary,
		NoticePeriodDays:  m.NoticePeriodDays,
		CurrentlyEmployed: m.CurrentlyEmployed,
		CurrentCompany:    m.CurrentCompany,
		Status:            status,
		CreatedAt:         m.CreatedAt,
	}
	if m.TaskSubmission != nil {
		ts := m.TaskSubmission.Data
		c.TaskSubmission = &ts
	}
	if m.Evaluation != nil {
		ev := m.Evaluation.Data
		c.Evaluation = &ev
	}
	if m.Interviews != nil {
		c.Interviews = m.Interviews.Data
	}
	if m.FinalSelection != nil {
		fs := m.FinalSelection.Data
		c.FinalSelection = &fs
	}
	for _, exp := range m.Experiences {
		c.ExperienceTags = append(c.ExperienceTags, exp.Name)
	}
	return c, nil
}
