package model

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Job struct {
	gorm.Model
	ID          uuid.UUID `gorm:"primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	Location    string
	IsActive    bool `gorm:"not null;default:true"`

	Candidates []Candidate `gorm:"constraint:OnDelete:CASCADE;"`
}

type JobList []Job

func (j Job) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}

func NewJobFromID(id uuid.UUID) *Job {
	return &Job{ID: id}
}
