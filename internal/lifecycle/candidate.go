package lifecycle

import (
	"time"

	"github.com/google/uuid"
)

// TaskLinkType classifies a submitted task link.
type TaskLinkType string

const (
	TaskLinkGithub TaskLinkType = "github"
	TaskLinkLive   TaskLinkType = "live"
	TaskLinkOther  TaskLinkType = "other"
)

// TaskLink is one entry of a task submission. Links are append-only once
// created; existing entries are never edited or reordered.
type TaskLink struct {
	URL  string       `json:"url"`
	Type TaskLinkType `json:"type"`
}

// TaskSubmission holds the candidate's task links. SubmittedAt is set on the
// first submission only; AddLinks never touches it.
type TaskSubmission struct {
	Links       []TaskLink `json:"links"`
	SubmittedAt time.Time  `json:"submitted_at"`
}

// Evaluation is the review outcome of a task submission.
type Evaluation struct {
	Score       int       `json:"score"`
	Comments    string    `json:"comments"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// FinalSelection is the terminal hiring decision. Immutable once set.
type FinalSelection struct {
	Selected   bool      `json:"selected"`
	SelectedAt time.Time `json:"selected_at"`
}

// Job carries the slice of the job posting the engine needs: a candidate can
// only be created against an active job.
type Job struct {
	ID       uuid.UUID
	Title    string
	IsActive bool
}

// Candidate is one application to one job. The engine owns task_submission,
// evaluation, interviews and final_selection: all mutation goes through the
// transition API, and Status is always a projection of those fields.
type Candidate struct {
	ID        uuid.UUID
	DisplayID string
	JobID     uuid.UUID

	Name              string
	Email             string
	Phone             string
	CVRef             string
	YearsExperience   int
	ExpectedSalary    int64
	NoticePeriodDays  int
	CurrentlyEmployed bool
	CurrentCompany    string
	ExperienceTags    []string

	Status         CandidateStatus
	TaskSubmission *TaskSubmission
	Evaluation     *Evaluation
	Interviews     []Interview
	FinalSelection *FinalSelection

	CreatedAt time.Time
}

// OpenInterview returns the interview without a terminal result, or nil.
// The scheduling coordinator guarantees there is at most one.
func (c *Candidate) OpenInterview() *Interview {
	for i := range c.Interviews {
		if !c.Interviews[i].Result.IsTerminal() {
			return &c.Interviews[i]
		}
	}
	return nil
}

// HasPassedInterview reports whether at least one interview concluded with
// Passed.
func (c *Candidate) HasPassedInterview() bool {
	for i := range c.Interviews {
		if c.Interviews[i].Result == ResultPassed {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Transition mutates the copy so a failed guard
// leaves the caller's candidate untouched.
func (c Candidate) Clone() Candidate {
	out := c
	if c.TaskSubmission != nil {
		ts := *c.TaskSubmission
		ts.Links = append([]TaskLink(nil), c.TaskSubmission.Links...)
		out.TaskSubmission = &ts
	}
	if c.Evaluation != nil {
		ev := *c.Evaluation
		out.Evaluation = &ev
	}
	if c.FinalSelection != nil {
		fs := *c.FinalSelection
		out.FinalSelection = &fs
	}
	out.ExperienceTags = append([]string(nil), c.ExperienceTags...)
	out.Interviews = make([]Interview, len(c.Interviews))
	for i, iv := range c.Interviews {
		out.Interviews[i] = iv.clone()
	}
	return out
}

// ApplyRequest is the payload of the Apply creation transition.
type ApplyRequest struct {
	Name              string
	Email             string
	Phone             string
	CVRef             string
	YearsExperience   int
	ExpectedSalary    int64
	NoticePeriodDays  int
	CurrentlyEmployed bool
	CurrentCompany    string
	ExperienceTags    []string
}

// Apply is the (none) → Applied transition: it creates a new candidate
// against an active job. The display identifier is assigned by the caller's
// id generator and treated as opaque here.
func Apply(req ApplyRequest, job Job, displayID string, now time.Time) (Candidate, []DomainEvent, error) {
	if !job.IsActive {
		return Candidate{}, nil, NewGuardFailed(ReasonJobInactive, "job is not accepting applications")
	}
	if req.Name == "" || req.Email == "" {
		return Candidate{}, nil, NewGuardFailed(ReasonMissingField, "name and email are required")
	}
	if req.CVRef == "" {
		return Candidate{}, nil, NewGuardFailed(ReasonMissingCV, "a CV reference is required")
	}
	if len(req.ExperienceTags) == 0 {
		return Candidate{}, nil, NewGuardFailed(ReasonMissingExperience, "at least one core experience is required")
	}

	c := Candidate{
		ID:                uuid.New(),
		DisplayID:         displayID,
		JobID:             job.ID,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		CVRef:             req.CVRef,
		YearsExperience:   req.YearsExperience,
		ExpectedSalary:    req.ExpectedSalary,
		NoticePeriodDays:  req.NoticePeriodDays,
		CurrentlyEmployed: req.CurrentlyEmployed,
		CurrentCompany:    req.CurrentCompany,
		ExperienceTags:    append([]string(nil), req.ExperienceTags...),
		Status:            StatusApplied,
		CreatedAt:         now,
	}

	events := []DomainEvent{NotifyCandidate(c.DisplayID, TemplateApplicationReceived, nil)}
	return c, events, nil
}
