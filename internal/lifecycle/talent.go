package lifecycle

import (
	"time"

	"github.com/google/uuid"
)

// TalentProfile is a standing profile in the talent pool, not tied to any job
// opening. Its lifecycle is a two-state toggle; every other change is a plain
// field edit subject to field-level validation only.
type TalentProfile struct {
	ID        uuid.UUID
	DisplayID string

	Name             string
	Email            string
	Phone            string
	CVRef            string
	YearsExperience  int
	ExpectedSalary   int64
	NoticePeriodDays int
	ExperienceTags   []string

	// ReferredBy optionally points at the internal user who referred the
	// profile.
	ReferredBy *string

	IsActive  bool
	CreatedAt time.Time
}

// TalentResult is a successful talent-pool transition.
type TalentResult struct {
	Profile TalentProfile
	Events  []DomainEvent
}

// TalentTransition toggles a profile between Active and Inactive. The only
// precondition is that the profile exists, which the caller established by
// loading it.
func TalentTransition(p TalentProfile, event Event, _ time.Time) (TalentResult, error) {
	switch event {
	case EventActivate:
		if p.IsActive {
			return TalentResult{}, &TransitionError{
				Kind:    KindInvalidTransition,
				Reason:  "invalid_transition",
				Message: "profile is already active",
			}
		}
		p.IsActive = true
		return TalentResult{
			Profile: p,
			Events:  []DomainEvent{NotifyCandidate(p.DisplayID, TemplateTalentActivated, nil)},
		}, nil
	case EventDeactivate:
		if !p.IsActive {
			return TalentResult{}, &TransitionError{
				Kind:    KindInvalidTransition,
				Reason:  "invalid_transition",
				Message: "profile is already inactive",
			}
		}
		p.IsActive = false
		return TalentResult{
			Profile: p,
			Events:  []DomainEvent{NotifyCandidate(p.DisplayID, TemplateTalentDeactivated, nil)},
		}, nil
	default:
		status := CandidateStatus("Inactive")
		if p.IsActive {
			status = "Active"
		}
		return TalentResult{}, NewInvalidTransition(status, event)
	}
}

// TalentAvailableEvents returns the single legal toggle for the profile.
func TalentAvailableEvents(p TalentProfile) []Event {
	if p.IsActive {
		return []Event{EventDeactivate}
	}
	return []Event{EventActivate}
}
