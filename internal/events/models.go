package events

import (
	"github.com/recruithub/hiring-pipeline/internal/lifecycle"
)

// TransitionMessage is the payload produced for every committed lifecycle
// transition: the entity's new status plus the domain events the transition
// declared. The notification collaborator drains these asynchronously.
type TransitionMessage struct {
	CandidateID string                  `json:"candidate_id"`
	Event       string                  `json:"event"`
	Status      string                  `json:"status"`
	Version     int                     `json:"version"`
	Events      []lifecycle.DomainEvent `json:"events"`
}

// TalentMessage is produced for talent-pool toggles.
type TalentMessage struct {
	ProfileID string                  `json:"profile_id"`
	Event     string                  `json:"event"`
	IsActive  bool                    `json:"is_active"`
	Events    []lifecycle.DomainEvent `json:"events"`
}
