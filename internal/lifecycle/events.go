package lifecycle

// Notification templates referenced by emitted domain events. The
// notification collaborator resolves them; the engine only names them.
const (
	TemplateApplicationReceived = "application_received"
	TemplateTaskAssigned        = "task_assigned"
	TemplateTaskReceived        = "task_received"
	TemplateInterviewScheduled  = "interview_scheduled"
	TemplateInterviewUpdated    = "interview_updated"
	TemplateShortlisted         = "shortlisted"
	TemplateSelected            = "selected"
	TemplateRejected            = "rejected"
	TemplateTalentActivated     = "talent_pool_activated"
	TemplateTalentDeactivated   = "talent_pool_deactivated"
)

// Domain event types.
const (
	EventTypeNotifyCandidate   = "notify.candidate"
	EventTypeNotifyInterviewer = "notify.interviewer"
)

// DomainEvent is a declarative side effect emitted alongside a successful
// transition. Events are queued, never executed inline; delivery failure must
// never roll back the committed transition.
type DomainEvent struct {
	Type        string         `json:"type"`
	CandidateID string         `json:"candidate_id"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// NotifyCandidate declares an outbound notification to the candidate using
// the given template.
func NotifyCandidate(candidateID, template string, extra map[string]any) DomainEvent {
	payload := map[string]any{"template": template}
	for k, v := range extra {
		payload[k] = v
	}
	return DomainEvent{
		Type:        EventTypeNotifyCandidate,
		CandidateID: candidateID,
		Payload:     payload,
	}
}

// NotifyInterviewer declares an outbound notification to the interviewer of
// a scheduled interview.
func NotifyInterviewer(candidateID, interviewerID string, extra map[string]any) DomainEvent {
	payload := map[string]any{"interviewer_id": interviewerID}
	for k, v := range extra {
		payload[k] = v
	}
	return DomainEvent{
		Type:        EventTypeNotifyInterviewer,
		CandidateID: candidateID,
		Payload:     payload,
	}
}
