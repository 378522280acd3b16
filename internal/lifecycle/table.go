package lifecycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Config carries the externally configured knobs the guards read. The pass
// threshold is deliberately not hard-coded in the table.
type Config struct {
	// PassThreshold is the minimum evaluation score (inclusive, compared as
	// score >= threshold) that makes a candidate interview eligible.
	PassThreshold int
	// MaxTaskLinks caps the total number of task links per candidate.
	MaxTaskLinks int
}

// DefaultConfig returns the documented defaults: threshold 60, 10 links.
func DefaultConfig() Config {
	return Config{PassThreshold: 60, MaxTaskLinks: 10}
}

// Request is a transition request against a single candidate.
type Request struct {
	Event   Event
	Payload any
}

// Result is a successful transition: the mutated candidate copy plus the
// domain events queued for the notification collaborator.
type Result struct {
	Candidate Candidate
	Events    []DomainEvent
}

// Payloads accepted by the transition table.
type (
	SubmitTaskPayload struct {
		Links []TaskLink
	}
	AddLinksPayload struct {
		Links []TaskLink
	}
	EvaluatePayload struct {
		Score    int
		Comments string
	}
	ReschedulePayload struct {
		InterviewID uuid.UUID
		Slot        ScheduleRequest
	}
	CompletePayload struct {
		InterviewID uuid.UUID
		Result      InterviewResult
		Feedback    string
	}
)

// rule is one cell of the transition table. when is the payload-independent
// precondition: AvailableEvents lists exactly the events whose when holds,
// and Transition rejects a failing when as InvalidTransition. apply validates
// the payload (GuardFailed / SchedulingError on violation), mutates the
// candidate copy, sets the next status and returns the events to emit.
type rule struct {
	when  func(c *Candidate) bool
	apply func(c *Candidate, req Request, cfg Config, now time.Time) ([]DomainEvent, error)
}

var candidateRules = map[CandidateStatus]map[Event]rule{
	StatusApplied: {
		EventApproveForTask: {apply: applyApproveForTask},
	},
	StatusTaskPending: {
		EventSubmitTask: {apply: applySubmitTask},
	},
	StatusTaskSubmitted: {
		EventBeginReview: {apply: applyBeginReview},
		EventAddLinks:    {apply: applyAddLinks},
	},
	StatusUnderReview: {
		EventEvaluate: {apply: applyEvaluate},
		EventAddLinks: {apply: applyAddLinks},
	},
	StatusInterviewEligible: {
		EventScheduleInterview: {apply: applySchedule},
	},
	StatusInterviewScheduled: {
		EventCompleteInterview:   {apply: applyComplete},
		EventRescheduleInterview: {apply: applyReschedule},
	},
	StatusInterviewCompleted: {
		EventScheduleNextInterview: {apply: applySchedule},
		EventShortlist:             {when: hasPassedInterview, apply: applyShortlist},
		EventFinalizeSelected:      {when: finalSelectionUnset, apply: applyFinalizeSelected},
		EventFinalizeRejected:      {when: finalSelectionUnset, apply: applyFinalizeRejected},
	},
	StatusShortlisted: {
		EventFinalizeSelected: {when: finalSelectionUnset, apply: applyFinalizeSelected},
		EventFinalizeRejected: {when: finalSelectionUnset, apply: applyFinalizeRejected},
	},
}

// eventOrder fixes the order AvailableEvents reports in.
var eventOrder = []Event{
	EventApproveForTask,
	EventSubmitTask,
	EventBeginReview,
	EventAddLinks,
	EventEvaluate,
	EventScheduleInterview,
	EventRescheduleInterview,
	EventCompleteInterview,
	EventScheduleNextInterview,
	EventShortlist,
	EventFinalizeSelected,
	EventFinalizeRejected,
	EventReject,
}

func init() {
	// The administrative Reject override is legal from every non-terminal
	// status.
	for _, st := range allCandidateStatuses {
		if st.IsTerminal() {
			continue
		}
		candidateRules[st][EventReject] = rule{apply: applyAdminReject}
	}
}

// Transition applies one event to a candidate. It is pure: the input is
// cloned and the caller is responsible for persisting the result.
func Transition(c Candidate, req Request, cfg Config, now time.Time) (Result, error) {
	r, ok := lookupRule(&c, req.Event)
	if !ok {
		return Result{}, NewInvalidTransition(c.Status, req.Event)
	}

	next := c.Clone()
	events, err := r.apply(&next, req, cfg, now)
	if err != nil {
		return Result{}, err
	}
	return Result{Candidate: next, Events: events}, nil
}

// CanTransition reports whether the event is currently legal, ignoring
// payload validation.
func CanTransition(c Candidate, event Event) bool {
	_, ok := lookupRule(&c, event)
	return ok
}

// AvailableEvents returns the events Transition would accept for the
// candidate's current state. It reads the same table as Transition, so the
// two cannot diverge. Terminal statuses yield an empty set.
func AvailableEvents(c Candidate) []Event {
	out := []Event{}
	for _, e := range eventOrder {
		if CanTransition(c, e) {
			out = append(out, e)
		}
	}
	return out
}

func lookupRule(c *Candidate, event Event) (rule, bool) {
	rules, ok := candidateRules[c.Status]
	if !ok {
		return rule{}, false
	}
	r, ok := rules[event]
	if !ok {
		return rule{}, false
	}
	if r.when != nil && !r.when(c) {
		return rule{}, false
	}
	return r, true
}

func hasPassedInterview(c *Candidate) bool  { return c.HasPassedInterview() }
func finalSelectionUnset(c *Candidate) bool { return c.FinalSelection == nil }

func payloadAs[T any](req Request) (T, error) {
	p, ok := req.Payload.(T)
	if !ok {
		var zero T
		return zero, NewGuardFailed(ReasonPayloadInvalid,
			fmt.Sprintf("event %s requires a %T payload", req.Event, zero))
	}
	return p, nil
}

func applyApproveForTask(c *Candidate, _ Request, _ Config, _ time.Time) ([]DomainEvent, error) {
	c.Status = StatusTaskPending
	return []DomainEvent{NotifyCandidate(c.DisplayID, TemplateTaskAssigned, nil)}, nil
}

func applySubmitTask(c *Candidate, req Request, cfg Config, now time.Time) ([]DomainEvent, error) {
	p, err := payloadAs[SubmitTaskPayload](req)
	if err != nil {
		return nil, err
	}
	if len(p.Links) == 0 {
		return nil, NewGuardFailed(ReasonLinksRequired, "at least one link required")
	}
	if err := validateLinks(p.Links); err != nil {
		return nil, err
	}
	if len(p.Links) > cfg.MaxTaskLinks {
		return nil, linksLimitError(cfg)
	}

	c.TaskSubmission = &TaskSubmission{
		Links:       append([]TaskLink(nil), p.Links...),
		SubmittedAt: now,
	}
	c.Status = StatusTaskSubmitted
	return []DomainEvent{NotifyCandidate(c.DisplayID, TemplateTaskReceived, nil)}, nil
}

func applyBeginReview(c *Candidate, _ Request, _ Config, _ time.Time) ([]DomainEvent, error) {
	c.Status = StatusUnderReview
	return nil, nil
}

// applyAddLinks appends links to an existing submission without advancing the
// pipeline: the candidate stays in its current status. Existing links are
// immutable and never reordered.
func applyAddLinks(c *Candidate, req Request, cfg Config, _ time.Time) ([]DomainEvent, error) {
	p, err := payloadAs[AddLinksPayload](req)
	if err != nil {
		return nil, err
	}
	if len(p.Links) == 0 {
		return nil, NewGuardFailed(ReasonLinksRequired, "at least one link required")
	}
	if err := validateLinks(p.Links); err != nil {
		return nil, err
	}
	if c.TaskSubmission == nil {
		return nil, &IntegrityError{Message: fmt.Sprintf("candidate %s is %s without a task submission", c.DisplayID, c.Status)}
	}
	if len(c.TaskSubmission.Links)+len(p.Links) > cfg.MaxTaskLinks {
		return nil, linksLimitError(cfg)
	}

	c.TaskSubmission.Links = append(c.TaskSubmission.Links, p.Links...)
	return nil, nil
}

// applyEvaluate records the evaluation and branches on the configured pass
// threshold: score >= threshold is eligible, anything below is rejected.
func applyEvaluate(c *Candidate, req Request, cfg Config, now time.Time) ([]DomainEvent, error) {
	p, err := payloadAs[EvaluatePayload](req)
	if err != nil {
		return nil, err
	}
	if p.Score < 0 || p.Score > 100 {
		return nil, NewGuardFailed(ReasonScoreOutOfRange, "score must be an integer between 0 and 100")
	}

	c.Evaluation = &Evaluation{Score: p.Score, Comments: p.Comments, EvaluatedAt: now}
	if p.Score >= cfg.PassThreshold {
		c.Status = StatusInterviewEligible
		return nil, nil
	}
	c.Status = StatusRejected
	return []DomainEvent{NotifyCandidate(c.DisplayID, TemplateRejected, nil)}, nil
}

func applySchedule(c *Candidate, req Request, _ Config, now time.Time) ([]DomainEvent, error) {
	p, err := payloadAs[ScheduleRequest](req)
	if err != nil {
		return nil, err
	}
	iv, err := Schedule(c, p, now)
	if err != nil {
		return nil, err
	}

	c.Status = StatusInterviewScheduled
	extra := map[string]any{"scheduled_date": iv.ScheduledDate, "interview_id": iv.ID.String()}
	return []DomainEvent{
		NotifyCandidate(c.DisplayID, TemplateInterviewScheduled, extra),
		NotifyInterviewer(c.DisplayID, iv.InterviewerID, extra),
	}, nil
}

func applyReschedule(c *Candidate, req Request, _ Config, now time.Time) ([]DomainEvent, error) {
	p, err := payloadAs[ReschedulePayload](req)
	if err != nil {
		return nil, err
	}
	iv, err := Reschedule(c, p.InterviewID, p.Slot, now)
	if err != nil {
		return nil, err
	}

	extra := map[string]any{"scheduled_date": iv.ScheduledDate, "interview_id": iv.ID.String()}
	return []DomainEvent{
		NotifyCandidate(c.DisplayID, TemplateInterviewUpdated, extra),
		NotifyInterviewer(c.DisplayID, iv.InterviewerID, extra),
	}, nil
}

func applyComplete(c *Candidate, req Request, _ Config, now time.Time) ([]DomainEvent, error) {
	p, err := payloadAs[CompletePayload](req)
	if err != nil {
		return nil, err
	}
	if _, err := Complete(c, p.InterviewID, p.Result, p.Feedback, now); err != nil {
		return nil, err
	}
	c.Status = StatusInterviewCompleted
	return nil, nil
}

func applyShortlist(c *Candidate, _ Request, _ Config, _ time.Time) ([]DomainEvent, error) {
	c.Status = StatusShortlisted
	return []DomainEvent{NotifyCandidate(c.DisplayID, TemplateShortlisted, nil)}, nil
}

func applyFinalizeSelected(c *Candidate, _ Request, _ Config, now time.Time) ([]DomainEvent, error) {
	c.FinalSelection = &FinalSelection{Selected: true, SelectedAt: now}
	c.Status = StatusSelected
	return []DomainEvent{NotifyCandidate(c.DisplayID, TemplateSelected, nil)}, nil
}

func applyFinalizeRejected(c *Candidate, _ Request, _ Config, now time.Time) ([]DomainEvent, error) {
	c.FinalSelection = &FinalSelection{Selected: false, SelectedAt: now}
	c.Status = StatusRejected
	return []DomainEvent{NotifyCandidate(c.DisplayID, TemplateRejected, nil)}, nil
}

func applyAdminReject(c *Candidate, _ Request, _ Config, _ time.Time) ([]DomainEvent, error) {
	c.Status = StatusRejected
	return []DomainEvent{NotifyCandidate(c.DisplayID, TemplateRejected, nil)}, nil
}

func validateLinks(links []TaskLink) error {
	for _, l := range links {
		if l.URL == "" {
			return NewGuardFailed(ReasonLinkEmpty, "task links must not be empty")
		}
		switch l.Type {
		case TaskLinkGithub, TaskLinkLive, TaskLinkOther:
		default:
			return NewGuardFailed(ReasonLinkEmpty, fmt.Sprintf("unknown link type %q", l.Type))
		}
	}
	return nil
}

func linksLimitError(cfg Config) error {
	return NewGuardFailed(ReasonLinksLimit,
		fmt.Sprintf("at most %d task links are allowed in total", cfg.MaxTaskLinks))
}
