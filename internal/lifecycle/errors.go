package lifecycle

import "fmt"

// ErrorKind partitions the failure taxonomy: InvalidTransition is a
// programming or UI error (the event is not legal for the current status),
// GuardFailed and SchedulingError are user-correctable, Integrity means the
// persisted state violates an invariant and the entity must be reconciled
// manually before any further transition.
type ErrorKind string

const (
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindGuardFailed       ErrorKind = "guard_failed"
	KindScheduling        ErrorKind = "scheduling"
	KindIntegrity         ErrorKind = "integrity"
)

// Guard failure reason codes. Presentation layers key field-level messages
// off these, never off the message text.
const (
	ReasonJobInactive       = "job_inactive"
	ReasonMissingField      = "missing_field"
	ReasonMissingCV         = "missing_cv"
	ReasonMissingExperience = "missing_experience"
	ReasonLinksRequired     = "task_links_required"
	ReasonLinkEmpty         = "task_link_empty"
	ReasonLinksLimit        = "task_links_limit"
	ReasonScoreOutOfRange   = "score_out_of_range"
	ReasonResultInvalid     = "interview_result_invalid"
	ReasonPayloadInvalid    = "payload_invalid"
)

// TransitionError is the typed failure returned for every expected
// business-rule violation. The engine never panics or returns untyped errors
// for these.
type TransitionError struct {
	Kind    ErrorKind
	Reason  string
	Message string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func NewInvalidTransition(status CandidateStatus, event Event) *TransitionError {
	return &TransitionError{
		Kind:    KindInvalidTransition,
		Reason:  "invalid_transition",
		Message: fmt.Sprintf("event %s is not legal in status %q", event, status),
	}
}

func NewGuardFailed(reason, message string) *TransitionError {
	return &TransitionError{Kind: KindGuardFailed, Reason: reason, Message: message}
}

// SchedulingReason enumerates the interview coordinator failures.
type SchedulingReason string

const (
	ConflictingOpenInterview SchedulingReason = "conflicting_open_interview"
	PastDate                 SchedulingReason = "past_date"
	MissingMeetingLink       SchedulingReason = "missing_meeting_link"
	AlreadyCompleted         SchedulingReason = "already_completed"
	InterviewNotFound        SchedulingReason = "interview_not_found"
)

// SchedulingError is returned by the scheduling coordinator. It carries the
// same machine-readable reason + message contract as TransitionError.
type SchedulingError struct {
	Reason  SchedulingReason
	Message string
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func NewSchedulingError(reason SchedulingReason, message string) *SchedulingError {
	return &SchedulingError{Reason: reason, Message: message}
}

// IntegrityError indicates corrupted persisted state, e.g. a Selected
// candidate with no final_selection record. It is unrecoverable by the
// caller.
type IntegrityError struct {
	Message string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation: %s", e.Message)
}
