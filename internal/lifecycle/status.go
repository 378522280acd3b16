// Package lifecycle implements the hiring pipeline state machine: the
// canonical status sets, the transition table with its guards, the interview
// scheduling coordinator and the talent-pool lifecycle.
//
// Candidate status graph:
//
//	Applied ──► Task Pending ──► Task Submitted ──► Under Review ──► Interview Eligible
//	                                                      │                  │
//	                                                      ▼                  ▼
//	                                                  Rejected ◄── Interview Scheduled ⇄ Interview Completed
//	                                                      ▲                  │
//	                                                      │                  ▼
//	                                                      └──────────── Shortlisted ──► Selected
//
// Selected and Rejected are terminal. The administrative Reject event is
// legal from every non-terminal status.
//
// Everything in this package is pure: transitions copy the entity, mutate the
// copy and return it together with the domain events to emit. Persistence and
// notification delivery belong to the caller.
package lifecycle

import "fmt"

// CandidateStatus values are the consolidated status strings the rest of the
// system shares. They are persisted as-is.
type CandidateStatus string

const (
	StatusApplied            CandidateStatus = "Applied"
	StatusTaskPending        CandidateStatus = "Task Pending"
	StatusTaskSubmitted      CandidateStatus = "Task Submitted"
	StatusUnderReview        CandidateStatus = "Under Review"
	StatusInterviewEligible  CandidateStatus = "Interview Eligible"
	StatusInterviewScheduled CandidateStatus = "Interview Scheduled"
	StatusInterviewCompleted CandidateStatus = "Interview Completed"
	StatusShortlisted        CandidateStatus = "Shortlisted"
	StatusSelected           CandidateStatus = "Selected"
	StatusRejected           CandidateStatus = "Rejected"
)

var allCandidateStatuses = []CandidateStatus{
	StatusApplied,
	StatusTaskPending,
	StatusTaskSubmitted,
	StatusUnderReview,
	StatusInterviewEligible,
	StatusInterviewScheduled,
	StatusInterviewCompleted,
	StatusShortlisted,
	StatusSelected,
	StatusRejected,
}

// ParseCandidateStatus converts a raw string to a CandidateStatus, returning
// an error for unknown values.
func ParseCandidateStatus(s string) (CandidateStatus, error) {
	for _, st := range allCandidateStatuses {
		if CandidateStatus(s) == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown candidate status %q", s)
}

// IsTerminal reports whether no outgoing transitions are defined for the
// status.
func (s CandidateStatus) IsTerminal() bool {
	return s == StatusSelected || s == StatusRejected
}

// Event names every action the transition table understands.
type Event string

const (
	EventApply                 Event = "Apply"
	EventApproveForTask        Event = "ApproveForTask"
	EventSubmitTask            Event = "SubmitTask"
	EventBeginReview           Event = "BeginReview"
	EventAddLinks              Event = "AddLinks"
	EventEvaluate              Event = "Evaluate"
	EventScheduleInterview     Event = "ScheduleInterview"
	EventRescheduleInterview   Event = "RescheduleInterview"
	EventCompleteInterview     Event = "CompleteInterview"
	EventScheduleNextInterview Event = "ScheduleNextInterview"
	EventShortlist             Event = "Shortlist"
	EventFinalizeSelected      Event = "FinalizeSelected"
	EventFinalizeRejected      Event = "FinalizeRejected"
	EventReject                Event = "Reject"

	// Talent-pool events.
	EventActivate   Event = "Activate"
	EventDeactivate Event = "Deactivate"
)

// ParseEvent converts a raw string to an Event, returning an error for
// unknown values.
func ParseEvent(s string) (Event, error) {
	switch e := Event(s); e {
	case EventApply, EventApproveForTask, EventSubmitTask, EventBeginReview,
		EventAddLinks, EventEvaluate, EventScheduleInterview,
		EventRescheduleInterview, EventCompleteInterview,
		EventScheduleNextInterview, EventShortlist, EventFinalizeSelected,
		EventFinalizeRejected, EventReject, EventActivate, EventDeactivate:
		return e, nil
	}
	return "", fmt.Errorf("unknown event %q", s)
}
