package lifecycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InterviewLocation is where the interview takes place. Online interviews
// require a meeting link.
type InterviewLocation string

const (
	LocationInPerson InterviewLocation = "In-Person"
	LocationOnline   InterviewLocation = "Online"
)

// InterviewResult records the outcome of a conducted interview. An empty
// result means scheduled, not yet conducted. Passed, Failed and No Show are
// terminal; an interview stays open until it has one of those.
type InterviewResult string

const (
	ResultPending InterviewResult = "Pending"
	ResultTaken   InterviewResult = "Taken"
	ResultPassed  InterviewResult = "Passed"
	ResultFailed  InterviewResult = "Failed"
	ResultNoShow  InterviewResult = "No Show"
)

// IsTerminal reports whether the result concludes the interview.
func (r InterviewResult) IsTerminal() bool {
	return r == ResultPassed || r == ResultFailed || r == ResultNoShow
}

// Interview is owned by exactly one candidate. Feedback and CompletedAt are
// set only together with a terminal result.
type Interview struct {
	ID            uuid.UUID
	ScheduledDate time.Time
	InterviewerID string
	Location      InterviewLocation
	MeetingLink   string
	Notes         string
	Result        InterviewResult
	Feedback      string
	CompletedAt   *time.Time
}

func (iv Interview) clone() Interview {
	out := iv
	if iv.CompletedAt != nil {
		t := *iv.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// ScheduleRequest is the payload for ScheduleInterview, ScheduleNextInterview
// and RescheduleInterview.
type ScheduleRequest struct {
	ScheduledDate time.Time
	InterviewerID string
	Location      InterviewLocation
	MeetingLink   string
	Notes         string
}

// Schedule appends a new open interview to the candidate. It enforces the
// single-open-interview invariant: scheduling fails while a prior interview
// has no terminal result. The check is scoped to the owning candidate only;
// interviewer-level double booking is not this coordinator's concern.
func Schedule(c *Candidate, req ScheduleRequest, now time.Time) (*Interview, error) {
	if open := c.OpenInterview(); open != nil {
		return nil, NewSchedulingError(ConflictingOpenInterview,
			fmt.Sprintf("interview %s is still open", open.ID))
	}
	if err := validateSlot(req, now); err != nil {
		return nil, err
	}

	iv := Interview{
		ID:            uuid.New(),
		ScheduledDate: req.ScheduledDate,
		InterviewerID: req.InterviewerID,
		Location:      req.Location,
		MeetingLink:   req.MeetingLink,
		Notes:         req.Notes,
	}
	c.Interviews = append(c.Interviews, iv)
	return &c.Interviews[len(c.Interviews)-1], nil
}

// Reschedule edits the targeted open interview in place: date, location and
// link are replaced rather than a new record created. It is only legal while
// the interview has no result.
func Reschedule(c *Candidate, interviewID uuid.UUID, req ScheduleRequest, now time.Time) (*Interview, error) {
	iv := findInterview(c, interviewID)
	if iv == nil {
		return nil, NewSchedulingError(InterviewNotFound,
			fmt.Sprintf("interview %s does not belong to candidate %s", interviewID, c.DisplayID))
	}
	if iv.Result != "" {
		return nil, NewSchedulingError(AlreadyCompleted,
			fmt.Sprintf("interview %s already has a result", interviewID))
	}
	if err := validateSlot(req, now); err != nil {
		return nil, err
	}

	iv.ScheduledDate = req.ScheduledDate
	iv.Location = req.Location
	iv.MeetingLink = req.MeetingLink
	if req.InterviewerID != "" {
		iv.InterviewerID = req.InterviewerID
	}
	if req.Notes != "" {
		iv.Notes = req.Notes
	}
	return iv, nil
}

// Complete sets a terminal result on the targeted interview. Feedback is
// optional and only ever stored together with the result.
func Complete(c *Candidate, interviewID uuid.UUID, result InterviewResult, feedback string, now time.Time) (*Interview, error) {
	iv := findInterview(c, interviewID)
	if iv == nil {
		return nil, NewSchedulingError(InterviewNotFound,
			fmt.Sprintf("interview %s does not belong to candidate %s", interviewID, c.DisplayID))
	}
	if iv.Result.IsTerminal() {
		return nil, NewSchedulingError(AlreadyCompleted,
			fmt.Sprintf("interview %s already has result %q", interviewID, iv.Result))
	}
	if !result.IsTerminal() {
		return nil, NewGuardFailed(ReasonResultInvalid,
			fmt.Sprintf("result must be one of %s, %s, %s", ResultPassed, ResultFailed, ResultNoShow))
	}

	iv.Result = result
	iv.Feedback = feedback
	completed := now
	iv.CompletedAt = &completed
	return iv, nil
}

func validateSlot(req ScheduleRequest, now time.Time) error {
	if !req.ScheduledDate.After(now) {
		return NewSchedulingError(PastDate, "scheduled date must be in the future")
	}
	if req.Location == LocationOnline && req.MeetingLink == "" {
		return NewSchedulingError(MissingMeetingLink, "meeting link is required for online interviews")
	}
	return nil
}

func findInterview(c *Candidate, id uuid.UUID) *Interview {
	for i := range c.Interviews {
		if c.Interviews[i].ID == id {
			return &c.Interviews[i]
		}
	}
	return nil
}
