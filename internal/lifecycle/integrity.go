package lifecycle

import "fmt"

// CheckIntegrity verifies that the persisted status is a valid projection of
// the candidate's task submission, evaluation, interviews and final
// selection. A non-nil result means the record was mutated out-of-band or
// corrupted; the caller must refuse further transitions on the entity until
// it is manually reconciled.
func CheckIntegrity(c Candidate) error {
	if _, err := ParseCandidateStatus(string(c.Status)); err != nil {
		return &IntegrityError{Message: err.Error()}
	}

	open := 0
	for i := range c.Interviews {
		if !c.Interviews[i].Result.IsTerminal() {
			open++
		}
	}
	if open > 1 {
		return integrityf("candidate %s has %d open interviews", c.DisplayID, open)
	}

	switch c.Status {
	case StatusApplied, StatusTaskPending:
		if c.TaskSubmission != nil {
			return integrityf("candidate %s is %s but already has a task submission", c.DisplayID, c.Status)
		}
	case StatusTaskSubmitted, StatusUnderReview:
		if c.TaskSubmission == nil || len(c.TaskSubmission.Links) == 0 {
			return integrityf("candidate %s is %s without task links", c.DisplayID, c.Status)
		}
	case StatusInterviewEligible:
		if c.Evaluation == nil {
			return integrityf("candidate %s is %s without an evaluation", c.DisplayID, c.Status)
		}
	case StatusInterviewScheduled:
		if c.OpenInterview() == nil {
			return integrityf("candidate %s is %s without an open interview", c.DisplayID, c.Status)
		}
	case StatusInterviewCompleted:
		if len(c.Interviews) == 0 {
			return integrityf("candidate %s is %s without interviews", c.DisplayID, c.Status)
		}
		if c.OpenInterview() != nil {
			return integrityf("candidate %s is %s with an open interview", c.DisplayID, c.Status)
		}
	case StatusShortlisted:
		if !c.HasPassedInterview() {
			return integrityf("candidate %s is %s without a passed interview", c.DisplayID, c.Status)
		}
	case StatusSelected:
		if c.FinalSelection == nil || !c.FinalSelection.Selected {
			return integrityf("candidate %s is %s without a matching final selection", c.DisplayID, c.Status)
		}
	case StatusRejected:
		// Reached by evaluation, finalization or the administrative
		// override; a final selection record is optional but must not claim
		// the candidate was selected.
		if c.FinalSelection != nil && c.FinalSelection.Selected {
			return integrityf("candidate %s is %s but the final selection says selected", c.DisplayID, c.Status)
		}
	}
	return nil
}

func integrityf(format string, args ...any) error {
	return &IntegrityError{Message: fmt.Sprintf(format, args...)}
}
