package validation

// Rule identifies a single validation rule.
type Rule string

const (
	RuleEndDateInPast               Rule = "END_DATE_IN_PAST"
	RuleSprintChangeAfterCompletion Rule = "SPRINT_CHANGE_AFTER_COMPLETION"
	RuleSprintEnded                 Rule = "SPRINT_ENDED"
	RuleBacklogMustBeNotStarted     Rule = "BACKLOG_MUST_BE_NOT_STARTED"
	RuleStartedWhileNotStarted      Rule = "STARTED_WHILE_NOT_STARTED"
	RuleCompletedWhileNotDone       Rule = "COMPLETED_WHILE_NOT_DONE"
	RuleDoneWithoutCompletedDate    Rule = "DONE_WITHOUT_COMPLETED_DATE"
)

// NonFieldKey groups errors that span several fields.
const NonFieldKey = "non_field_errors"

// Error is a rejected proposal. Field is empty for rules spanning several
// fields; Fields always lists every field involved.
type Error struct {
	Rule    Rule
	Field   string
	Fields  []string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error carrying the same rule.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Rule == e.Rule
}

// Details returns the message keyed by field for API responses.
func (e *Error) Details() map[string][]string {
	key := e.Field
	if key == "" {
		key = NonFieldKey
	}
	return map[string][]string{key: {e.Message}}
}

var (
	ErrEndDateInPast = &Error{
		Rule:    RuleEndDateInPast,
		Field:   "end",
		Fields:  []string{"end"},
		Message: "End date cannot be in the past.",
	}
	ErrSprintChangeAfterCompletion = &Error{
		Rule:    RuleSprintChangeAfterCompletion,
		Field:   "sprint",
		Fields:  []string{"sprint", "status"},
		Message: "Cannot change the sprint of a completed task.",
	}
	ErrSprintEnded = &Error{
		Rule:    RuleSprintEnded,
		Field:   "sprint",
		Fields:  []string{"sprint"},
		Message: "Cannot assign tasks to past sprints.",
	}
	ErrBacklogMustBeNotStarted = &Error{
		Rule:    RuleBacklogMustBeNotStarted,
		Fields:  []string{"sprint", "status"},
		Message: `Backlog tasks must have "Not Started" status.`,
	}
	ErrStartedWhileNotStarted = &Error{
		Rule:    RuleStartedWhileNotStarted,
		Fields:  []string{"started", "status"},
		Message: `"Not Started" tasks cannot have a start date.`,
	}
	ErrCompletedWhileNotDone = &Error{
		Rule:    RuleCompletedWhileNotDone,
		Fields:  []string{"completed", "status"},
		Message: "Completed date cannot be set for incomplete tasks.",
	}
	ErrDoneWithoutCompletedDate = &Error{
		Rule:    RuleDoneWithoutCompletedDate,
		Fields:  []string{"status", "completed"},
		Message: "Completed tasks must have a completed date.",
	}
)
