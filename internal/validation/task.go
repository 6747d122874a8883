package validation

import "github.com/yukikurage/scrum-board-api/internal/models"

// ValidateTask checks a proposed task. current is nil on creation. When the
// proposal references a sprint, proposed.Sprint must hold that sprint.
// Rules are evaluated in a fixed order and the first violation is returned.
func (v *Validator) ValidateTask(current, proposed *models.Task) error {
	for _, rule := range []func(current, proposed *models.Task) error{
		checkSprintChangeAfterCompletion,
		v.checkSprintEnded,
		checkBacklogStatus,
		checkStartedStatus,
		checkCompletedStatus,
		checkDoneHasCompleted,
	} {
		if err := rule(current, proposed); err != nil {
			return err
		}
	}
	return nil
}

func checkSprintChangeAfterCompletion(current, proposed *models.Task) error {
	if current == nil {
		return nil
	}
	if !sameSprint(current.SprintID, proposed.SprintID) && proposed.Status == models.TaskStatusDone {
		return ErrSprintChangeAfterCompletion
	}
	return nil
}

func (v *Validator) checkSprintEnded(_, proposed *models.Task) error {
	if proposed.SprintID == nil || proposed.Sprint == nil {
		return nil
	}
	if proposed.Sprint.End.Before(v.Today()) {
		return ErrSprintEnded
	}
	return nil
}

func checkBacklogStatus(_, proposed *models.Task) error {
	if proposed.SprintID == nil && proposed.Status != models.TaskStatusNotStarted {
		return ErrBacklogMustBeNotStarted
	}
	return nil
}

func checkStartedStatus(_, proposed *models.Task) error {
	if proposed.Started != nil && proposed.Status == models.TaskStatusNotStarted {
		return ErrStartedWhileNotStarted
	}
	return nil
}

func checkCompletedStatus(_, proposed *models.Task) error {
	if proposed.Completed != nil && proposed.Status != models.TaskStatusDone {
		return ErrCompletedWhileNotDone
	}
	return nil
}

func checkDoneHasCompleted(_, proposed *models.Task) error {
	if proposed.Status == models.TaskStatusDone && proposed.Completed == nil {
		return ErrDoneWithoutCompletedDate
	}
	return nil
}

func sameSprint(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
