package validation

import "github.com/yukikurage/scrum-board-api/internal/models"

// ValidateSprint checks a proposed sprint. current is nil on creation.
// The end date is only checked when the sprint is new or the end date changes.
func (v *Validator) ValidateSprint(current, proposed *models.Sprint) error {
	changed := current == nil || current.End != proposed.End
	if changed && proposed.End.Before(v.Today()) {
		return ErrEndDateInPast
	}
	return nil
}
