package validation

import (
	"strings"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/models"
)

// TaskInput carries the user-supplied task fields checked before any
// write. Budget values are pointers so a missing field is
// distinguishable from zero.
type TaskInput struct {
	Title       string
	Description string
	Location    string
	Category    string
	EffortLevel *string
	BudgetMin   *float64
	BudgetMax   *float64
}

type BidInput struct {
	Message       string
	ProposedPrice *float64
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateTask checks task fields and returns nil when the task may be
// persisted. Error messages are surfaced to the user unchanged.
func ValidateTask(in TaskInput) error {
	if blank(in.Title) {
		return apperrors.Validation("title is required")
	}
	if blank(in.Description) {
		return apperrors.Validation("description is required")
	}
	if blank(in.Location) {
		return apperrors.Validation("location is required")
	}
	if in.BudgetMin == nil || in.BudgetMax == nil {
		return apperrors.Validation("budget range is required")
	}
	if *in.BudgetMin < 0 || *in.BudgetMax < 0 {
		return apperrors.Validation("budget values must not be negative")
	}
	if *in.BudgetMin > *in.BudgetMax {
		return apperrors.Validation("minimum budget cannot exceed maximum budget")
	}
	if in.EffortLevel != nil && !models.ValidEffortLevel(*in.EffortLevel) {
		return apperrors.Validation("effort level must be easy, medium or hard")
	}
	return nil
}

// ValidateBid checks a bid against its owning task's budget range.
func ValidateBid(in BidInput, task *models.Task) error {
	if blank(in.Message) {
		return apperrors.Validation("message is required")
	}
	if in.ProposedPrice == nil {
		return apperrors.Validation("proposed price is required")
	}
	if *in.ProposedPrice < task.BudgetMin || *in.ProposedPrice > task.BudgetMax {
		return apperrors.Validation("proposed price must be between %.0f and %.0f",
			task.BudgetMin, task.BudgetMax)
	}
	return nil
}
