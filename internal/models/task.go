package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	TaskStatusOpen       = "open"
	TaskStatusAssigned   = "assigned"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

const (
	EffortEasy   = "easy"
	EffortMedium = "medium"
	EffortHard   = "hard"
)

type Task struct {
	ID               uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	ClientID         uuid.UUID  `json:"client_id" gorm:"type:uuid;not null;index"`
	Title            string     `json:"title" gorm:"not null"`
	Description      string     `json:"description" gorm:"not null"`
	Location         string     `json:"location" gorm:"not null"`
	Category         string     `json:"category"`
	EffortLevel      *string    `json:"effort_level"`
	BudgetMin        float64    `json:"budget_min" gorm:"not null"`
	BudgetMax        float64    `json:"budget_max" gorm:"not null"`
	Status           string     `json:"status" gorm:"not null;default:'open';index"`
	SelectedHelperID *uuid.UUID `json:"selected_helper_id" gorm:"type:uuid"`
	PaymentStatus    bool       `json:"payment_status" gorm:"not null;default:false"`
	PaymentAmount    *float64   `json:"payment_amount"`
	PaymentDate      *time.Time `json:"payment_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Client *Profile `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Bids   []Bid    `json:"bids,omitempty" gorm:"foreignKey:TaskID"`
}

func (t *Task) IsTerminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusCancelled
}

// HasHelper reports whether the task is in a state that must carry an
// assigned helper.
func (t *Task) HasHelper() bool {
	switch t.Status {
	case TaskStatusAssigned, TaskStatusInProgress, TaskStatusCompleted:
		return t.SelectedHelperID != nil
	}
	return false
}

func ValidEffortLevel(level string) bool {
	switch level {
	case EffortEasy, EffortMedium, EffortHard:
		return true
	}
	return false
}
