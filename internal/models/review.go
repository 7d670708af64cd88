package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type HelperReview struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID     uuid.UUID `json:"task_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_task_reviewer"`
	HelperID   uuid.UUID `json:"helper_id" gorm:"type:uuid;not null;index"`
	ReviewerID uuid.UUID `json:"reviewer_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_task_reviewer"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`

	Reviewer *Profile `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
}
