package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	NotificationBidReceived  = "bid_received"
	NotificationBidAccepted  = "bid_accepted"
	NotificationBidRejected  = "bid_rejected"
	NotificationPaymentMade  = "payment_made"
	NotificationTaskStarted  = "task_started"
	NotificationTaskComplete = "task_completed"
)

type Notification struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	TaskID    uuid.UUID `json:"task_id" gorm:"type:uuid;not null"`
	Type      string    `json:"type" gorm:"not null"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
