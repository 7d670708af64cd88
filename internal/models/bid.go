package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	BidStatusSubmitted = "submitted"
	BidStatusAccepted  = "accepted"
	BidStatusRejected  = "rejected"
	BidStatusWithdrawn = "withdrawn"
)

type Bid struct {
	ID            uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID        uuid.UUID  `json:"task_id" gorm:"type:uuid;not null;index"`
	HelperID      uuid.UUID  `json:"helper_id" gorm:"type:uuid;not null;index"`
	Message       string     `json:"message" gorm:"not null"`
	ProposedPrice float64    `json:"proposed_price" gorm:"not null"`
	Status        string     `json:"status" gorm:"not null;default:'submitted'"`
	CreatedAt     time.Time  `json:"created_at"`
	RejectedAt    *time.Time `json:"rejected_at"`

	Helper *Profile `json:"helper,omitempty" gorm:"foreignKey:HelperID"`
}

// IsTerminal reports whether the bid has reached one of its final
// states. A terminal bid never transitions again.
func (b *Bid) IsTerminal() bool {
	switch b.Status {
	case BidStatusAccepted, BidStatusRejected, BidStatusWithdrawn:
		return true
	}
	return false
}
