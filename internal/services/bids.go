package services

import (
	"fmt"
	"log"
	"time"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/middleware"
	"househand/backend/internal/models"
	"househand/backend/internal/repositories"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type BidActionType string

const (
	BidActionSubmit   BidActionType = "submit"
	BidActionWithdraw BidActionType = "withdraw"
	BidActionAccept   BidActionType = "accept"
	BidActionReject   BidActionType = "reject"
)

// BidAction is one requested bid state change. BidID is required for
// withdraw, accept and reject; Message and ProposedPrice only apply to
// submit.
type BidAction struct {
	TaskID        uuid.UUID
	Action        BidActionType
	Message       string
	ProposedPrice float64
	BidID         *uuid.UUID
}

type BidService interface {
	HandleBid(db *gorm.DB, session middleware.Session, action BidAction) (*models.Bid, error)
}

type BidServiceImpl struct {
	queue NotificationQueue
}

func NewBidService(queue NotificationQueue) *BidServiceImpl {
	return &BidServiceImpl{queue: queue}
}

// HandleBid is the single entry point for all bid state changes. It
// loads the task, gates the requested action on current state and
// ownership, then issues the write. Rule violations surface before any
// write happens; persistence errors pass through unchanged.
func (s *BidServiceImpl) HandleBid(db *gorm.DB, session middleware.Session, action BidAction) (*models.Bid, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", action.TaskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("task %s not found", action.TaskID)
		}
		log.Printf("loading task %s: %v", action.TaskID, err)
		return nil, apperrors.Storage("loading task", err)
	}

	switch action.Action {
	case BidActionSubmit:
		return s.submit(db, session, &task, action)
	case BidActionWithdraw:
		return nil, s.withdraw(db, session, action)
	case BidActionAccept:
		return nil, s.accept(db, session, &task, action)
	case BidActionReject:
		return nil, s.reject(db, session, &task, action)
	default:
		return nil, apperrors.Validation("unknown bid action %q", action.Action)
	}
}

func (s *BidServiceImpl) submit(db *gorm.DB, session middleware.Session, task *models.Task, action BidAction) (*models.Bid, error) {
	if task.Status != models.TaskStatusOpen {
		return nil, apperrors.Conflict("task is no longer accepting bids")
	}

	bid := models.Bid{
		ID:            uuid.Must(uuid.NewV4()),
		TaskID:        task.ID,
		HelperID:      session.UserID,
		Message:       action.Message,
		ProposedPrice: action.ProposedPrice,
		Status:        models.BidStatusSubmitted,
	}

	if err := db.Create(&bid).Error; err != nil {
		log.Printf("submitting bid on task %s: %v", task.ID, err)
		return nil, apperrors.Storage("submitting bid", err)
	}

	s.notify(NotificationJob{
		UserID:  task.ClientID,
		TaskID:  task.ID,
		Type:    models.NotificationBidReceived,
		Message: fmt.Sprintf("New bid of %.0f on %q", bid.ProposedPrice, task.Title),
	})

	return &bid, nil
}

func (s *BidServiceImpl) withdraw(db *gorm.DB, session middleware.Session, action BidAction) error {
	if action.BidID == nil {
		return apperrors.Validation("bid id is required to withdraw")
	}

	// Ownership lives in the WHERE clause: a helper can only delete
	// their own bid, anything else matches zero rows.
	res := db.Where("id = ? AND helper_id = ? AND status = ?",
		action.BidID, session.UserID, models.BidStatusSubmitted).
		Delete(&models.Bid{})
	if res.Error != nil {
		log.Printf("withdrawing bid %s: %v", action.BidID, res.Error)
		return apperrors.Storage("withdrawing bid", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("no open bid of yours matches %s", action.BidID)
	}

	return nil
}

func (s *BidServiceImpl) accept(db *gorm.DB, session middleware.Session, task *models.Task, action BidAction) error {
	if action.BidID == nil {
		return apperrors.Validation("bid id is required to accept")
	}
	if task.ClientID != session.UserID {
		return apperrors.Authorization("only the task owner may accept a bid")
	}

	var bid models.Bid
	if err := db.First(&bid, "id = ?", action.BidID).Error; err != nil && err != gorm.ErrRecordNotFound {
		log.Printf("loading bid %s: %v", action.BidID, err)
		return apperrors.Storage("loading bid", err)
	}

	if err := repositories.AcceptBid(db, task.ID, *action.BidID); err != nil {
		return err
	}

	s.notify(NotificationJob{
		UserID:  bid.HelperID,
		TaskID:  task.ID,
		Type:    models.NotificationBidAccepted,
		Message: fmt.Sprintf("Your bid on %q was accepted", task.Title),
	})

	return nil
}

func (s *BidServiceImpl) reject(db *gorm.DB, session middleware.Session, task *models.Task, action BidAction) error {
	if action.BidID == nil {
		return apperrors.Validation("bid id is required to reject")
	}
	if task.ClientID != session.UserID {
		return apperrors.Authorization("only the task owner may reject a bid")
	}

	now := time.Now()
	res := db.Model(&models.Bid{}).
		Where("id = ? AND task_id = ? AND status = ?",
			action.BidID, task.ID, models.BidStatusSubmitted).
		Updates(map[string]interface{}{
			"status":      models.BidStatusRejected,
			"rejected_at": now,
		})
	if res.Error != nil {
		log.Printf("rejecting bid %s: %v", action.BidID, res.Error)
		return apperrors.Storage("rejecting bid", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("no open bid matches %s on this task", action.BidID)
	}

	var bid models.Bid
	if err := db.First(&bid, "id = ?", action.BidID).Error; err == nil {
		s.notify(NotificationJob{
			UserID:  bid.HelperID,
			TaskID:  task.ID,
			Type:    models.NotificationBidRejected,
			Message: fmt.Sprintf("Your bid on %q was declined", task.Title),
		})
	}

	return nil
}

// notify enqueues best-effort: a queue failure is logged, never
// surfaced, so the state change that triggered it still stands.
func (s *BidServiceImpl) notify(job NotificationJob) {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueNotification(job); err != nil {
		log.Printf("enqueueing notification: %v", err)
	}
}
