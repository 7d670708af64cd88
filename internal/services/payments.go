package services

import (
	"fmt"
	"log"
	"time"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/cache"
	"househand/backend/internal/middleware"
	"househand/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const unpaidCacheTTL = 2 * time.Minute

type PaymentService interface {
	RecordPayment(db *gorm.DB, session middleware.Session, taskID uuid.UUID, amount float64) error
	ListUnpaidTasks(db *gorm.DB, session middleware.Session) ([]models.Task, error)
}

type PaymentServiceImpl struct {
	cache *cache.RedisCache
	queue NotificationQueue
}

func NewPaymentService(cacheInstance *cache.RedisCache, queue NotificationQueue) *PaymentServiceImpl {
	return &PaymentServiceImpl{cache: cacheInstance, queue: queue}
}

// RecordPayment marks the caller's task as paid with the given amount.
// It runs after the external payment action has already happened, so
// it only records the outcome; the task's completion status is the
// caller's responsibility to have checked beforehand.
func (s *PaymentServiceImpl) RecordPayment(db *gorm.DB, session middleware.Session, taskID uuid.UUID, amount float64) error {
	if amount <= 0 {
		return apperrors.Validation("payment amount must be positive")
	}

	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFound("task %s not found", taskID)
		}
		log.Printf("loading task %s: %v", taskID, err)
		return apperrors.Storage("loading task", err)
	}

	if task.ClientID != session.UserID {
		return apperrors.Authorization("only the task owner may record a payment")
	}

	if task.PaymentStatus {
		return apperrors.Conflict("task is already paid")
	}

	now := time.Now()
	err := db.Model(&models.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"payment_status": true,
			"payment_amount": amount,
			"payment_date":   now,
		}).Error
	if err != nil {
		log.Printf("recording payment for task %s: %v", taskID, err)
		return apperrors.Storage("recording payment", err)
	}

	s.invalidate(session.UserID)

	if s.queue != nil && task.SelectedHelperID != nil {
		job := NotificationJob{
			UserID:  *task.SelectedHelperID,
			TaskID:  task.ID,
			Type:    models.NotificationPaymentMade,
			Message: fmt.Sprintf("Payment of %.0f recorded for %q", amount, task.Title),
		}
		if err := s.queue.EnqueueNotification(job); err != nil {
			log.Printf("enqueueing payment notification: %v", err)
		}
	}

	return nil
}

// ListUnpaidTasks returns the caller's completed tasks that have no
// payment recorded yet, cache-aside on the per-client unpaid key that
// RecordPayment clears.
func (s *PaymentServiceImpl) ListUnpaidTasks(db *gorm.DB, session middleware.Session) ([]models.Task, error) {
	key := cache.UnpaidTasksKey(session.UserID.String())

	if s.cache != nil {
		var cached []models.Task
		if err := s.cache.Get(key, &cached); err == nil {
			return cached, nil
		}
	}

	var tasks []models.Task
	err := db.Model(&models.Task{}).
		Preload("Client").
		Where("client_id = ? AND status = ? AND payment_status = ?",
			session.UserID, models.TaskStatusCompleted, false).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		log.Printf("listing unpaid tasks for %s: %v", session.UserID, err)
		return nil, apperrors.Storage("listing unpaid tasks", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(key, tasks, unpaidCacheTTL); err != nil {
			log.Printf("caching unpaid tasks: %v", err)
		}
	}

	return tasks, nil
}

// Both the general task listings and the unpaid view go stale after a
// payment, clear them together.
func (s *PaymentServiceImpl) invalidate(clientID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(cache.TaskViewsPattern); err != nil {
		log.Printf("invalidating task views: %v", err)
	}
	if err := s.cache.Delete(cache.UnpaidTasksKey(clientID.String())); err != nil {
		log.Printf("invalidating unpaid tasks: %v", err)
	}
}
