package services

import (
	"log"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// NotificationJob is the payload handed to the background queue when a
// lifecycle event should fan out to a user.
type NotificationJob struct {
	UserID  uuid.UUID `json:"user_id"`
	TaskID  uuid.UUID `json:"task_id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
}

// NotificationQueue decouples services from the redis worker; tests
// substitute an in-memory recorder.
type NotificationQueue interface {
	EnqueueNotification(job NotificationJob) error
}

type NotificationService interface {
	ListNotifications(db *gorm.DB, userID uuid.UUID) ([]models.Notification, error)
	CreateNotification(db *gorm.DB, job NotificationJob) error
}

type NotificationServiceImpl struct{}

func NewNotificationService() *NotificationServiceImpl {
	return &NotificationServiceImpl{}
}

func (s *NotificationServiceImpl) ListNotifications(db *gorm.DB, userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		log.Printf("listing notifications for %s: %v", userID, err)
		return nil, apperrors.Storage("listing notifications", err)
	}
	return notifications, nil
}

// CreateNotification persists the job as a row; called by the worker.
func (s *NotificationServiceImpl) CreateNotification(db *gorm.DB, job NotificationJob) error {
	notification := models.Notification{
		ID:      uuid.Must(uuid.NewV4()),
		UserID:  job.UserID,
		TaskID:  job.TaskID,
		Type:    job.Type,
		Message: job.Message,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("creating notification for %s: %v", job.UserID, err)
		return apperrors.Storage("creating notification", err)
	}
	return nil
}
