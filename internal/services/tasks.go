package services

import (
	"fmt"
	"log"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/middleware"
	"househand/backend/internal/models"
	"househand/backend/internal/validation"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskService interface {
	CreateTask(db *gorm.DB, session middleware.Session, input validation.TaskInput) (*models.Task, error)
	GetTaskByID(db *gorm.DB, id uuid.UUID) (*models.Task, error)
	UpdateTaskStatus(db *gorm.DB, session middleware.Session, taskID uuid.UUID, newStatus string) error
}

type TaskServiceImpl struct {
	queue NotificationQueue
}

func NewTaskService(queue NotificationQueue) *TaskServiceImpl {
	return &TaskServiceImpl{queue: queue}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, session middleware.Session, input validation.TaskInput) (*models.Task, error) {
	if err := validation.ValidateTask(input); err != nil {
		return nil, err
	}

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		ClientID:    session.UserID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Category:    input.Category,
		EffortLevel: input.EffortLevel,
		BudgetMin:   *input.BudgetMin,
		BudgetMax:   *input.BudgetMax,
		Status:      models.TaskStatusOpen,
	}

	if err := db.Create(&task).Error; err != nil {
		log.Printf("creating task for %s: %v", session.UserID, err)
		return nil, apperrors.Storage("creating task", err)
	}

	return &task, nil
}

func (s *TaskServiceImpl) GetTaskByID(db *gorm.DB, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := db.Preload("Client").Preload("Bids").Preload("Bids.Helper").
		First(&task, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("task %s not found", id)
		}
		log.Printf("loading task %s: %v", id, err)
		return nil, apperrors.Storage("loading task", err)
	}
	return &task, nil
}

// taskTransitions are the status edges reachable outside bid
// acceptance (open->assigned only ever happens inside the accept
// transaction).
var taskTransitions = map[string]string{
	models.TaskStatusCancelled:  models.TaskStatusOpen,
	models.TaskStatusInProgress: models.TaskStatusAssigned,
	models.TaskStatusCompleted:  models.TaskStatusInProgress,
}

// UpdateTaskStatus applies one edge of the task lifecycle. Cancelling
// is the client's move; starting is the selected helper's; completing
// is allowed to either party.
func (s *TaskServiceImpl) UpdateTaskStatus(db *gorm.DB, session middleware.Session, taskID uuid.UUID, newStatus string) error {
	requiredFrom, ok := taskTransitions[newStatus]
	if !ok {
		return apperrors.Validation("cannot move a task to status %q", newStatus)
	}

	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFound("task %s not found", taskID)
		}
		log.Printf("loading task %s: %v", taskID, err)
		return apperrors.Storage("loading task", err)
	}

	isOwner := task.ClientID == session.UserID
	isSelectedHelper := task.SelectedHelperID != nil && *task.SelectedHelperID == session.UserID

	switch newStatus {
	case models.TaskStatusCancelled:
		if !isOwner {
			return apperrors.Authorization("only the task owner may cancel it")
		}
	case models.TaskStatusInProgress:
		if !isSelectedHelper {
			return apperrors.Authorization("only the assigned helper may start the task")
		}
	case models.TaskStatusCompleted:
		if !isOwner && !isSelectedHelper {
			return apperrors.Authorization("only the task owner or assigned helper may complete it")
		}
	}

	// Conditional update keeps the transition atomic against a
	// concurrent state change.
	res := db.Model(&models.Task{}).
		Where("id = ? AND status = ?", taskID, requiredFrom).
		Update("status", newStatus)
	if res.Error != nil {
		log.Printf("updating task %s status: %v", taskID, res.Error)
		return apperrors.Storage("updating task status", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict("task cannot move from %s to %s", task.Status, newStatus)
	}

	s.notifyTransition(&task, newStatus, session)

	return nil
}

func (s *TaskServiceImpl) notifyTransition(task *models.Task, newStatus string, session middleware.Session) {
	if s.queue == nil {
		return
	}

	var job NotificationJob
	switch newStatus {
	case models.TaskStatusInProgress:
		job = NotificationJob{
			UserID:  task.ClientID,
			TaskID:  task.ID,
			Type:    models.NotificationTaskStarted,
			Message: fmt.Sprintf("Work on %q has started", task.Title),
		}
	case models.TaskStatusCompleted:
		// tell the other party
		target := task.ClientID
		if session.UserID == task.ClientID && task.SelectedHelperID != nil {
			target = *task.SelectedHelperID
		}
		job = NotificationJob{
			UserID:  target,
			TaskID:  task.ID,
			Type:    models.NotificationTaskComplete,
			Message: fmt.Sprintf("%q was marked completed", task.Title),
		}
	default:
		return
	}

	if err := s.queue.EnqueueNotification(job); err != nil {
		log.Printf("enqueueing notification: %v", err)
	}
}
