package services

import (
	"log"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/middleware"
	"househand/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type HelperRating struct {
	Reviews []models.HelperReview `json:"reviews"`
	Average float64               `json:"average_rating"`
}

type ReviewService interface {
	CreateReview(db *gorm.DB, session middleware.Session, taskID uuid.UUID, input ReviewInput) (*models.HelperReview, error)
	GetHelperReviews(db *gorm.DB, helperID uuid.UUID) (*HelperRating, error)
}

type ReviewServiceImpl struct{}

func NewReviewService() *ReviewServiceImpl {
	return &ReviewServiceImpl{}
}

// CreateReview lets the owning client review the selected helper once
// the task is completed. One review per task and reviewer.
func (s *ReviewServiceImpl) CreateReview(db *gorm.DB, session middleware.Session, taskID uuid.UUID, input ReviewInput) (*models.HelperReview, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.Validation("rating must be between 1 and 5")
	}

	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("task %s not found", taskID)
		}
		log.Printf("loading task %s: %v", taskID, err)
		return nil, apperrors.Storage("loading task", err)
	}

	if task.ClientID != session.UserID {
		return nil, apperrors.Authorization("only the task owner may leave a review")
	}
	if task.Status != models.TaskStatusCompleted {
		return nil, apperrors.Conflict("task must be completed before reviewing")
	}
	if task.SelectedHelperID == nil {
		return nil, apperrors.Conflict("task has no helper to review")
	}

	var count int64
	db.Model(&models.HelperReview{}).
		Where("task_id = ? AND reviewer_id = ?", taskID, session.UserID).
		Count(&count)
	if count > 0 {
		return nil, apperrors.Conflict("task already reviewed")
	}

	review := models.HelperReview{
		ID:         uuid.Must(uuid.NewV4()),
		TaskID:     taskID,
		HelperID:   *task.SelectedHelperID,
		ReviewerID: session.UserID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := db.Create(&review).Error; err != nil {
		log.Printf("creating review for task %s: %v", taskID, err)
		return nil, apperrors.Storage("creating review", err)
	}

	return &review, nil
}

func (s *ReviewServiceImpl) GetHelperReviews(db *gorm.DB, helperID uuid.UUID) (*HelperRating, error) {
	var reviews []models.HelperReview
	err := db.Preload("Reviewer").
		Where("helper_id = ?", helperID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		log.Printf("loading reviews for helper %s: %v", helperID, err)
		return nil, apperrors.Storage("loading reviews", err)
	}

	rating := &HelperRating{Reviews: reviews}
	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		rating.Average = float64(total) / float64(len(reviews))
	}

	return rating, nil
}
