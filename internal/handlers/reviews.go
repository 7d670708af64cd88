package handlers

import (
	"net/http"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/middleware"
	"househand/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type ReviewHandler struct {
	db            *gorm.DB
	reviewService services.ReviewService
}

func NewReviewHandler(db *gorm.DB, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{db: db, reviewService: reviewService}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authentication("authentication required"))
		return
	}

	taskID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("invalid task id"))
		return
	}

	var input services.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.CreateReview(h.db, session, taskID, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) GetHelperReviews(c *gin.Context) {
	helperID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("invalid helper id"))
		return
	}

	rating, err := h.reviewService.GetHelperReviews(h.db, helperID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}
