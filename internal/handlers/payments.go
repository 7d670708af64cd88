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

type PaymentHandler struct {
	db             *gorm.DB
	paymentService services.PaymentService
}

func NewPaymentHandler(db *gorm.DB, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{db: db, paymentService: paymentService}
}

type recordPaymentRequest struct {
	Amount float64 `json:"amount"`
}

func (h *PaymentHandler) RecordPayment(c *gin.Context) {
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

	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.paymentService.RecordPayment(h.db, session, taskID, req.Amount); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment recorded"})
}

// ListUnpaidTasks serves the client's completed-but-unpaid listing.
func (h *PaymentHandler) ListUnpaidTasks(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authentication("authentication required"))
		return
	}

	tasks, err := h.paymentService.ListUnpaidTasks(h.db, session)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
}
