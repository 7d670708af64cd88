package handlers

import (
	"net/http"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/middleware"
	"househand/backend/internal/services"
	"househand/backend/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type BidHandler struct {
	db          *gorm.DB
	bidService  services.BidService
	taskService services.TaskService
	invalidator TaskViewInvalidator
}

func NewBidHandler(db *gorm.DB, bidService services.BidService, taskService services.TaskService, invalidator TaskViewInvalidator) *BidHandler {
	return &BidHandler{
		db:          db,
		bidService:  bidService,
		taskService: taskService,
		invalidator: invalidator,
	}
}

type submitBidRequest struct {
	Message       string   `json:"message"`
	ProposedPrice *float64 `json:"proposed_price"`
}

func (h *BidHandler) SubmitBid(c *gin.Context) {
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

	var req submitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Price bounds depend on the task's budget range, so the task is
	// loaded before the submit is attempted.
	task, err := h.taskService.GetTaskByID(h.db, taskID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := validation.ValidateBid(validation.BidInput{
		Message:       req.Message,
		ProposedPrice: req.ProposedPrice,
	}, task); err != nil {
		apperrors.Respond(c, err)
		return
	}

	bid, err := h.bidService.HandleBid(h.db, session, services.BidAction{
		TaskID:        taskID,
		Action:        services.BidActionSubmit,
		Message:       req.Message,
		ProposedPrice: *req.ProposedPrice,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.invalidate()
	c.JSON(http.StatusCreated, bid)
}

func (h *BidHandler) WithdrawBid(c *gin.Context) {
	h.act(c, services.BidActionWithdraw, http.StatusOK, "bid withdrawn")
}

func (h *BidHandler) AcceptBid(c *gin.Context) {
	h.act(c, services.BidActionAccept, http.StatusOK, "bid accepted")
}

func (h *BidHandler) RejectBid(c *gin.Context) {
	h.act(c, services.BidActionReject, http.StatusOK, "bid rejected")
}

// act handles the three bid actions that address an existing bid by id.
func (h *BidHandler) act(c *gin.Context, action services.BidActionType, status int, message string) {
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

	bidID, err := uuid.FromString(c.Param("bidID"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("invalid bid id"))
		return
	}

	if _, err := h.bidService.HandleBid(h.db, session, services.BidAction{
		TaskID: taskID,
		Action: action,
		BidID:  &bidID,
	}); err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.invalidate()
	c.JSON(status, gin.H{"message": message})
}

func (h *BidHandler) invalidate() {
	if h.invalidator != nil {
		h.invalidator.InvalidateTaskViews()
	}
}
