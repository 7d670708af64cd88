package handlers

import (
	"net/http"
	"strings"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/middleware"
	"househand/backend/internal/services"
	"househand/backend/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
	viewService services.ViewService
	invalidator TaskViewInvalidator
}

// TaskViewInvalidator clears cached task listings after a mutation.
type TaskViewInvalidator interface {
	InvalidateTaskViews()
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService, viewService services.ViewService, invalidator TaskViewInvalidator) *TaskHandler {
	return &TaskHandler{
		db:          db,
		taskService: taskService,
		viewService: viewService,
		invalidator: invalidator,
	}
}

type createTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	EffortLevel *string  `json:"effort_level"`
	BudgetMin   *float64 `json:"budget_min"`
	BudgetMax   *float64 `json:"budget_max"`
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authentication("authentication required"))
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(h.db, session, validation.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		EffortLevel: req.EffortLevel,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.invalidate()
	c.JSON(http.StatusCreated, task)
}

// GetTasks serves the role-specific listings. Helpers pick a view via
// ?view= and may filter the available view with ?location= and a
// comma-separated ?effort=.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authentication("authentication required"))
		return
	}

	view := c.DefaultQuery("view", services.ViewAvailable)

	filter := services.TaskFilter{Location: c.Query("location")}
	if effort := c.Query("effort"); effort != "" {
		filter.EffortLevels = strings.Split(effort, ",")
	}

	tasks, err := h.viewService.LoadTasksForView(h.db, session, view, filter)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("invalid task id"))
		return
	}

	task, err := h.taskService.GetTaskByID(h.db, id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authentication("authentication required"))
		return
	}

	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("invalid task id"))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.taskService.UpdateTaskStatus(h.db, session, id, req.Status); err != nil {
		apperrors.Respond(c, err)
		return
	}

	h.invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "task status updated"})
}

func (h *TaskHandler) invalidate() {
	if h.invalidator != nil {
		h.invalidator.InvalidateTaskViews()
	}
}
