package handlers_test

import (
	"net/http"
	"testing"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/handlers"
	"househand/backend/internal/middleware"
	"househand/backend/internal/models"
	"househand/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

func setupBidHandler(session middleware.Session) (*MockBidService, *MockTaskService, *spyInvalidator, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	bidService := &MockBidService{}
	taskService := newMockTaskService()
	invalidator := &spyInvalidator{}
	handler := handlers.NewBidHandler(nil, bidService, taskService, invalidator)

	router := gin.New()
	router.Use(sessionAs(session))
	router.POST("/tasks/:id/bids", handler.SubmitBid)
	router.DELETE("/tasks/:id/bids/:bidID", handler.WithdrawBid)
	router.POST("/tasks/:id/bids/:bidID/accept", handler.AcceptBid)
	router.POST("/tasks/:id/bids/:bidID/reject", handler.RejectBid)

	return bidService, taskService, invalidator, router
}

func openTask(taskService *MockTaskService, budgetMin, budgetMax float64) *models.Task {
	task := &models.Task{
		ID:        uuid.Must(uuid.NewV4()),
		ClientID:  uuid.Must(uuid.NewV4()),
		Title:     "Paint the shed",
		Status:    models.TaskStatusOpen,
		BudgetMin: budgetMin,
		BudgetMax: budgetMax,
	}
	taskService.tasks[task.ID] = task
	return task
}

func TestSubmitBidHandler(t *testing.T) {
	bidService, taskService, invalidator, router := setupBidHandler(helperSession())
	task := openTask(taskService, 50, 150)

	w := serve(router, jsonRequest(t, "POST", "/tasks/"+task.ID.String()+"/bids", map[string]interface{}{
		"message":        "Can start tomorrow",
		"proposed_price": 100,
	}))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	if len(bidService.actions) != 1 {
		t.Fatalf("Expected 1 bid action, got %d", len(bidService.actions))
	}
	action := bidService.actions[0]
	if action.Action != services.BidActionSubmit {
		t.Errorf("Expected submit action, got %q", action.Action)
	}
	if action.ProposedPrice != 100 {
		t.Errorf("Expected proposed price 100, got %v", action.ProposedPrice)
	}
	if invalidator.calls != 1 {
		t.Errorf("Expected cached views to be invalidated once, got %d", invalidator.calls)
	}
}

func TestSubmitBidPriceOutOfRange(t *testing.T) {
	bidService, taskService, _, router := setupBidHandler(helperSession())
	task := openTask(taskService, 50, 150)

	w := serve(router, jsonRequest(t, "POST", "/tasks/"+task.ID.String()+"/bids", map[string]interface{}{
		"message":        "Can start tomorrow",
		"proposed_price": 500,
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if len(bidService.actions) != 0 {
		t.Errorf("Expected no bid action, got %d", len(bidService.actions))
	}
}

func TestSubmitBidMissingPrice(t *testing.T) {
	_, taskService, _, router := setupBidHandler(helperSession())
	task := openTask(taskService, 50, 150)

	w := serve(router, jsonRequest(t, "POST", "/tasks/"+task.ID.String()+"/bids", map[string]interface{}{
		"message": "Can start tomorrow",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestSubmitBidUnknownTask(t *testing.T) {
	_, _, _, router := setupBidHandler(helperSession())

	w := serve(router, jsonRequest(t, "POST", "/tasks/"+uuid.Must(uuid.NewV4()).String()+"/bids", map[string]interface{}{
		"message":        "Can start tomorrow",
		"proposed_price": 100,
	}))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestWithdrawBidHandler(t *testing.T) {
	bidService, _, invalidator, router := setupBidHandler(helperSession())

	taskID := uuid.Must(uuid.NewV4())
	bidID := uuid.Must(uuid.NewV4())
	w := serve(router, jsonRequest(t, "DELETE", "/tasks/"+taskID.String()+"/bids/"+bidID.String(), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	action := bidService.actions[0]
	if action.Action != services.BidActionWithdraw {
		t.Errorf("Expected withdraw action, got %q", action.Action)
	}
	if action.BidID == nil || *action.BidID != bidID {
		t.Errorf("Expected bid id %s, got %v", bidID, action.BidID)
	}
	if invalidator.calls != 1 {
		t.Errorf("Expected cached views to be invalidated once, got %d", invalidator.calls)
	}
}

func TestAcceptBidHandler(t *testing.T) {
	bidService, _, _, router := setupBidHandler(clientSession())

	taskID := uuid.Must(uuid.NewV4())
	bidID := uuid.Must(uuid.NewV4())
	w := serve(router, jsonRequest(t, "POST", "/tasks/"+taskID.String()+"/bids/"+bidID.String()+"/accept", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if bidService.actions[0].Action != services.BidActionAccept {
		t.Errorf("Expected accept action, got %q", bidService.actions[0].Action)
	}
}

func TestAcceptBidConflictMapsTo409(t *testing.T) {
	bidService, _, invalidator, router := setupBidHandler(clientSession())
	bidService.err = apperrors.Conflict("task is no longer open")

	taskID := uuid.Must(uuid.NewV4())
	bidID := uuid.Must(uuid.NewV4())
	w := serve(router, jsonRequest(t, "POST", "/tasks/"+taskID.String()+"/bids/"+bidID.String()+"/accept", nil))

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, w.Code)
	}
	if invalidator.calls != 0 {
		t.Errorf("Expected no cache invalidation on failure, got %d", invalidator.calls)
	}
}

func TestRejectBidHandler(t *testing.T) {
	bidService, _, _, router := setupBidHandler(clientSession())

	taskID := uuid.Must(uuid.NewV4())
	bidID := uuid.Must(uuid.NewV4())
	w := serve(router, jsonRequest(t, "POST", "/tasks/"+taskID.String()+"/bids/"+bidID.String()+"/reject", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if bidService.actions[0].Action != services.BidActionReject {
		t.Errorf("Expected reject action, got %q", bidService.actions[0].Action)
	}
}

func TestBidActionBadBidID(t *testing.T) {
	bidService, _, _, router := setupBidHandler(clientSession())

	taskID := uuid.Must(uuid.NewV4())
	w := serve(router, jsonRequest(t, "POST", "/tasks/"+taskID.String()+"/bids/nope/accept", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if len(bidService.actions) != 0 {
		t.Errorf("Expected no bid action, got %d", len(bidService.actions))
	}
}
