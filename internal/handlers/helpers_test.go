package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/middleware"
	"househand/backend/internal/models"
	"househand/backend/internal/services"
	"househand/backend/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// sessionAs injects an authenticated caller the way SessionMiddleware
// would, without minting a real token.
func sessionAs(s middleware.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetSession(c, s)
		c.Next()
	}
}

func clientSession() middleware.Session {
	return middleware.Session{UserID: uuid.Must(uuid.NewV4()), UserType: "client"}
}

func helperSession() middleware.Session {
	return middleware.Session{UserID: uuid.Must(uuid.NewV4()), UserType: "helper"}
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type MockTaskService struct {
	err          error
	tasks        map[uuid.UUID]*models.Task
	created      []validation.TaskInput
	statusCalls  []string
	statusTaskID uuid.UUID
}

func newMockTaskService() *MockTaskService {
	return &MockTaskService{tasks: make(map[uuid.UUID]*models.Task)}
}

func (m *MockTaskService) CreateTask(db *gorm.DB, session middleware.Session, input validation.TaskInput) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	if err := validation.ValidateTask(input); err != nil {
		return nil, err
	}
	m.created = append(m.created, input)
	task := &models.Task{
		ID:       uuid.Must(uuid.NewV4()),
		ClientID: session.UserID,
		Title:    input.Title,
		Status:   models.TaskStatusOpen,
	}
	m.tasks[task.ID] = task
	return task, nil
}

func (m *MockTaskService) GetTaskByID(db *gorm.DB, id uuid.UUID) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	task, ok := m.tasks[id]
	if !ok {
		return nil, apperrors.NotFound("task %s not found", id)
	}
	return task, nil
}

func (m *MockTaskService) UpdateTaskStatus(db *gorm.DB, session middleware.Session, taskID uuid.UUID, newStatus string) error {
	if m.err != nil {
		return m.err
	}
	m.statusTaskID = taskID
	m.statusCalls = append(m.statusCalls, newStatus)
	return nil
}

type MockViewService struct {
	err        error
	tasks      []models.Task
	lastView   string
	lastFilter services.TaskFilter
}

func (m *MockViewService) LoadTasksForView(db *gorm.DB, session middleware.Session, view string, filter services.TaskFilter) ([]models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastView = view
	m.lastFilter = filter
	return m.tasks, nil
}

type MockBidService struct {
	err     error
	actions []services.BidAction
}

func (m *MockBidService) HandleBid(db *gorm.DB, session middleware.Session, action services.BidAction) (*models.Bid, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.actions = append(m.actions, action)
	return &models.Bid{
		ID:            uuid.Must(uuid.NewV4()),
		TaskID:        action.TaskID,
		HelperID:      session.UserID,
		ProposedPrice: action.ProposedPrice,
		Status:        models.BidStatusSubmitted,
	}, nil
}

type MockPaymentService struct {
	err     error
	taskID  uuid.UUID
	amounts []float64
	unpaid  []models.Task
}

func (m *MockPaymentService) RecordPayment(db *gorm.DB, session middleware.Session, taskID uuid.UUID, amount float64) error {
	if m.err != nil {
		return m.err
	}
	m.taskID = taskID
	m.amounts = append(m.amounts, amount)
	return nil
}

func (m *MockPaymentService) ListUnpaidTasks(db *gorm.DB, session middleware.Session) ([]models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.unpaid, nil
}

type spyInvalidator struct {
	calls int
}

func (s *spyInvalidator) InvalidateTaskViews() { s.calls++ }
