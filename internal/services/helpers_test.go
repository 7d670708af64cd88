package services_test

import (
	"sync"
	"testing"

	"househand/backend/internal/middleware"
	"househand/backend/internal/models"
	"househand/backend/internal/repositories"
	"househand/backend/internal/services"

	"github.com/gofrs/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := repositories.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// fakeQueue records enqueued notification jobs in memory.
type fakeQueue struct {
	mu   sync.Mutex
	jobs []services.NotificationJob
}

func (q *fakeQueue) EnqueueNotification(job services.NotificationJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) byType(jobType string) []services.NotificationJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []services.NotificationJob
	for _, j := range q.jobs {
		if j.Type == jobType {
			out = append(out, j)
		}
	}
	return out
}

func newClientSession() middleware.Session {
	return middleware.Session{UserID: uuid.Must(uuid.NewV4()), UserType: models.UserTypeClient}
}

func newHelperSession() middleware.Session {
	return middleware.Session{UserID: uuid.Must(uuid.NewV4()), UserType: models.UserTypeHelper}
}

func createTask(t *testing.T, db *gorm.DB, clientID uuid.UUID, status string) *models.Task {
	task := &models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		ClientID:    clientID,
		Title:       "Mow the lawn",
		Description: "Front and back yard",
		Location:    "Kigali",
		BudgetMin:   5000,
		BudgetMax:   10000,
		Status:      status,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	return task
}

func createBid(t *testing.T, db *gorm.DB, taskID, helperID uuid.UUID, price float64) *models.Bid {
	bid := &models.Bid{
		ID:            uuid.Must(uuid.NewV4()),
		TaskID:        taskID,
		HelperID:      helperID,
		Message:       "I can do this",
		ProposedPrice: price,
		Status:        models.BidStatusSubmitted,
	}
	if err := db.Create(bid).Error; err != nil {
		t.Fatalf("Failed to create bid: %v", err)
	}
	return bid
}
