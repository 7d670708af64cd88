package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"househand/backend/internal/services"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// JobQueue is the producer side of the worker. It implements
// services.NotificationQueue so lifecycle services can enqueue without
// knowing about redis.
type JobQueue struct {
	client *redis.Client
}

func NewJobQueue(client *redis.Client) *JobQueue {
	return &JobQueue{client: client}
}

func (q *JobQueue) EnqueueNotification(notification services.NotificationJob) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	return q.enqueue(QueueNotifications, JobTypeNotification, payload)
}

func (q *JobQueue) enqueue(queue string, jobType JobType, payload json.RawMessage) error {
	job := &Job{
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		Type:      jobType,
		Payload:   payload,
		Attempts:  0,
		MaxTries:  3,
		CreatedAt: time.Now(),
		ProcessAt: time.Now(),
	}

	jobData, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return q.client.RPush(ctx, queue, jobData).Err()
}

func (q *JobQueue) QueueSize(queue string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return q.client.LLen(ctx, queue).Result()
}

// RegisterNotificationHandler wires the consumer side: notification
// jobs become rows via the notification service.
func RegisterNotificationHandler(w *Worker, db *gorm.DB, notifications services.NotificationService) {
	w.RegisterHandler(JobTypeNotification, func(ctx context.Context, job *Job) error {
		var payload services.NotificationJob
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return fmt.Errorf("failed to unmarshal notification payload: %w", err)
		}
		return notifications.CreateNotification(db.WithContext(ctx), payload)
	})

	// Email delivery is not hooked up to a provider yet; the job is
	// acknowledged so it does not clog the retry queue.
	w.RegisterHandler(JobTypeEmail, func(ctx context.Context, job *Job) error {
		log.Printf("email job %s acknowledged without delivery", job.ID)
		return nil
	})
}
