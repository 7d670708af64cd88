package repositories

import (
	"time"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// AcceptBid performs the multi-row accept transition as one transaction:
// the target bid becomes accepted, its task becomes assigned to the
// bid's helper, and every other submitted bid on the task is rejected.
//
// The winner of a concurrent accept race is decided by the conditional
// task update: only the transaction whose UPDATE still sees
// status='open' proceeds, the other observes zero affected rows and
// returns a conflict without touching any bid.
func AcceptBid(db *gorm.DB, taskID, bidID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var bid models.Bid
		if err := tx.Where("id = ? AND task_id = ?", bidID, taskID).First(&bid).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("bid %s not found on task %s", bidID, taskID)
			}
			return apperrors.Storage("loading bid", err)
		}

		if bid.Status != models.BidStatusSubmitted {
			return apperrors.Conflict("bid is no longer open for acceptance")
		}

		res := tx.Model(&models.Task{}).
			Where("id = ? AND status = ?", taskID, models.TaskStatusOpen).
			Updates(map[string]interface{}{
				"status":             models.TaskStatusAssigned,
				"selected_helper_id": bid.HelperID,
			})
		if res.Error != nil {
			return apperrors.Storage("assigning task", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.Conflict("task is no longer open")
		}

		if err := tx.Model(&models.Bid{}).
			Where("id = ?", bid.ID).
			Update("status", models.BidStatusAccepted).Error; err != nil {
			return apperrors.Storage("accepting bid", err)
		}

		now := time.Now()
		if err := tx.Model(&models.Bid{}).
			Where("task_id = ? AND id <> ? AND status = ?", taskID, bid.ID, models.BidStatusSubmitted).
			Updates(map[string]interface{}{
				"status":      models.BidStatusRejected,
				"rejected_at": now,
			}).Error; err != nil {
			return apperrors.Storage("rejecting competing bids", err)
		}

		return nil
	})
}
