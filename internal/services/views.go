package services

import (
	"fmt"
	"hash/fnv"
	"log"
	"strconv"
	"strings"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/middleware"
	"househand/backend/internal/models"

	"gorm.io/gorm"
)

const (
	ViewAvailable = "available"
	ViewMyBids    = "my_bids"
	ViewCompleted = "completed"
)

// TaskFilter is the explicit filter specification for the available
// view. Zero values mean the filter is not applied, so every valid
// combination is a plain struct literal.
type TaskFilter struct {
	Location     string
	EffortLevels []string
}

// Signature is a stable cache-key fragment for the filter combination.
// Fields are length-prefixed before hashing so values containing
// delimiter characters cannot collide with a different combination.
func (f TaskFilter) Signature() string {
	if f.Location == "" && len(f.EffortLevels) == 0 {
		return ""
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "loc:%d:%s", len(f.Location), strings.ToLower(f.Location))
	for _, effort := range f.EffortLevels {
		fmt.Fprintf(h, "eff:%d:%s", len(effort), effort)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

type ViewService interface {
	LoadTasksForView(db *gorm.DB, session middleware.Session, view string, filter TaskFilter) ([]models.Task, error)
}

type ViewServiceImpl struct{}

func NewViewService() *ViewServiceImpl {
	return &ViewServiceImpl{}
}

// LoadTasksForView composes the role-specific task listing. Every
// variant joins the owning client profile and all bids with their
// helper profiles, newest tasks first.
func (s *ViewServiceImpl) LoadTasksForView(db *gorm.DB, session middleware.Session, view string, filter TaskFilter) ([]models.Task, error) {
	query := db.Model(&models.Task{}).
		Preload("Client").
		Preload("Bids").
		Preload("Bids.Helper").
		Order("created_at DESC")

	if session.IsClient() {
		query = query.Where("client_id = ?", session.UserID)
	} else {
		switch view {
		case ViewAvailable:
			query = query.Where("status = ?", models.TaskStatusOpen)
			if filter.Location != "" {
				query = query.Where("LOWER(location) LIKE ?",
					"%"+strings.ToLower(filter.Location)+"%")
			}
			if len(filter.EffortLevels) > 0 {
				query = query.Where("effort_level IN ?", filter.EffortLevels)
			}
		case ViewMyBids:
			query = query.Where("status <> ?", models.TaskStatusCompleted).
				Where("id IN (?)", db.Model(&models.Bid{}).
					Select("task_id").
					Where("helper_id = ?", session.UserID))
		case ViewCompleted:
			query = query.Where("status = ? AND selected_helper_id = ?",
				models.TaskStatusCompleted, session.UserID)
		default:
			return nil, apperrors.Validation("unknown view %q", view)
		}
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		log.Printf("loading %s view for %s: %v", view, session.UserID, err)
		return nil, apperrors.Storage("loading task view", err)
	}

	return tasks, nil
}
