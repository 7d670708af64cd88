package services

import (
	"log"
	"time"

	"househand/backend/internal/cache"
	"househand/backend/internal/middleware"
	"househand/backend/internal/models"

	"gorm.io/gorm"
)

const viewCacheTTL = 2 * time.Minute

// CachedViewService is a cache-aside decorator over the view composer.
// The UI re-fetches after every mutation, so TTLs stay short and
// mutation paths clear the task-view pattern.
type CachedViewService struct {
	views ViewService
	cache *cache.RedisCache
}

func NewCachedViewService(views ViewService, cacheInstance *cache.RedisCache) *CachedViewService {
	return &CachedViewService{views: views, cache: cacheInstance}
}

func (s *CachedViewService) LoadTasksForView(db *gorm.DB, session middleware.Session, view string, filter TaskFilter) ([]models.Task, error) {
	if s.cache == nil {
		return s.views.LoadTasksForView(db, session, view, filter)
	}

	key := cache.ViewKey(session.UserID.String(), session.UserType, view, filter.Signature())

	var cached []models.Task
	if err := s.cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	tasks, err := s.views.LoadTasksForView(db, session, view, filter)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, tasks, viewCacheTTL); err != nil {
		log.Printf("caching %s view: %v", view, err)
	}

	return tasks, nil
}

// InvalidateTaskViews clears every cached listing; called after task
// and bid mutations.
func (s *CachedViewService) InvalidateTaskViews() {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(cache.TaskViewsPattern); err != nil {
		log.Printf("invalidating task views: %v", err)
	}
}
