package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kanban-board-api/internal/cache"
	"kanban-board-api/internal/models"
	"kanban-board-api/internal/report"
)

const labelTTL = 5 * time.Minute

// UserLabelResolver implements report.LabelResolver on top of gorm, with a
// short-lived cache in front so repeated report generation does not re-read
// the users table. Invalidate must be called whenever a user record changes.
type UserLabelResolver struct {
	db     *gorm.DB
	labels *cache.TTLCache[string, string]
}

func NewUserLabelResolver(db *gorm.DB) *UserLabelResolver {
	return &UserLabelResolver{
		db:     db,
		labels: cache.NewTTLCache[string, string](),
	}
}

// Labels resolves user ids to display labels (displayName falling back to
// username). Ids with no matching user are absent from the result.
func (r *UserLabelResolver) Labels(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	var misses []string
	for _, id := range ids {
		if label, ok := r.labels.Get(id); ok {
			out[id] = label
		} else {
			misses = append(misses, id)
		}
	}
	if len(misses) == 0 {
		return out, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", misses).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		label := u.Label()
		out[u.ID] = label
		r.labels.Set(u.ID, label, labelTTL)
	}
	return out, nil
}

// Invalidate drops a cached label after a user write.
func (r *UserLabelResolver) Invalidate(userID string) {
	r.labels.Delete(userID)
}

var _ report.LabelResolver = (*UserLabelResolver)(nil)
