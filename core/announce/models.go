package announce

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Priorities
const (
	PriorityNormal    = "normal"
	PriorityImportant = "important"
	PriorityUrgent    = "urgent"
)

type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"` // rich text
	AuthorID  string    `json:"author_id"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	VisibleTo []string  `json:"visible_to"` // role names; empty means everyone
	Priority  string    `json:"priority" validate:"oneof=normal important urgent"`
	ExpiresAt null.Time `json:"expires_at"`
}

// VisibleToRole reports whether the announcement targets role.
func (a Announcement) VisibleToRole(role string) bool {
	if len(a.VisibleTo) == 0 {
		return true
	}
	for _, r := range a.VisibleTo {
		if r == role {
			return true
		}
	}
	return false
}
