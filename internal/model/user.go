package model

import (
	"time"

	"github.com/google/uuid"
)

// Имена бейджей - стабильные ключи справочника, по ним идет поиск при награждении
const (
	BadgeFirstTaskCompleted = "First Task Completed"
	BadgeFiveTasksCompleted = "5 Tasks Completed"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Badges    []Badge   `json:"badges"`
}

func (u User) HasBadge(badgeID uuid.UUID) bool {
	for _, b := range u.Badges {
		if b.ID == badgeID {
			return true
		}
	}
	return false
}

type Badge struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}
