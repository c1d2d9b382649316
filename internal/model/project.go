package model

import (
	"time"

	"github.com/google/uuid"
)

// Имена событий совпадают со значениями в настройках уведомлений проекта
const (
	EventTaskCreated       = "Task Created"
	EventTaskStatusChanged = "Task Status Changed"
)

type Project struct {
	ID                 uuid.UUID   `json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	WebhookURL         *string     `json:"webhookUrl"`
	NotificationEvents []string    `json:"notificationEvents"`
	Members            []uuid.UUID `json:"members"`
	CreatedAt          time.Time   `json:"createdAt"`
}

func (p Project) SubscribedTo(event string) bool {
	for _, e := range p.NotificationEvents {
		if e == event {
			return true
		}
	}
	return false
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type NotificationSettingsRequest struct {
	WebhookURL         *string  `json:"webhookUrl"`
	NotificationEvents []string `json:"notificationEvents"`
}

type AddMembersRequest struct {
	UserIDs []uuid.UUID `json:"userIds"`
}
