package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id uuid.UUID) (model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByAssigneeAndStatus(ctx context.Context, assigneeID uuid.UUID, status model.TaskStatus) (int64, error)
	SaveIdempotencyKey(ctx context.Context, key string, resourceID uuid.UUID) error
	GetIdempotencyKey(ctx context.Context, key string) (uuid.UUID, error)
}

// UserRepository отдает пользователя сразу с его бейджами
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	AddBadge(ctx context.Context, userID, badgeID uuid.UUID) error
}

type ProjectRepository interface {
	Create(ctx context.Context, p model.Project) (model.Project, error)
	Get(ctx context.Context, id uuid.UUID) (model.Project, error)
	UpdateNotificationSettings(ctx context.Context, id uuid.UUID, webhookURL *string, events []string) (model.Project, error)
	AddMembers(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID) (model.Project, error)
}

type BadgeRepository interface {
	GetByName(ctx context.Context, name string) (model.Badge, error)
	Seed(ctx context.Context) error
}
