package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/internal/repo"
)

type ProjectService struct {
	projects repo.ProjectRepository
	users    repo.UserRepository
}

func NewProjectService(projects repo.ProjectRepository, users repo.UserRepository) *ProjectService {
	return &ProjectService{
		projects: projects,
		users:    users,
	}
}

func (s *ProjectService) Create(ctx context.Context, req model.CreateProjectRequest) (model.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.Project{}, ErrValidation
	}
	return s.projects.Create(ctx, model.Project{
		Name:               req.Name,
		Description:        req.Description,
		NotificationEvents: []string{},
	})
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (model.Project, error) {
	return s.projects.Get(ctx, id)
}

func (s *ProjectService) UpdateNotificationSettings(ctx context.Context, id uuid.UUID, req model.NotificationSettingsRequest) (model.Project, error) {
	events := req.NotificationEvents
	if events == nil {
		events = []string{}
	}
	return s.projects.UpdateNotificationSettings(ctx, id, req.WebhookURL, events)
}

// AddMembers сперва разрешает все id пользователей: незнакомый id
// валит весь запрос, состав участников не меняется
func (s *ProjectService) AddMembers(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID) (model.Project, error) {
	if len(userIDs) == 0 {
		return model.Project{}, ErrValidation
	}
	for _, userID := range userIDs {
		if _, err := s.users.Get(ctx, userID); err != nil {
			return model.Project{}, err
		}
	}
	return s.projects.AddMembers(ctx, id, userIDs)
}
