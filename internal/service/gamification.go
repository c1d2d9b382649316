package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/internal/repo"
)

// Пороги проверяются независимо друг от друга: пользователь, перескочивший
// сразу на 5 завершенных задач, получает оба бейджа за один вызов
var badgeThresholds = []struct {
	count int64
	name  string
}{
	{1, model.BadgeFirstTaskCompleted},
	{5, model.BadgeFiveTasksCompleted},
}

type GamificationService struct {
	tasks  repo.TaskRepository
	users  repo.UserRepository
	badges repo.BadgeRepository
	logger *zap.Logger
}

func NewGamificationService(
	tasks repo.TaskRepository,
	users repo.UserRepository,
	badges repo.BadgeRepository,
	logger *zap.Logger,
) *GamificationService {
	return &GamificationService{
		tasks:  tasks,
		users:  users,
		badges: badges,
		logger: logger,
	}
}

func (s *GamificationService) CheckAndAwardBadges(ctx context.Context, user *model.User) error {
	completed, err := s.tasks.CountByAssigneeAndStatus(ctx, user.ID, model.StatusDone)
	if err != nil {
		return err
	}

	for _, th := range badgeThresholds {
		if completed < th.count {
			continue
		}
		if err := s.awardBadge(ctx, user, th.name); err != nil {
			return err
		}
	}
	return nil
}

// UserBadges отдает набор бейджей пользователя для ручки /users/{id}/badges
func (s *GamificationService) UserBadges(ctx context.Context, userID uuid.UUID) ([]model.Badge, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Badges, nil
}

func (s *GamificationService) awardBadge(ctx context.Context, user *model.User, badgeName string) error {
	badge, err := s.badges.GetByName(ctx, badgeName)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			// Справочник не засеян - молча пропускаем награду
			return nil
		}
		return err
	}

	if user.HasBadge(badge.ID) { // Повторный вызов не пишет в БД второй раз
		return nil
	}

	if err := s.users.AddBadge(ctx, user.ID, badge.ID); err != nil {
		return err
	}
	user.Badges = append(user.Badges, badge)

	s.logger.Info("badge awarded",
		zap.String("user_id", user.ID.String()),
		zap.String("badge", badge.Name),
	)
	return nil
}
