package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

// Notifier - асинхронная отправка вебхука, вызов не блокирует и не падает
type Notifier interface {
	Send(webhookURL, message string)
}

type TaskService struct {
	tasks        repo.TaskRepository
	users        repo.UserRepository
	projects     repo.ProjectRepository
	gamification *GamificationService
	notifier     Notifier
	logger       *zap.Logger
}

func NewTaskService(
	tasks repo.TaskRepository,
	users repo.UserRepository,
	projects repo.ProjectRepository,
	gamification *GamificationService,
	notifier Notifier,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		tasks:        tasks,
		users:        users,
		projects:     projects,
		gamification: gamification,
		notifier:     notifier,
		logger:       logger,
	}
}

func (s *TaskService) Create(ctx context.Context, req model.CreateTaskRequest, authorID uuid.UUID, idempKey string) (model.TaskView, error) {
	if strings.TrimSpace(req.Title) == "" {
		return model.TaskView{}, ErrValidation
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return model.TaskView{}, ErrValidation
	}

	if idempKey != "" { // Обеспечение идемпотентности - если ключ с ресурсом уже существует, мы не создаем его еще раз
		if existingID, err := s.tasks.GetIdempotencyKey(ctx, idempKey); err == nil {
			if existing, err := s.tasks.Get(ctx, existingID); err == nil {
				return s.toView(ctx, existing)
			}
		}
	}

	author, err := s.users.Get(ctx, authorID)
	if err != nil {
		return model.TaskView{}, err
	}

	var project *model.Project
	if req.ProjectID != nil {
		p, err := s.projects.Get(ctx, *req.ProjectID)
		if err != nil {
			return model.TaskView{}, err
		}
		project = &p
	}

	t := model.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.StatusToDo, // Новая задача всегда стартует с TO_DO
		Priority:    model.PriorityMedium,
		DueDate:     req.DueDate,
		AuthorID:    author.ID,
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if project != nil {
		t.ProjectID = &project.ID
	}

	created, err := s.tasks.Create(ctx, t)
	if err != nil {
		return model.TaskView{}, err
	}

	if idempKey != "" {
		s.tasks.SaveIdempotencyKey(ctx, idempKey, created.ID)
	}

	s.notifyProject(project, model.EventTaskCreated,
		fmt.Sprintf("New task created: %s", created.Title))

	return s.toView(ctx, created)
}

// Update применяет разреженный патч по принципу все-или-ничего:
// сначала разрешаются все ссылки из патча, и только потом одна запись в хранилище
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, req model.UpdateTaskRequest) (model.TaskView, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return model.TaskView{}, err
	}

	prevStatus := task.Status // Фиксируем статус до мутации

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return model.TaskView{}, ErrValidation
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return model.TaskView{}, ErrValidation
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return model.TaskView{}, ErrValidation
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.AssigneeID != nil {
		if _, err := s.users.Get(ctx, *req.AssigneeID); err != nil {
			return model.TaskView{}, err
		}
		task.AssigneeID = req.AssigneeID
	}

	var project *model.Project
	switch {
	case !req.ProjectID.Present:
		// Ключа не было в патче - ассоциацию не трогаем
	case req.ProjectID.Valid:
		p, err := s.projects.Get(ctx, req.ProjectID.Value)
		if err != nil {
			return model.TaskView{}, err
		}
		project = &p
		task.ProjectID = &p.ID
	default:
		// Явный null - полностью отвязываем задачу от проекта
		task.ProjectID = nil
	}

	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		return model.TaskView{}, err
	}

	if req.Status != nil && updated.Status == model.StatusDone && updated.AssigneeID != nil {
		s.awardCompletionBadges(ctx, *updated.AssigneeID)
	}

	if updated.Status != prevStatus && updated.ProjectID != nil {
		if project == nil {
			if p, err := s.projects.Get(ctx, *updated.ProjectID); err == nil {
				project = &p
			}
		}
		s.notifyProject(project, model.EventTaskStatusChanged,
			fmt.Sprintf("Task '%s' moved from %s to %s", updated.Title, prevStatus, updated.Status))
	}

	return s.toView(ctx, updated)
}

func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (model.TaskView, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return model.TaskView{}, err
	}
	return s.toView(ctx, task)
}

func (s *TaskService) List(ctx context.Context) ([]model.TaskView, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]model.TaskView, 0, len(tasks))
	for _, t := range tasks {
		view, err := s.toView(ctx, t)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tasks.Delete(ctx, id)
}

// awardCompletionBadges вызывает геймификацию; ее ошибки не валят апдейт,
// задача к этому моменту уже сохранена
func (s *TaskService) awardCompletionBadges(ctx context.Context, assigneeID uuid.UUID) {
	assignee, err := s.users.Get(ctx, assigneeID)
	if err != nil {
		s.logger.Error("failed to load assignee for badge check",
			zap.String("assignee_id", assigneeID.String()), zap.Error(err))
		return
	}
	if err := s.gamification.CheckAndAwardBadges(ctx, &assignee); err != nil {
		s.logger.Error("badge check failed",
			zap.String("assignee_id", assigneeID.String()), zap.Error(err))
	}
}

func (s *TaskService) notifyProject(project *model.Project, event, message string) {
	if project == nil || project.WebhookURL == nil || !project.SubscribedTo(event) {
		return
	}
	s.notifier.Send(*project.WebhookURL, message)
}

func (s *TaskService) toView(ctx context.Context, t model.Task) (model.TaskView, error) {
	view := model.TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
	}

	if t.AssigneeID != nil {
		u, err := s.users.Get(ctx, *t.AssigneeID)
		if err != nil {
			return view, err
		}
		view.Assignee = &model.UserSummary{ID: u.ID, Email: u.Email}
	}
	if t.ProjectID != nil {
		p, err := s.projects.Get(ctx, *t.ProjectID)
		if err != nil {
			return view, err
		}
		view.Project = &model.ProjectSummary{ID: p.ID, Name: p.Name}
	}
	return view, nil
}
