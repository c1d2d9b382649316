package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

// MockTaskRepository - мок репозитория задач
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t model.Task) (model.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Get(ctx context.Context, id uuid.UUID) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, t model.Task) (model.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) CountByAssigneeAndStatus(ctx context.Context, assigneeID uuid.UUID, status model.TaskStatus) (int64, error) {
	args := m.Called(ctx, assigneeID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) SaveIdempotencyKey(ctx context.Context, key string, resourceID uuid.UUID) error {
	args := m.Called(ctx, key, resourceID)
	return args.Error(0)
}

func (m *MockTaskRepository) GetIdempotencyKey(ctx context.Context, key string) (uuid.UUID, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) AddBadge(ctx context.Context, userID, badgeID uuid.UUID) error {
	args := m.Called(ctx, userID, badgeID)
	return args.Error(0)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, p model.Project) (model.Project, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectRepository) Get(ctx context.Context, id uuid.UUID) (model.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectRepository) UpdateNotificationSettings(ctx context.Context, id uuid.UUID, webhookURL *string, events []string) (model.Project, error) {
	args := m.Called(ctx, id, webhookURL, events)
	return args.Get(0).(model.Project), args.Error(1)
}

func (m *MockProjectRepository) AddMembers(ctx context.Context, id uuid.UUID, userIDs []uuid.UUID) (model.Project, error) {
	args := m.Called(ctx, id, userIDs)
	return args.Get(0).(model.Project), args.Error(1)
}

type MockBadgeRepository struct {
	mock.Mock
}

func (m *MockBadgeRepository) GetByName(ctx context.Context, name string) (model.Badge, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(model.Badge), args.Error(1)
}

func (m *MockBadgeRepository) Seed(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(webhookURL, message string) {
	m.Called(webhookURL, message)
}
