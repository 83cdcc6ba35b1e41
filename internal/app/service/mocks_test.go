package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) ListTasks(ctx context.Context, userID uint64, filter domain.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, userID, filter)
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) GetTask(ctx context.Context, userID, taskID uint64) (domain.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) CreateTask(ctx context.Context, userID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) UpdateTask(ctx context.Context, userID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, userID, taskID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) UpdateTaskStatus(ctx context.Context, userID, taskID uint64, status domain.TaskStatus) error {
	args := m.Called(ctx, userID, taskID, status)
	return args.Error(0)
}

func (m *taskRepositoryMock) DeleteTask(ctx context.Context, userID, taskID uint64) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

func (m *taskRepositoryMock) ListDueTasks(ctx context.Context, userID uint64, from, to time.Time) ([]domain.Task, error) {
	args := m.Called(ctx, userID, from, to)
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) SearchTagNames(ctx context.Context, userID uint64, term string) ([]string, error) {
	args := m.Called(ctx, userID, term)
	var names []string
	if value := args.Get(0); value != nil {
		names = value.([]string)
	}
	return names, args.Error(1)
}

type userRepositoryMock struct {
	mock.Mock
}

func (m *userRepositoryMock) CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error) {
	args := m.Called(ctx, username, passwordHash)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) UserByUsername(ctx context.Context, username string) (domain.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) UserByID(ctx context.Context, id uint64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

type telegramRepositoryMock struct {
	mock.Mock
}

func (m *telegramRepositoryMock) ProfileByChatID(ctx context.Context, chatID int64) (domain.TelegramProfile, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).(domain.TelegramProfile), args.Error(1)
}

func (m *telegramRepositoryMock) UpsertToken(ctx context.Context, chatID int64, token string) error {
	args := m.Called(ctx, chatID, token)
	return args.Error(0)
}

func (m *telegramRepositoryMock) BindUser(ctx context.Context, chatID int64, token string, userID uint64) error {
	args := m.Called(ctx, chatID, token, userID)
	return args.Error(0)
}

func (m *telegramRepositoryMock) Unlink(ctx context.Context, chatID int64) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

func (m *telegramRepositoryMock) ListLinkedProfiles(ctx context.Context) ([]domain.TelegramProfile, error) {
	args := m.Called(ctx)
	var profiles []domain.TelegramProfile
	if value := args.Get(0); value != nil {
		profiles = value.([]domain.TelegramProfile)
	}
	return profiles, args.Error(1)
}

type messengerMock struct {
	mock.Mock
}

func (m *messengerMock) Send(ctx context.Context, msg domain.OutboundMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *messengerMock) AnswerCallback(ctx context.Context, callbackID, text string) error {
	args := m.Called(ctx, callbackID, text)
	return args.Error(0)
}
