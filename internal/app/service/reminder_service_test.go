package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appservice "github.com/DeTr1ll/Task-Manager/internal/app/service"
	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
)

func linkedProfile(chatID int64, userID uint64) domain.TelegramProfile {
	id := userID
	return domain.TelegramProfile{ID: userID, UserID: &id, ChatID: chatID}
}

func TestReminderService_Run_SendsOneMessagePerChat(t *testing.T) {
	tasks := new(taskRepositoryMock)
	profiles := new(telegramRepositoryMock)
	messenger := new(messengerMock)

	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	profiles.On("ListLinkedProfiles", mock.Anything).
		Return([]domain.TelegramProfile{linkedProfile(100, 1)}, nil).Once()
	tasks.On("ListDueTasks", mock.Anything, uint64(1), mock.Anything, mock.Anything).
		Return([]domain.Task{
			{Title: "Report", Status: domain.TaskStatusPending, DueDate: &due},
		}, nil).Once()
	messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg domain.OutboundMessage) bool {
		return msg.ChatID == 100 &&
			msg.ParseMode == "HTML" &&
			strings.Contains(msg.Text, "Report") &&
			strings.Contains(msg.Text, "10.03")
	})).Return(nil).Once()

	svc := appservice.NewReminderService(tasks, profiles, messenger, 1)
	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, report.Notified)
	require.Equal(t, 0, report.Failed)
	messenger.AssertExpectations(t)
}

func TestReminderService_Run_SkipsChatsWithNothingDue(t *testing.T) {
	tasks := new(taskRepositoryMock)
	profiles := new(telegramRepositoryMock)
	messenger := new(messengerMock)

	profiles.On("ListLinkedProfiles", mock.Anything).
		Return([]domain.TelegramProfile{linkedProfile(100, 1)}, nil).Once()
	tasks.On("ListDueTasks", mock.Anything, uint64(1), mock.Anything, mock.Anything).
		Return(nil, nil).Once()

	svc := appservice.NewReminderService(tasks, profiles, messenger, 1)
	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 0, report.Notified)
	messenger.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestReminderService_Run_IsolatesSendFailures(t *testing.T) {
	tasks := new(taskRepositoryMock)
	profiles := new(telegramRepositoryMock)
	messenger := new(messengerMock)

	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	profiles.On("ListLinkedProfiles", mock.Anything).
		Return([]domain.TelegramProfile{linkedProfile(100, 1), linkedProfile(200, 2)}, nil).Once()
	tasks.On("ListDueTasks", mock.Anything, uint64(1), mock.Anything, mock.Anything).
		Return([]domain.Task{{Title: "First", DueDate: &due}}, nil).Once()
	tasks.On("ListDueTasks", mock.Anything, uint64(2), mock.Anything, mock.Anything).
		Return([]domain.Task{{Title: "Second", DueDate: &due}}, nil).Once()

	messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg domain.OutboundMessage) bool {
		return msg.ChatID == 100
	})).Return(errors.New("chat blocked the bot")).Once()
	messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg domain.OutboundMessage) bool {
		return msg.ChatID == 200
	})).Return(nil).Once()

	svc := appservice.NewReminderService(tasks, profiles, messenger, 1)
	report, err := svc.Run(context.Background())

	// One failed recipient never aborts the batch.
	require.NoError(t, err)
	require.Equal(t, 1, report.Notified)
	require.Equal(t, 1, report.Failed)
	messenger.AssertExpectations(t)
}

func TestReminderService_Run_QueriesMidnightToWindowEnd(t *testing.T) {
	tasks := new(taskRepositoryMock)
	profiles := new(telegramRepositoryMock)
	messenger := new(messengerMock)

	profiles.On("ListLinkedProfiles", mock.Anything).
		Return([]domain.TelegramProfile{linkedProfile(100, 1)}, nil).Once()
	tasks.On("ListDueTasks", mock.Anything, uint64(1),
		mock.MatchedBy(func(from time.Time) bool {
			return from.Equal(domain.TruncateToDay(time.Now()))
		}),
		mock.MatchedBy(func(to time.Time) bool {
			return to.Equal(domain.TruncateToDay(time.Now()).AddDate(0, 0, 1))
		})).Return(nil, nil).Once()

	svc := appservice.NewReminderService(tasks, profiles, messenger, 1)
	_, err := svc.Run(context.Background())

	require.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestReminderService_Run_EscapesTitleMarkup(t *testing.T) {
	tasks := new(taskRepositoryMock)
	profiles := new(telegramRepositoryMock)
	messenger := new(messengerMock)

	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	profiles.On("ListLinkedProfiles", mock.Anything).
		Return([]domain.TelegramProfile{linkedProfile(100, 1)}, nil).Once()
	tasks.On("ListDueTasks", mock.Anything, uint64(1), mock.Anything, mock.Anything).
		Return([]domain.Task{{Title: "Review <b>draft</b> & notes", DueDate: &due}}, nil).Once()
	messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg domain.OutboundMessage) bool {
		return strings.Contains(msg.Text, "Review &lt;b&gt;draft&lt;/b&gt; &amp; notes") &&
			!strings.Contains(msg.Text, "<b>draft</b>")
	})).Return(nil).Once()

	svc := appservice.NewReminderService(tasks, profiles, messenger, 1)
	report, err := svc.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 1, report.Notified)
	messenger.AssertExpectations(t)
}

func TestReminderService_Run_AppendsDueTime(t *testing.T) {
	tasks := new(taskRepositoryMock)
	profiles := new(telegramRepositoryMock)
	messenger := new(messengerMock)

	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	at := time.Date(0, 1, 1, 9, 30, 0, 0, time.UTC)
	profiles.On("ListLinkedProfiles", mock.Anything).
		Return([]domain.TelegramProfile{linkedProfile(100, 1)}, nil).Once()
	tasks.On("ListDueTasks", mock.Anything, uint64(1), mock.Anything, mock.Anything).
		Return([]domain.Task{{Title: "Standup", DueDate: &due, DueTime: &at}}, nil).Once()
	messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg domain.OutboundMessage) bool {
		return strings.Contains(msg.Text, "09:30")
	})).Return(nil).Once()

	svc := appservice.NewReminderService(tasks, profiles, messenger, 1)
	_, err := svc.Run(context.Background())

	require.NoError(t, err)
	messenger.AssertExpectations(t)
}
