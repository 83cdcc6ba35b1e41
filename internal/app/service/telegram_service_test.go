package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appservice "github.com/DeTr1ll/Task-Manager/internal/app/service"
	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
)

const frontendURL = "https://tasks.example.com"

func TestTelegramService_Start_UnlinkedChatGetsConfirmLink(t *testing.T) {
	profiles := new(telegramRepositoryMock)
	messenger := new(messengerMock)

	profiles.On("ProfileByChatID", mock.Anything, int64(100)).
		Return(domain.TelegramProfile{}, domain.ErrProfileNotFound).Once()

	var issued string
	profiles.On("UpsertToken", mock.Anything, int64(100), mock.MatchedBy(func(token string) bool {
		issued = token
		return len(token) == 16
	})).Return(nil).Once()

	messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg domain.OutboundMessage) bool {
		if msg.ChatID != 100 || len(msg.Buttons) != 1 {
			return false
		}
		link := msg.Buttons[0].URL
		return strings.HasPrefix(link, frontendURL+"/telegram/confirm?token=") &&
			strings.Contains(link, issued) &&
			strings.Contains(link, "chat_id=100")
	})).Return(nil).Once()

	svc := appservice.NewTelegramService(profiles, messenger, frontendURL)
	err := svc.HandleEvent(context.Background(), domain.InboundEvent{ChatID: 100, Text: "/start"})

	require.NoError(t, err)
	profiles.AssertExpectations(t)
	messenger.AssertExpectations(t)
}

func TestTelegramService_Start_LinkedChatGetsUnlinkButton(t *testing.T) {
	profiles := new(telegramRepositoryMock)
	messenger := new(messengerMock)

	userID := uint64(1)
	profiles.On("ProfileByChatID", mock.Anything, int64(100)).
		Return(domain.TelegramProfile{ChatID: 100, UserID: &userID}, nil).Once()
	messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg domain.OutboundMessage) bool {
		return len(msg.Buttons) == 1 && msg.Buttons[0].CallbackData == "unlink"
	})).Return(nil).Once()

	svc := appservice.NewTelegramService(profiles, messenger, frontendURL)
	err := svc.HandleEvent(context.Background(), domain.InboundEvent{ChatID: 100, Text: "/start"})

	require.NoError(t, err)
	profiles.AssertNotCalled(t, "UpsertToken", mock.Anything, mock.Anything, mock.Anything)
	messenger.AssertExpectations(t)
}

func TestTelegramService_UnlinkCallback_ReissuesToken(t *testing.T) {
	profiles := new(telegramRepositoryMock)
	messenger := new(messengerMock)

	profiles.On("Unlink", mock.Anything, int64(100)).Return(nil).Once()
	messenger.On("AnswerCallback", mock.Anything, "cb-1", mock.Anything).Return(nil).Once()
	profiles.On("UpsertToken", mock.Anything, int64(100), mock.Anything).Return(nil).Once()
	messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg domain.OutboundMessage) bool {
		return len(msg.Buttons) == 1 && msg.Buttons[0].URL != ""
	})).Return(nil).Once()

	svc := appservice.NewTelegramService(profiles, messenger, frontendURL)
	err := svc.HandleEvent(context.Background(), domain.InboundEvent{
		ChatID:       100,
		CallbackID:   "cb-1",
		CallbackData: "unlink",
	})

	require.NoError(t, err)
	profiles.AssertExpectations(t)
	messenger.AssertExpectations(t)
}

func TestTelegramService_UnknownCallback_OnlyAcknowledged(t *testing.T) {
	profiles := new(telegramRepositoryMock)
	messenger := new(messengerMock)

	messenger.On("AnswerCallback", mock.Anything, "cb-2", "Unknown action").Return(nil).Once()

	svc := appservice.NewTelegramService(profiles, messenger, frontendURL)
	err := svc.HandleEvent(context.Background(), domain.InboundEvent{
		ChatID:       100,
		CallbackID:   "cb-2",
		CallbackData: "vote_yes_3",
	})

	require.NoError(t, err)
	profiles.AssertNotCalled(t, "Unlink", mock.Anything, mock.Anything)
	messenger.AssertExpectations(t)
}

func TestTelegramService_UnknownText_GenericReply(t *testing.T) {
	profiles := new(telegramRepositoryMock)
	messenger := new(messengerMock)

	messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg domain.OutboundMessage) bool {
		return msg.ChatID == 100 && len(msg.Buttons) == 0
	})).Return(nil).Once()

	svc := appservice.NewTelegramService(profiles, messenger, frontendURL)
	err := svc.HandleEvent(context.Background(), domain.InboundEvent{ChatID: 100, Text: "hello bot"})

	require.NoError(t, err)
	profiles.AssertNotCalled(t, "UpsertToken", mock.Anything, mock.Anything, mock.Anything)
	messenger.AssertExpectations(t)
}

func TestTelegramService_ConfirmLink(t *testing.T) {
	profiles := new(telegramRepositoryMock)
	messenger := new(messengerMock)
	svc := appservice.NewTelegramService(profiles, messenger, frontendURL)

	profiles.On("BindUser", mock.Anything, int64(100), "tok", uint64(1)).Return(nil).Once()
	require.NoError(t, svc.ConfirmLink(context.Background(), "tok", 100, 1))

	profiles.On("BindUser", mock.Anything, int64(100), "stale", uint64(1)).
		Return(domain.ErrLinkTokenMismatch).Once()
	require.ErrorIs(t, svc.ConfirmLink(context.Background(), "stale", 100, 1), domain.ErrLinkTokenMismatch)

	// Empty token never reaches storage.
	require.ErrorIs(t, svc.ConfirmLink(context.Background(), "", 100, 1), domain.ErrLinkTokenMismatch)
	profiles.AssertExpectations(t)
}
