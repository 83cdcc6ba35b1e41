package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
)

const linkTokenBytes = 8 // 16 hex characters

// ErrMessengerUnavailable means the bot client was not configured; inbound
// updates are dropped with this error instead of panicking.
var ErrMessengerUnavailable = errors.New("telegram messenger not configured")

type TelegramService struct {
	profiles    ports.TelegramRepository
	messenger   ports.Messenger
	frontendURL string
}

func NewTelegramService(profiles ports.TelegramRepository, messenger ports.Messenger, frontendURL string) *TelegramService {
	return &TelegramService{
		profiles:    profiles,
		messenger:   messenger,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// HandleEvent drives the per-chat state machine: Unlinked/TokenIssued chats
// get a fresh confirmation link on /start, Linked chats get an unlink button,
// unknown payloads are acknowledged without state change.
func (s *TelegramService) HandleEvent(ctx context.Context, event domain.InboundEvent) error {
	if s.messenger == nil {
		return ErrMessengerUnavailable
	}
	if event.IsCallback() {
		return s.handleCallback(ctx, event)
	}

	if command(event.Text) != "start" {
		return s.messenger.Send(ctx, domain.OutboundMessage{
			ChatID: event.ChatID,
			Text:   "I don't know that command. Send /start to manage your account link.",
		})
	}

	profile, err := s.profiles.ProfileByChatID(ctx, event.ChatID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return err
	}

	if profile.Linked() {
		return s.messenger.Send(ctx, domain.OutboundMessage{
			ChatID: event.ChatID,
			Text:   "👋 Welcome back! Your Telegram is linked to your account.",
			Buttons: []domain.Button{
				{Text: "❌ Unlink Telegram", CallbackData: "unlink"},
			},
		})
	}

	return s.sendLink(ctx, event.ChatID)
}

func (s *TelegramService) handleCallback(ctx context.Context, event domain.InboundEvent) error {
	if event.CallbackData != "unlink" {
		return s.messenger.AnswerCallback(ctx, event.CallbackID, "Unknown action")
	}

	if err := s.profiles.Unlink(ctx, event.ChatID); err != nil {
		return err
	}
	if err := s.messenger.AnswerCallback(ctx, event.CallbackID, "Telegram unlinked"); err != nil {
		zap.L().Warn("failed to answer unlink callback", zap.Int64("chat_id", event.ChatID), zap.Error(err))
	}
	return s.sendLink(ctx, event.ChatID)
}

func (s *TelegramService) sendLink(ctx context.Context, chatID int64) error {
	token, err := newLinkToken()
	if err != nil {
		return err
	}
	if err := s.profiles.UpsertToken(ctx, chatID, token); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/telegram/confirm?token=%s&chat_id=%d", s.frontendURL, token, chatID)
	return s.messenger.Send(ctx, domain.OutboundMessage{
		ChatID: chatID,
		Text:   "🔗 Open the link below while logged in on the site to connect this chat.",
		Buttons: []domain.Button{
			{Text: "Link Telegram", URL: link},
		},
	})
}

// ConfirmLink completes the web confirmation redirect. The token must match
// the one stored for the chat; anything else leaves the profile untouched.
func (s *TelegramService) ConfirmLink(ctx context.Context, token string, chatID int64, userID uint64) error {
	if token == "" || chatID == 0 {
		return domain.ErrLinkTokenMismatch
	}
	return s.profiles.BindUser(ctx, chatID, token, userID)
}

func command(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0]
	cmd = strings.TrimPrefix(cmd, "/")
	// Group-chat form: /start@MyBot.
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	return cmd
}

func newLinkToken() (string, error) {
	buf := make([]byte, linkTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

var _ ports.TelegramService = (*TelegramService)(nil)
