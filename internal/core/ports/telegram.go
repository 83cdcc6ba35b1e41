package ports

import (
	"context"

	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
)

type TelegramRepository interface {
	ProfileByChatID(ctx context.Context, chatID int64) (domain.TelegramProfile, error)
	// UpsertToken creates the profile row for an unseen chat or refreshes the
	// one-time token of an existing row, in a single atomic statement.
	UpsertToken(ctx context.Context, chatID int64, token string) error
	// BindUser attaches the account to the profile identified by chat and
	// token, clearing the token. ErrLinkTokenMismatch when no row matches.
	BindUser(ctx context.Context, chatID int64, token string, userID uint64) error
	Unlink(ctx context.Context, chatID int64) error
	ListLinkedProfiles(ctx context.Context) ([]domain.TelegramProfile, error)
}

type TelegramService interface {
	HandleEvent(ctx context.Context, event domain.InboundEvent) error
	ConfirmLink(ctx context.Context, token string, chatID int64, userID uint64) error
}

// Messenger is the outbound side of the messaging platform. Implementations
// block with a short timeout and never retry.
type Messenger interface {
	Send(ctx context.Context, msg domain.OutboundMessage) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

type ReminderService interface {
	// Run scans linked chats for due tasks and sends one reminder per chat.
	// Send failures are isolated per recipient and only counted.
	Run(ctx context.Context) (domain.ReminderReport, error)
}
