package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
)

// MapUpdate reduces a Bot API update to the event the bot front-end acts on.
// The second return value is false for update kinds the bot ignores.
func MapUpdate(update tgbotapi.Update) (domain.InboundEvent, bool) {
	if update.CallbackQuery != nil {
		cb := update.CallbackQuery
		event := domain.InboundEvent{
			CallbackID:   cb.ID,
			CallbackData: cb.Data,
		}
		if cb.Message != nil && cb.Message.Chat != nil {
			event.ChatID = cb.Message.Chat.ID
		}
		return event, true
	}

	if update.Message != nil && update.Message.Chat != nil {
		return domain.InboundEvent{
			ChatID: update.Message.Chat.ID,
			Text:   update.Message.Text,
		}, true
	}

	return domain.InboundEvent{}, false
}
