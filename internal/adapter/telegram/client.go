package telegram

import (
	"context"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
)

const defaultSendTimeout = 10 * time.Second

// Client implements ports.Messenger on top of the Bot API. It is constructed
// once in main and injected; calls block with the HTTP client's timeout and
// are not retried.
type Client struct {
	bot *tgbotapi.BotAPI
}

var _ ports.Messenger = (*Client)(nil)

func NewClient(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{
		Timeout: defaultSendTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &Client{bot: bot}, nil
}

func (c *Client) Send(_ context.Context, msg domain.OutboundMessage) error {
	out := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	out.ParseMode = msg.ParseMode
	if len(msg.Buttons) > 0 {
		out.ReplyMarkup = inlineKeyboard(msg.Buttons)
	}
	_, err := c.bot.Send(out)
	return err
}

func (c *Client) AnswerCallback(_ context.Context, callbackID, text string) error {
	_, err := c.bot.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

// Username returns the bot's own username as reported by getMe.
func (c *Client) Username() string {
	return c.bot.Self.UserName
}

// Updates opens the long-polling channel used by the bot binary.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message", "callback_query"}
	return c.bot.GetUpdatesChan(u)
}

// StopPolling shuts the update channel down.
func (c *Client) StopPolling() {
	c.bot.StopReceivingUpdates()
}

func inlineKeyboard(buttons []domain.Button) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, b := range buttons {
		if b.URL != "" {
			row = append(row, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.CallbackData))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}
