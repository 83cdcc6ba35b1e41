package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/middleware"
	"github.com/DeTr1ll/Task-Manager/internal/adapter/telegram"
	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
	"github.com/DeTr1ll/Task-Manager/pkg/apierrors"
)

// TelegramHandler serves the inbound webhook and the browser-side link
// confirmation redirect.
type TelegramHandler struct {
	telegramService ports.TelegramService
	botToken        string
}

func NewTelegramHandler(telegramService ports.TelegramService, botToken string) *TelegramHandler {
	return &TelegramHandler{telegramService: telegramService, botToken: botToken}
}

// Webhook handles POST /bot/:token. The path token must equal the configured
// bot credential or the update is rejected without any processing.
func (h *TelegramHandler) Webhook(c *gin.Context) {
	lang := middleware.GetLang(c)

	if h.botToken == "" ||
		subtle.ConstantTimeCompare([]byte(c.Param("token")), []byte(h.botToken)) != 1 {
		c.JSON(
			http.StatusForbidden,
			apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, lang),
		)
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidWebhook, lang),
		)
		return
	}

	event, ok := telegram.MapUpdate(update)
	if !ok {
		// Update kinds the bot does not subscribe to are acknowledged as is.
		c.Status(http.StatusOK)
		return
	}

	if err := h.telegramService.HandleEvent(c.Request.Context(), event); err != nil {
		zap.L().Error("failed to handle telegram update",
			zap.Int64("chat_id", event.ChatID),
			zap.Error(err))
	}

	// Telegram retries non-2xx deliveries, so processing errors still ack.
	c.Status(http.StatusOK)
}

// ConfirmLink completes the deep link issued by the bot. The session
// middleware has already forced a login, preserving this URL across the
// redirect.
func (h *TelegramHandler) ConfirmLink(c *gin.Context) {
	lang := middleware.GetLang(c)
	userID, _ := middleware.CurrentUserID(c)

	token := c.Query("token")
	chatID, err := strconv.ParseInt(c.Query("chat_id"), 10, 64)
	if err != nil || token == "" {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgLinkTokenMismatch, lang),
		)
		return
	}

	if err := h.telegramService.ConfirmLink(c.Request.Context(), token, chatID, userID); err != nil {
		if errors.Is(err, domain.ErrLinkTokenMismatch) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgLinkTokenMismatch, lang),
			)
			return
		}

		zap.L().Error("failed to confirm telegram link",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgLinkTokenMismatch, lang),
		)
		return
	}

	c.Redirect(http.StatusFound, "/tasks")
}
