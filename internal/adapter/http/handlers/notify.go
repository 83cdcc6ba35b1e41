package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/middleware"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
	"github.com/DeTr1ll/Task-Manager/pkg/apierrors"
)

// NotifyHandler exposes the external-scheduler trigger for the reminder run.
type NotifyHandler struct {
	reminderService ports.ReminderService
	cronSecret      string
}

func NewNotifyHandler(reminderService ports.ReminderService, cronSecret string) *NotifyHandler {
	return &NotifyHandler{reminderService: reminderService, cronSecret: cronSecret}
}

// TriggerDaily requires `Authorization: Bearer <CRON_SECRET>`. A missing
// server-side secret or reminder wiring is a configuration fault, not an
// auth one.
func (h *NotifyHandler) TriggerDaily(c *gin.Context) {
	lang := middleware.GetLang(c)

	if h.cronSecret == "" || h.reminderService == nil {
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgNotifyUnconfigured, lang),
		)
		return
	}

	if !h.authorized(c.GetHeader("Authorization")) {
		c.JSON(
			http.StatusForbidden,
			apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, lang),
		)
		return
	}

	report, err := h.reminderService.Run(c.Request.Context())
	if err != nil {
		zap.L().Error("reminder run failed", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailNotify, lang),
		)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notified": report.Notified, "failed": report.Failed})
}

func (h *NotifyHandler) authorized(header string) bool {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(parts[1]), []byte(h.cronSecret)) == 1
}
