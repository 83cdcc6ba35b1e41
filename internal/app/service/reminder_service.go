package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
)

// ReminderService scans every linked chat for tasks due inside the
// configured window and sends one message per chat. A failed send is logged
// and counted, never fatal to the run.
type ReminderService struct {
	tasks      ports.TaskRepository
	profiles   ports.TelegramRepository
	messenger  ports.Messenger
	windowDays int
	now        func() time.Time
}

func NewReminderService(tasks ports.TaskRepository, profiles ports.TelegramRepository, messenger ports.Messenger, windowDays int) *ReminderService {
	if windowDays < 0 {
		windowDays = 0
	}
	return &ReminderService{
		tasks:      tasks,
		profiles:   profiles,
		messenger:  messenger,
		windowDays: windowDays,
		now:        time.Now,
	}
}

func (s *ReminderService) Run(ctx context.Context) (domain.ReminderReport, error) {
	profiles, err := s.profiles.ListLinkedProfiles(ctx)
	if err != nil {
		return domain.ReminderReport{}, err
	}

	today := domain.TruncateToDay(s.now())
	until := today.AddDate(0, 0, s.windowDays)

	var report domain.ReminderReport
	for _, profile := range profiles {
		if !profile.Linked() {
			continue
		}

		tasks, err := s.tasks.ListDueTasks(ctx, *profile.UserID, today, until)
		if err != nil {
			zap.L().Error("failed to load due tasks",
				zap.Uint64("user_id", *profile.UserID),
				zap.Error(err))
			report.Failed++
			continue
		}
		if len(tasks) == 0 {
			continue
		}

		msg := domain.OutboundMessage{
			ChatID:    profile.ChatID,
			Text:      composeReminder(tasks),
			ParseMode: "HTML",
		}
		if err := s.messenger.Send(ctx, msg); err != nil {
			zap.L().Error("failed to send reminder",
				zap.Int64("chat_id", profile.ChatID),
				zap.Error(err))
			report.Failed++
			continue
		}
		report.Notified++
	}

	return report, nil
}

func composeReminder(tasks []domain.Task) string {
	var b strings.Builder
	b.WriteString("🔔 <b>Deadline reminders</b>\n")
	for _, task := range tasks {
		b.WriteString("• ")
		// Titles are user input and the message is sent as HTML.
		b.WriteString(html.EscapeString(task.Title))
		if task.DueDate != nil {
			fmt.Fprintf(&b, " — %s", task.DueDate.Format("02.01"))
			if task.DueTime != nil {
				fmt.Fprintf(&b, " %s", task.DueTime.Format("15:04"))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

var _ ports.ReminderService = (*ReminderService)(nil)
