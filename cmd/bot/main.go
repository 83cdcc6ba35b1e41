package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	dbadapter "github.com/DeTr1ll/Task-Manager/internal/adapter/db"
	tgadapter "github.com/DeTr1ll/Task-Manager/internal/adapter/telegram"
	appservice "github.com/DeTr1ll/Task-Manager/internal/app/service"
	"github.com/DeTr1ll/Task-Manager/internal/config"
)

// The bot runs as a second process next to the web server, long-polling
// Telegram and talking to the same database.
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()
	if cfg.TelegramToken == "" {
		logger.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	client, err := tgadapter.NewClient(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("failed to initialize telegram client", zap.Error(err))
	}
	logger.Info("bot authorized", zap.String("username", client.Username()))

	telegramRepository := dbadapter.NewTelegramRepository(db)
	telegramService := appservice.NewTelegramService(telegramRepository, client, cfg.FrontendURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	updates := client.Updates()
	logger.Info("bot is polling for updates")
	for {
		select {
		case <-ctx.Done():
			client.StopPolling()
			logger.Info("bot shutting down")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			event, mapped := tgadapter.MapUpdate(update)
			if !mapped {
				continue
			}
			if err := telegramService.HandleEvent(ctx, event); err != nil {
				logger.Error("failed to handle update",
					zap.Int64("chat_id", event.ChatID),
					zap.Error(err))
			}
		}
	}
}
