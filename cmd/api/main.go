package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "github.com/DeTr1ll/Task-Manager/internal/adapter/db"
	httpadapter "github.com/DeTr1ll/Task-Manager/internal/adapter/http"
	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/handlers"
	httpmiddleware "github.com/DeTr1ll/Task-Manager/internal/adapter/http/middleware"
	tgadapter "github.com/DeTr1ll/Task-Manager/internal/adapter/telegram"
	appservice "github.com/DeTr1ll/Task-Manager/internal/app/service"
	"github.com/DeTr1ll/Task-Manager/internal/config"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
	"github.com/DeTr1ll/Task-Manager/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	taskRepository := dbadapter.NewTaskRepository(db)
	userRepository := dbadapter.NewUserRepository(db)
	telegramRepository := dbadapter.NewTelegramRepository(db)

	taskService := appservice.NewTaskService(taskRepository)
	authService := appservice.NewAuthService(userRepository, cfg.JwtSecret)

	// The bot client is constructed here and injected; without a token the
	// telegram surfaces stay up but report their errors instead of sending.
	var messenger ports.Messenger
	var reminderService ports.ReminderService
	if cfg.TelegramToken != "" {
		client, err := tgadapter.NewClient(cfg.TelegramToken)
		if err != nil {
			logger.Warn("telegram client unavailable", zap.Error(err))
		} else {
			messenger = client
			reminderService = appservice.NewReminderService(
				taskRepository, telegramRepository, client, cfg.ReminderWindowDays)
		}
	}
	telegramService := appservice.NewTelegramService(telegramRepository, messenger, cfg.FrontendURL)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			logger.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	httpadapter.RegisterRoutes(
		r,
		authService,
		handlers.NewHealthHandler(db),
		handlers.NewAuthHandler(authService),
		handlers.NewTaskHandler(taskService),
		handlers.NewTaskAPIHandler(taskService),
		handlers.NewTelegramHandler(telegramService, cfg.TelegramToken),
		handlers.NewNotifyHandler(reminderService, cfg.CronSecret),
	)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
