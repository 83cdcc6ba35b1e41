package http

import (
	"github.com/gin-gonic/gin"

	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/handlers"
	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/middleware"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
)

func RegisterRoutes(
	r *gin.Engine,
	authService ports.AuthService,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	taskAPIHandler *handlers.TaskAPIHandler,
	telegramHandler *handlers.TelegramHandler,
	notifyHandler *handlers.NotifyHandler,
) {
	// Wrong-method hits on the trigger endpoint must answer 405, not 404.
	r.HandleMethodNotAllowed = true
	r.Use(middleware.LanguageMiddleware())

	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.POST("/bot/:token", telegramHandler.Webhook)

	web := r.Group("/")
	web.Use(middleware.RequireSession(authService))
	{
		web.GET("/tasks", taskHandler.ListTasks)
		web.POST("/tasks/create", taskHandler.CreateTask)
		web.POST("/tasks/:id/edit", taskHandler.EditTask)
		web.POST("/tasks/:id/delete", taskHandler.DeleteTask)
		web.POST("/tasks/:id/update-status", taskHandler.UpdateTaskStatus)
		web.GET("/tags/autocomplete", taskHandler.AutocompleteTags)
		web.GET("/telegram/confirm", telegramHandler.ConfirmLink)
	}

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
		api.POST("/send-daily", notifyHandler.TriggerDaily)

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(authService))
		{
			tasks.GET("", taskAPIHandler.ListTasks)
			tasks.POST("", taskAPIHandler.CreateTask)
			tasks.GET("/:id", taskAPIHandler.GetTask)
			tasks.PUT("/:id", taskAPIHandler.UpdateTask)
			tasks.PATCH("/:id", taskAPIHandler.UpdateTask)
			tasks.DELETE("/:id", taskAPIHandler.DeleteTask)
		}
	}
}
