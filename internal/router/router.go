package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"OnShift/config"
	"OnShift/internal/handler"
	"OnShift/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	if config.Cfg.OTelEnabled {
		h.Use(middleware.OpenTelemetryMiddleware())
	}
	if config.Cfg.CSRFEnabled {
		h.Use(middleware.SessionMiddleware())
		h.Use(middleware.CSRFMiddleware())
	}

	v1 := h.Group("/v1")

	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware())
	{
		auth.POST("/login", handler.Login)
		auth.POST("/token/refresh", handler.RefreshToken)
	}

	timeClock := v1.Group("/time-clock")
	timeClock.Use(middleware.AuthMiddleware())
	timeClock.Use(middleware.GeneralRateLimitMiddleware())
	{
		timeClock.GET("", handler.GetTimeClock)
		timeClock.POST("/clock-in", middleware.ClockRateLimitMiddleware(), handler.ClockIn)
		timeClock.POST("/clock-out", middleware.ClockRateLimitMiddleware(), handler.ClockOut)
		timeClock.POST("/breaks/start", middleware.ClockRateLimitMiddleware(), handler.StartBreak)
		timeClock.POST("/breaks/end", middleware.ClockRateLimitMiddleware(), handler.EndBreak)
		timeClock.POST("/session-ending", handler.SignalSessionEnding)
	}

	tasks := v1.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	tasks.Use(middleware.GeneralRateLimitMiddleware())
	{
		tasks.GET("/log", handler.ListLoggedTasks)
		tasks.POST("/log", handler.LogTask)
		tasks.GET("/assigned", handler.ListAssignedTasks)
		tasks.POST("/assigned/:task_id/complete", handler.CompleteTask)
	}

	// Employer-facing routes. The role claim is re-checked against the
	// database inside each handler.
	team := v1.Group("/team")
	team.Use(middleware.AuthMiddleware())
	team.Use(middleware.GeneralRateLimitMiddleware())
	{
		team.POST("/members", handler.CreateWorker)
		team.GET("/status", handler.GetTeamStatus)
		team.POST("/members/:worker_id/tasks", handler.AssignTask)

		analytics := team.Group("/analytics")
		{
			analytics.GET("/status-distribution", handler.GetStatusDistribution)
			analytics.GET("/total-hours", handler.GetTotalHours)
			analytics.GET("/daily-hours", handler.GetDailyHours)
		}
	}
}
