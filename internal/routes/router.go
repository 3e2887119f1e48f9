package routes

import (
	"FinControl/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Jwt          *middleware.JwtService
	UserLimiter  *middleware.RateLimiter
	AdminLimiter *middleware.RateLimiter
}

func Register(router *gin.Engine, handler *Handler, deps RouterDeps) {
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(deps.Jwt))
	private.Use(middleware.RateLimitByUser(deps.UserLimiter))
	{
		transactions := private.Group("/transactions")
		{
			transactions.POST("", handler.CreateTransaction)
			transactions.GET("", handler.GetTransactions)
			transactions.GET("/:id", handler.GetTransaction)
			transactions.DELETE("/:id", handler.DeleteTransaction)
			transactions.PATCH("/:id/cancel-recurrence", handler.CancelRecurrence)
			transactions.PATCH("/:id/recurrence", handler.UpdateRecurrence)
			transactions.GET("/:id/generated", handler.ListGeneratedTransactions)
		}

		private.GET("/recurring", handler.ListRecurringTemplates)

		notifications := private.Group("/notifications")
		{
			notifications.GET("", handler.ListNotifications)
			notifications.GET("/unread-count", handler.CountUnreadNotifications)
			notifications.PATCH("/read-all", handler.MarkAllNotificationsAsRead)
			notifications.PATCH("/:id/read", handler.MarkNotificationAsRead)
			notifications.DELETE("/read", handler.DeleteReadNotifications)
			notifications.DELETE("/:id", handler.DeleteNotification)
		}

		admin := private.Group("/admin")
		admin.Use(middleware.RequireRole("admin"))
		admin.Use(middleware.RateLimitByUser(deps.AdminLimiter))
		{
			admin.POST("/recurring/process", handler.ProcessRecurring)
		}
	}
}
