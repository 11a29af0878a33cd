package auth

import (
	"go-bms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	auth := r.Group("/auth")
	{
		auth.POST("/register",
			middleware.RateLimitByIP(0.1, 2),
			middleware.Idempotency(rdb),
			handler.Register,
		)
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.POST("/logout", middleware.AuthMiddleware(), handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.PUT("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.UpdateMe)
	}
}
