package adminuser

import (
	"go-bms/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	resolver middleware.ActorResolver,
	logger *zap.Logger,
) {
	admins := r.Group("/admin-users")
	admins.Use(middleware.AuthMiddleware())
	admins.Use(middleware.ContextLogger(logger))
	admins.Use(middleware.ResolveActor(resolver))
	{
		admins.GET("", middleware.RateLimitByUser(3, 10), handler.GetAll)
		admins.GET("/:id", middleware.RateLimitByUser(3, 10), handler.GetById)
		admins.POST("", middleware.RateLimitByUser(0.1, 1), handler.Create)
		admins.DELETE("/:id", middleware.RateLimitByUser(0.05, 1), handler.Delete)
	}
}
