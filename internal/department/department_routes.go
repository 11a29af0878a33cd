package department

import (
	"go-bms/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	resolver middleware.ActorResolver,
	logger *zap.Logger,
) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	departments.Use(middleware.ContextLogger(logger))
	departments.Use(middleware.ResolveActor(resolver))
	{
		departments.GET("", middleware.RateLimitByUser(3, 10), h.GetAll)
		departments.GET("/options", middleware.RateLimitByUser(5, 20), h.GetOptions)
		departments.POST("", middleware.RateLimitByUser(0.5, 2), h.Create)
		departments.GET("/:id", middleware.RateLimitByUser(3, 10), h.GetById)
		departments.PUT("/:id", middleware.RateLimitByUser(0.5, 2), h.Update)
		departments.DELETE("/:id", middleware.RateLimitByUser(0.2, 1), h.Delete)
	}
}
