package company

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
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	companies.Use(middleware.ContextLogger(logger))
	companies.Use(middleware.ResolveActor(resolver))
	{
		companies.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.Get,
		)

		companies.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)
	}
}
