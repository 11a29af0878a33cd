package middleware

import (
	"context"
	"net/http"

	"go-bms/internal/authz"
	"go-bms/internal/shared/apperror"
	"go-bms/internal/shared/contextutil"
	"go-bms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const actorKey = "actor"

// ActorResolver is a local interface: any service that can turn an
// authenticated user id into an authz.Actor fits here.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID uuid.UUID) (authz.Actor, error)
}

// ResolveActor loads the actor behind the token set by AuthMiddleware.
// Authorization itself happens later, in the services, against the
// resolved actor.
func ResolveActor(resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.GetString("user_id")
		if userIDStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid user ID in token", nil)
			c.Abort()
			return
		}

		actor, err := resolver.ResolveActor(c.Request.Context(), userID)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			c.Abort()
			return
		}

		c.Set(actorKey, actor)

		ctx := contextutil.WithUserID(c.Request.Context(), userIDStr)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ActorFrom returns the resolved actor for this request.
func ActorFrom(c *gin.Context) (authz.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return authz.Actor{}, false
	}
	actor, ok := v.(authz.Actor)
	return actor, ok
}
