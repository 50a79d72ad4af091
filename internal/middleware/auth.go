package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/storefront/internal/models"
	"github.com/monocle-dev/storefront/internal/services"
	"github.com/monocle-dev/storefront/internal/types"
	"github.com/monocle-dev/storefront/internal/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Resolver turns a bearer token into the principal it names.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware takes the token from the Authorization header, falling
// back to the token cookie, and stores the resolved user in the context.
func AuthMiddleware(identity Resolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx)

		if !ok {
			unauthorized(ctx, "Not authenticated")
			return
		}

		user, err := identity.Resolve(ctx.Request.Context(), token)

		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidToken):
				unauthorized(ctx, "Invalid token")
			case errors.Is(err, services.ErrUserNotFound):
				unauthorized(ctx, "User not found")
			default:
				log.WithError(err).WithField("request_id", utils.GetRequestID(ctx)).
					Error("Failed to resolve principal")
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, _ := ctx.Get(types.ContextUserKey)
		principal, _ := user.(*models.User)

		if err := services.RequireAdmin(principal); err != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access not allowed"})
			return
		}

		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) (string, bool) {
	if header := ctx.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)

		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", false
		}

		return strings.TrimSpace(parts[1]), true
	}

	if cookie, err := ctx.Cookie(types.TokenCookie); err == nil && cookie != "" {
		return cookie, true
	}

	return "", false
}

func unauthorized(ctx *gin.Context, message string) {
	ctx.Header("WWW-Authenticate", "Bearer")
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
