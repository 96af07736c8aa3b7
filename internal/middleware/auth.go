package middleware

import (
	"strings"

	"constru_backend/internal/auth"
	"constru_backend/internal/logger"
	"constru_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	contextUserIDKey   = "user_id"
	contextUserRoleKey = "user_role"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// AuthMiddleware requires a valid access token and attaches the user's
// identity to the request.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header required"))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid or expired access token"))
			c.Abort()
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextUserRoleKey, claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuthMiddleware attaches the identity when a valid token is
// present and stays silent otherwise. Used on public catalog routes so
// searches by logged-in users can be attributed.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			// A bad token on a public route is ignored, not rejected.
			c.Next()
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextUserRoleKey, claims.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated
// role is one of the listed roles. Must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(contextUserRoleKey)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
		c.Abort()
	}
}
