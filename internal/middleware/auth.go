package middleware

import (
	"context"
	"strings"

	"school_planner_backend/internal/config"
	"school_planner_backend/internal/model"
	"school_planner_backend/internal/util"
	"school_planner_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func tokenFromRequest(c *gin.Context) string {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	}

	if tokenString == "" {
		tokenString = c.Query("token")
	}
	return tokenString
}

// AuthMiddleware rejects requests without a valid token.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("jwt rejected", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Next()
	}
}

// TryAuthMiddleware attaches claims when a valid token is present and lets
// anonymous requests through.
func TryAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret); err == nil {
				c.Set(util.ContextUserKey, claims)
			}
		}
		c.Next()
	}
}

type RoleLookup interface {
	CallerRole(ctx context.Context, principalID string) (model.UserRole, error)
}

// RoleMiddleware checks the stored role, not the one baked into the token.
func RoleMiddleware(lookup RoleLookup, roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		role, err := lookup.CallerRole(c.Request.Context(), user.PrincipalID)
		if err != nil {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == model.Admin || role == allowed {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}
