package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stratix/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when access is denied (optional)
	OnDenied func(c *gin.Context, requiredRoles []string)
}

// RequireRole creates middleware that requires one of the specified roles.
// The authenticated user's role must match at least one of the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireRoleWithConfig creates role middleware with custom config
func RequireRoleWithConfig(cfg RoleConfig, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, roles, "No authentication claims found")
			return
		}

		if !claims.HasRole(roles...) {
			handleRoleDenied(c, cfg, roles, "User lacks required role")
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Debug("Role check passed",
				zap.String("user_id", claims.UserID),
				zap.Strings("required_any", roles),
				zap.String("user_role", claims.Role),
			)
		}

		c.Next()
	}
}

// handleRoleDenied handles role denied scenarios
func handleRoleDenied(c *gin.Context, cfg RoleConfig, requiredRoles []string, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, requiredRoles)
		return
	}

	if cfg.Logger != nil {
		claims := GetJWTClaims(c)
		userID := ""
		userRole := ""
		if claims != nil {
			userID = claims.UserID
			userRole = claims.Role
		}

		cfg.Logger.Warn("Role denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.Strings("required_roles", requiredRoles),
			zap.String("user_role", userRole),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "Access denied: insufficient role",
		},
	})
}

// HasRole is a helper function to check the user's role in handlers.
// Returns true if the authenticated user has one of the given roles.
func HasRole(c *gin.Context, roles ...string) bool {
	claims := GetJWTClaims(c)
	if claims == nil {
		return false
	}
	return claims.HasRole(roles...)
}

// MustHaveRole aborts the request if the user doesn't have any of the roles.
// Returns true if the user passes, false if aborted.
func MustHaveRole(c *gin.Context, roles ...string) bool {
	if !HasRole(c, roles...) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Access denied: insufficient role",
			},
		})
		return false
	}
	return true
}

// CheckAccessFunc is a function type for custom access checks
type CheckAccessFunc func(claims *auth.Claims, c *gin.Context) bool

// RequireCustomAccess creates middleware with a custom access check function.
// This allows for access logic that can't be expressed with a simple role list,
// such as managers restricted to their own area.
func RequireCustomAccess(checkFunc CheckAccessFunc) gin.HandlerFunc {
	return RequireCustomAccessWithConfig(checkFunc, RoleConfig{})
}

// RequireCustomAccessWithConfig creates custom access middleware with config
func RequireCustomAccessWithConfig(checkFunc CheckAccessFunc, cfg RoleConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, []string{"custom"}, "No authentication claims found")
			return
		}

		if !checkFunc(claims, c) {
			handleRoleDenied(c, cfg, []string{"custom"}, "Custom access check failed")
			return
		}

		c.Next()
	}
}
