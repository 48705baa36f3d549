// Package middleware provides HTTP middleware for the platform API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// Area scope context keys
const (
	ScopedAreaIDKey = "scoped_area_id"
)

// AreaScopeConfig holds configuration for the area scope middleware
type AreaScopeConfig struct {
	// ProfileRepo is required for loading manager area assignments
	ProfileRepo identity.UserProfileRepository
	// Logger for middleware logging
	Logger *zap.Logger
}

// AreaScopeMiddleware loads a manager's area assignment into the request context.
// CEO and admin users carry no area scope and see the whole tenant.
// This middleware must run after JWTAuthMiddleware as it depends on JWT claims.
func AreaScopeMiddleware(profileRepo identity.UserProfileRepository) gin.HandlerFunc {
	return AreaScopeMiddlewareWithConfig(AreaScopeConfig{ProfileRepo: profileRepo})
}

// AreaScopeMiddlewareWithConfig creates area scope middleware with custom config
func AreaScopeMiddlewareWithConfig(cfg AreaScopeConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil || claims.Role != string(identity.RoleManager) {
			c.Next()
			return
		}

		tenantID, err := uuid.Parse(claims.TenantID)
		if err != nil {
			c.Next()
			return
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		profile, err := cfg.ProfileRepo.FindByID(c.Request.Context(), tenantID, userID)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Failed to load profile for area scope",
					zap.String("user_id", claims.UserID),
					zap.Error(err),
				)
			}
			// Continue without scope on lookup errors; handlers that need the
			// scope treat a missing value as unrestricted.
			c.Next()
			return
		}

		if profile != nil && profile.AreaID != nil {
			c.Set(ScopedAreaIDKey, *profile.AreaID)
		}

		c.Next()
	}
}

// GetScopedAreaID retrieves the manager's area scope from gin.Context.
// Returns nil when the caller is not scoped to an area.
func GetScopedAreaID(c *gin.Context) *uuid.UUID {
	if v, exists := c.Get(ScopedAreaIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return &id
		}
	}
	return nil
}

// AreaAccessAllowed reports whether the caller may act on the given area.
// Unscoped callers may act on any area.
func AreaAccessAllowed(c *gin.Context, areaID uuid.UUID) bool {
	scoped := GetScopedAreaID(c)
	if scoped == nil {
		return true
	}
	return *scoped == areaID
}

// RequireAreaParamAccess restricts routes carrying an area ID path parameter
// to the caller's area scope. Invalid IDs fall through to the handler, which
// rejects them with its own validation error.
func RequireAreaParamAccess(param string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		areaID, err := uuid.Parse(c.Param(param))
		if err != nil {
			c.Next()
			return
		}

		if !AreaAccessAllowed(c, areaID) {
			if logger != nil {
				logger.Warn("Area scope denied",
					zap.String("area_id", areaID.String()),
					zap.String("user_id", GetJWTUserID(c)),
				)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "AREA_SCOPE_NOT_ALLOWED",
					"message": "You don't have access to this area",
				},
			})
			return
		}

		c.Next()
	}
}
