package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"urbancab/internal/auth"
	"urbancab/internal/domain"
	"urbancab/internal/repository"
	"urbancab/internal/service"
)

// callerKey is the gin context key the authenticated caller is stored under.
const callerKey = "caller"

// AuthMiddleware returns middleware that verifies the Bearer token and
// attaches the resolved caller to the request context. For drivers and
// dealers the profile ID is resolved once here so downstream role gates
// compare against it without further lookups.
func AuthMiddleware(tokens *auth.TokenManager, drivers repository.DriverRepository, dealers repository.DealerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		caller := service.Caller{ID: claims.UserID, Role: claims.Role}

		ctx := c.Request.Context()
		switch claims.Role {
		case domain.RoleDriver:
			driver, err := drivers.GetByUserID(ctx, claims.UserID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			if driver != nil {
				caller.ProfileID = driver.ID
			}
		case domain.RoleDealer:
			dealer, err := dealers.GetByUserID(ctx, claims.UserID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			if dealer != nil {
				caller.ProfileID = dealer.ID
			}
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireRole returns middleware that rejects callers outside the given roles.
// It must run after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		for _, role := range roles {
			if caller.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

// CallerFrom extracts the authenticated caller from the gin context.
func CallerFrom(c *gin.Context) (service.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return service.Caller{}, false
	}
	caller, ok := v.(service.Caller)
	return caller, ok
}
