package middleware

import (
	"net/http"

	profileRepo "acadly.app/portal/internal/modules/profile/repository"
	"acadly.app/portal/pkg/response"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey is the session key holding the authenticated profile id.
const UserIDKey = "user_id"

type AuthMiddleware struct {
	profiles profileRepo.ProfileRepository
}

func NewAuthMiddleware(profiles profileRepo.ProfileRepository) *AuthMiddleware {
	return &AuthMiddleware{profiles: profiles}
}

// RequireAuth resolves the session to a profile. The role is re-read
// from the database on every request, never trusted from the cookie.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		v := session.Get(UserIDKey)
		if v == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		idStr, ok := v.(string)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(idStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		profile, err := m.profiles.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}

		c.Set(response.ProfileKey, profile)
		c.Next()
	}
}

// RequireRole gates a route to profiles whose role is in the given set.
// It must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := response.GetProfile(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if profile.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		c.Abort()
	}
}
