package response

import (
	"log"
	"net/http"

	"acadly.app/portal/internal/entity"
	"acadly.app/portal/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileKey is the context key under which the auth middleware stores
// the authenticated profile.
const ProfileKey = "profile"

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	profile, err := GetProfile(c)
	if err != nil {
		return uuid.Nil, err
	}
	return profile.ID, nil
}

// GetProfile retrieves the authenticated profile loaded by the auth middleware
func GetProfile(c *gin.Context) (*entity.Profile, error) {
	v, exists := c.Get(ProfileKey)
	if !exists {
		return nil, apperror.ErrUnauthorized
	}

	profile, ok := v.(*entity.Profile)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	return profile, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors, keep the client message generic
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
