package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skobayashi/taskdeck/internal/constants"
	apierrors "github.com/skobayashi/taskdeck/internal/errors"
	"github.com/skobayashi/taskdeck/internal/models"
	"github.com/skobayashi/taskdeck/internal/services"
)

// RequireAuth verifies the bearer token and attaches the resolved user
// (password hash excluded from serialization) to the request context.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "Not authorized, no token")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")

		user, err := authService.Verify(token)
		if err != nil {
			apierrors.Unauthorized(c, "Not authorized, token failed")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from the request context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, false
	}
	return user, true
}
