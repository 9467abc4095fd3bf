package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sweetshop/apperr"
	"sweetshop/controllers"
	"sweetshop/models"
	"sweetshop/policy"
	"sweetshop/token"
)

const userKey = "current_user"

// Authenticate resolves the bearer token to a user record and stores
// it in the request context. Inactive accounts are rejected here, so
// downstream handlers only ever see active callers.
func Authenticate(db *gorm.DB, maker *token.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			c.JSON(http.StatusUnauthorized, controllers.ErrorResponse{Error: "No authorization header provided"})
			c.Abort()
			return
		}
		raw = strings.TrimPrefix(raw, "Bearer ")

		claims, err := maker.Validate(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, controllers.ErrorResponse{Error: err.Error()})
			c.Abort()
			return
		}

		user, err := models.GetUserByID(db, claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, controllers.ErrorResponse{Error: "Authorization failed"})
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, controllers.ErrorResponse{Error: "Account is inactive"})
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// Authorize consults the access policy for op using the caller set by
// Authenticate, or no caller at all for public routes.
func Authorize(op policy.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		var caller *models.User
		if user, ok := CurrentUser(c); ok {
			caller = &user
		}
		if err := policy.Allow(caller, op); err != nil {
			status := http.StatusForbidden
			if errors.Is(err, apperr.ErrUnauthorized) {
				status = http.StatusUnauthorized
			}
			c.JSON(status, controllers.ErrorResponse{Error: err.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated caller, if any.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
