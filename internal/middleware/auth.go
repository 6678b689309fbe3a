package middleware

import (
	"context"
	"errors"

	"socialfeed/internal/log"
	"socialfeed/internal/models"
	"socialfeed/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CurrentUserKey = "user"
	SessionUserKey = "user_id"
)

// LoadUser resolves the session user, if any, and stores it in the context
// under CurrentUserKey without its password.
func LoadUser(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(SessionUserKey).(string)
		if !ok || userID == "" {
			c.Next()
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		switch {
		case err == nil:
			safe := user.WithoutPassword()
			c.Set(CurrentUserKey, &safe)
		case errors.Is(err, store.ErrNotFound), errors.Is(err, context.Canceled):
			// stale cookie or client gone
		default:
			log.Warnf("load session user %s: %v", userID, err)
		}
		c.Next()
	}
}

// CurrentUser returns the user set by LoadUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CurrentUserID is "" for anonymous requests.
func CurrentUserID(c *gin.Context) string {
	if user, ok := CurrentUser(c); ok {
		return user.ID
	}
	return ""
}
