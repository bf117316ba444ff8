package middleware

import (
	"errors"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
)

const ContextSession = "session"

// RequireSession rebuilds the session from cookies and puts it on both the
// gin context and the request context, where the API client picks up the
// bearer token.
func RequireSession(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := mgr.Current(c.Request)
		if err != nil {
			code := "missing_session"
			if errors.Is(err, session.ErrExpired) {
				code = "session_expired"
			} else if !errors.Is(err, session.ErrNoSession) {
				code = "invalid_token"
			}
			httperr.Unauthorized(c, code, "Please sign in again.")
			c.Abort()
			return
		}

		mgr.EnsureID(c.Writer, s)

		c.Set(ContextSession, s)
		c.Request = c.Request.WithContext(session.Into(c.Request.Context(), s))

		c.Next()
	}
}

// RequireRole must run after RequireSession. Only a role read from a
// verified token counts; without a JWT secret these routes stay closed.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := SessionFrom(c)
		if s == nil {
			httperr.Unauthorized(c, "missing_session", "Please sign in again.")
			c.Abort()
			return
		}
		if !s.Verified || !slices.Contains(roles, s.User.Role) {
			httperr.Forbidden(c, "forbidden", "You do not have access to this resource.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func SessionFrom(c *gin.Context) *session.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}
