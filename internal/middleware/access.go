package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/access"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/session"
)

// AccessControl applies the navigation decision table to page routes.
func AccessControl() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := access.Request{Path: c.Request.URL.Path}
		if tc, err := c.Cookie(session.TokenCookie); err == nil && tc != "" {
			req.HasToken = true
		}
		if uc, err := c.Request.Cookie(session.UserCookie); err == nil {
			req.UserCookie = uc.Value
		}

		d := access.Decide(req)
		metrics.RecordAccessDecision(string(d.Action))

		if d.Action == access.Redirect {
			c.Redirect(http.StatusTemporaryRedirect, d.Location)
			c.Abort()
			return
		}
		c.Next()
	}
}
