package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "architect_session"
	SessionHeader = "X-Session-Id"
	sessionKey    = "session_id"
)

// SessionMiddleware binds every request to a workspace session. The ID comes
// from the X-Session-Id header, then the session cookie; a missing or
// malformed ID gets a fresh UUID and a new cookie.
func SessionMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sid == "" {
			sid, _ = c.Cookie(SessionCookie)
		}
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     SessionCookie,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
		c.Writer.Header().Set(SessionHeader, sid)
		c.Set(sessionKey, sid)
		c.Next()
	}
}

// SessionID returns the ID set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
