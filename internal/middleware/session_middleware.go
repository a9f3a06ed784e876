package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/hardwarehub/internal/app/models/dto"
	"github.com/emre/hardwarehub/internal/app/session"
)

// SessionMiddleware gates routes on the process-wide session state
type SessionMiddleware struct {
	sessions session.Reader
}

// NewSessionMiddleware creates the session gate middleware
func NewSessionMiddleware(sessions session.Reader) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// RequireLogin aborts anonymous requests
func (m *SessionMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.sessions.Current().IsLoggedIn {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeLoginRequired, "You must be logged in"))
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts requests whose session does not carry the
// administrator profile type.
func (m *SessionMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := m.sessions.Current()
		if !sess.IsLoggedIn || !sess.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrorCodeForbidden, "Administrator access required"))
			return
		}
		c.Next()
	}
}
