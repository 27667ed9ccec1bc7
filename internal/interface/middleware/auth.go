package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/helliomastic/Movie-Final-Recom/internal/application"
	"github.com/helliomastic/Movie-Final-Recom/pkg/helpers"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserNameKey  = "userName"
)

// Auth validates the session cookie and ensures an active server-side session.
// These are browser flows, so failures redirect to /login instead of a 401 body.
// It sets userID, userName, and userEmail in the Gin context on success.
func Auth(sessions application.SessionStore, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), claims.UserID)
		if err != nil || sess == nil || sess.SID != claims.SessionID {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, sess.UserID)
		c.Set(CtxUserNameKey, sess.Name)
		c.Set(CtxUserEmailKey, sess.Email)
		c.Next()
	}
}
