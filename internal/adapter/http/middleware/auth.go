package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
	"github.com/DeTr1ll/Task-Manager/pkg/apierrors"
)

const (
	// SessionCookie carries the signed session token for browser flows.
	SessionCookie = "session"

	userIDKey = "user_id"
)

// RequireSession guards browser pages: anonymous requests are redirected to
// the login page with the original URL (including any pending Telegram
// confirmation query) preserved in the next parameter.
func RequireSession(auth ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authenticate(c, auth)
		if !ok {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/login?next="+next)
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RequireAuth guards JSON surfaces with a 401 envelope instead of a redirect.
func RequireAuth(auth ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authenticate(c, auth)
		if !ok {
			lang := GetLang(c)
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user set by the auth middleware.
func CurrentUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint64)
	return userID, ok
}

func authenticate(c *gin.Context, auth ports.AuthService) (uint64, bool) {
	token := sessionToken(c)
	if token == "" {
		return 0, false
	}
	userID, err := auth.UserIDFromToken(token)
	if err != nil {
		return 0, false
	}
	return userID, true
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
