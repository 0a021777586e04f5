package utils

import (
	"net/http"
	"net/url"
	"strings"

	"cafedir/database"
	"cafedir/logger"
	"cafedir/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	ctxIdentity     = "identity"
	requestIDHeader = "X-Request-Id"

	LoginRequiredMessage = "Please log in to access this page."
)

// SessionMiddleware resolves the current identity from the session cookie on
// every request. A bad or expired token, or one naming an account that no
// longer exists, makes the request anonymous and drops the cookie.
func SessionMiddleware(m *SessionManager, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		id, err := m.ValidateToken(token)
		if err != nil {
			logger.FromGin(c).Debug("dropping session cookie", zap.Error(err))
			m.Logout(c)
			c.Next()
			return
		}

		found, err := database.Exists[model.User](c.Request.Context(), db, "id = ?", id.UserID)
		if err != nil {
			logger.FromGin(c).Error("session lookup failed", zap.Uint("user_id", id.UserID), zap.Error(err))
			c.Next()
			return
		}
		if !found {
			logger.FromGin(c).Info("dropping session for unknown user", zap.Uint("user_id", id.UserID))
			m.Logout(c)
			c.Next()
			return
		}

		c.Set(ctxIdentity, id)
		if m.NeedsRefresh(id) {
			if err := m.issue(c, id.UserID, id.Email); err != nil {
				logger.FromGin(c).Error("session refresh failed", zap.Error(err))
			}
		}

		c.Next()
	}
}

// CurrentIdentity returns the authenticated identity, or nil when anonymous.
func CurrentIdentity(c *gin.Context) *Identity {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*Identity)
	return id
}

func IsAuthenticated(c *gin.Context) bool {
	return CurrentIdentity(c) != nil
}

// LoginRequired sends anonymous visitors to the login page before the
// protected handler runs.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.Next()
			return
		}

		AddFlash(c, LoginRequiredMessage)
		Redirect(c, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// SafeNext returns next when it is a local path, otherwise "/".
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set("request_id", id)
		c.Next()
	}
}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "same-origin")
		c.Next()
	}
}

// Redirect persists pending flash messages and answers 302.
func Redirect(c *gin.Context, location string) {
	persistFlashes(c)
	c.Redirect(http.StatusFound, location)
}
