package utils

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"cafedir/config"
	"cafedir/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSession = errors.New("invalid session token")

// Identity is the authenticated user bound to a session cookie.
type Identity struct {
	UserID    uint
	Email     string
	ExpiresAt time.Time
}

// SessionManager issues and verifies the signed token kept in the session
// cookie.
type SessionManager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewSessionManager(cfg config.SessionConfig) *SessionManager {
	return &SessionManager{
		secret:     []byte(cfg.Secret),
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
		now:        time.Now,
	}
}

func (m *SessionManager) GenerateToken(userID uint, email string) (string, time.Time, error) {
	expiresAt := m.now().Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    userID,
		"email": email,
		"exp":   expiresAt.Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *SessionManager) ValidateToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	idFloat, ok := claims["id"].(float64)
	if !ok || idFloat <= 0 {
		return nil, fmt.Errorf("%w: id not found or invalid type", ErrInvalidSession)
	}
	email, _ := claims["email"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: invalid or missing expiration claim", ErrInvalidSession)
	}

	return &Identity{UserID: uint(idFloat), Email: email, ExpiresAt: exp.Time}, nil
}

// NeedsRefresh reports whether less than half of the session lifetime is left.
func (m *SessionManager) NeedsRefresh(id *Identity) bool {
	return id.ExpiresAt.Sub(m.now()) < m.ttl/2
}

// Login binds the browser session to user.
func (m *SessionManager) Login(c *gin.Context, user *model.User) error {
	return m.issue(c, user.ID, user.Email)
}

// Logout revokes the session binding held by the browser.
func (m *SessionManager) Logout(c *gin.Context) {
	m.setCookie(c, "", -1)
}

func (m *SessionManager) issue(c *gin.Context, userID uint, email string) error {
	token, _, err := m.GenerateToken(userID, email)
	if err != nil {
		return err
	}
	m.setCookie(c, token, int(m.ttl.Seconds()))
	c.Set(ctxIdentity, &Identity{UserID: userID, Email: email, ExpiresAt: m.now().Add(m.ttl)})
	return nil
}

func (m *SessionManager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, maxAge, "/", "", m.secure, true)
	if maxAge < 0 {
		c.Set(ctxIdentity, nil)
	}
}
