package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafedir/config"
	"cafedir/database/databasetest"
	"cafedir/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestManager() *SessionManager {
	return NewSessionManager(config.SessionConfig{
		Secret:     "test-secret",
		TTL:        time.Hour,
		CookieName: "session",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestManager()

	token, exp, err := m.GenerateToken(7, "a@x.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 2*time.Second)

	id, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id.UserID)
	assert.Equal(t, "a@x.com", id.Email)
}

func TestValidateToken_Rejects(t *testing.T) {
	m := newTestManager()
	token, _, err := m.GenerateToken(7, "a@x.com")
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		other := NewSessionManager(config.SessionConfig{Secret: "other", TTL: time.Hour, CookieName: "session"})
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("expired", func(t *testing.T) {
		late := newTestManager()
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestNeedsRefresh(t *testing.T) {
	m := newTestManager()
	assert.False(t, m.NeedsRefresh(&Identity{ExpiresAt: time.Now().Add(50 * time.Minute)}))
	assert.True(t, m.NeedsRefresh(&Identity{ExpiresAt: time.Now().Add(10 * time.Minute)}))
}

// newSessionStore returns a store holding the account with id 3.
func newSessionStore(t *testing.T) *gorm.DB {
	t.Helper()
	db := databasetest.New(t)
	require.NoError(t, db.Create(&model.User{Model: gormModel(3), Email: "a@x.com", Password: "x"}).Error)
	return db
}

func newSessionRouter(m *SessionManager, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(FlashMiddleware(false), SessionMiddleware(m, db))
	r.GET("/login", func(c *gin.Context) {
		_ = m.Login(c, &model.User{Model: gormModel(3), Email: "a@x.com"})
		c.Status(http.StatusOK)
	})
	r.GET("/logout", func(c *gin.Context) {
		m.Logout(c)
		c.Status(http.StatusOK)
	})
	r.GET("/whoami", func(c *gin.Context) {
		if id := CurrentIdentity(c); id != nil {
			c.String(http.StatusOK, id.Email)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/private", LoginRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "secret")
	})
	return r
}

func TestSessionMiddleware(t *testing.T) {
	m := newTestManager()
	r := newSessionRouter(m, newSessionStore(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	session := cookies[0]
	assert.Equal(t, "session", session.Name)
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "a@x.com", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "tampered"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "anonymous", w.Body.String())
	require.NotEmpty(t, w.Result().Cookies())
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)
}

func TestSessionMiddleware_UnknownUser(t *testing.T) {
	m := newTestManager()
	r := newSessionRouter(m, newSessionStore(t))

	token, _, err := m.GenerateToken(99, "gone@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "anonymous", w.Body.String())
	require.NotEmpty(t, w.Result().Cookies())
	assert.Equal(t, "session", w.Result().Cookies()[0].Name)
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestLoginRequired(t *testing.T) {
	m := newTestManager()
	r := newSessionRouter(m, newSessionStore(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fprivate", w.Header().Get("Location"))

	var flash *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookie {
			flash = c
		}
	}
	require.NotNil(t, flash)
	assert.Equal(t, []string{LoginRequiredMessage}, decodeFlashes(flash.Value))

	token, _, err := m.GenerateToken(3, "a@x.com")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", w.Body.String())
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/add_cafe", SafeNext("/add_cafe"))
	assert.Equal(t, "/", SafeNext(""))
	assert.Equal(t, "/", SafeNext("https://evil.example"))
	assert.Equal(t, "/", SafeNext("//evil.example"))
	assert.Equal(t, "/", SafeNext("/\\evil.example"))
}
