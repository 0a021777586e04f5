package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

func TestFlashes_SurviveRedirect(t *testing.T) {
	r := gin.New()
	r.Use(FlashMiddleware(false))
	r.GET("/set", func(c *gin.Context) {
		AddFlash(c, "Hello")
		Redirect(c, "/show")
	})
	r.GET("/show", func(c *gin.Context) {
		c.String(http.StatusOK, strings.Join(Flashes(c), "|"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/show", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "Hello", w.Body.String())

	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, flashCookie, cleared[0].Name)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestFlashes_SecureCookie(t *testing.T) {
	r := gin.New()
	r.Use(FlashMiddleware(true))
	r.GET("/set", func(c *gin.Context) {
		AddFlash(c, "Hello")
		Redirect(c, "/show")
	})
	r.GET("/show", func(c *gin.Context) {
		c.String(http.StatusOK, strings.Join(Flashes(c), "|"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/show", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.True(t, cleared[0].Secure)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestFlashes_SameRequest(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	AddFlash(c, "one")
	AddFlash(c, "two")
	assert.Equal(t, []string{"one", "two"}, Flashes(c))
	assert.Empty(t, Flashes(c))
}

func TestDecodeFlashes_Garbage(t *testing.T) {
	assert.Nil(t, decodeFlashes("%%%"))
	assert.Nil(t, decodeFlashes("bm90LWpzb24"))
}
