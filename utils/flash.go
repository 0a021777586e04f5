package utils

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie    = "flash"
	ctxFlashes     = "flashes"
	ctxFlashRead   = "flashes_read"
	ctxFlashSecure = "flashes_secure"
)

// FlashMiddleware loads messages carried over from the previous response.
// secure should match the session cookie setting.
func FlashMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxFlashSecure, secure)
		if raw, err := c.Cookie(flashCookie); err == nil && raw != "" {
			if msgs := decodeFlashes(raw); len(msgs) > 0 {
				c.Set(ctxFlashes, msgs)
			}
		}
		c.Next()
	}
}

// AddFlash queues a one-time notice for the next rendered page.
func AddFlash(c *gin.Context, msg string) {
	c.Set(ctxFlashes, append(pendingFlashes(c), msg))
}

// Flashes returns and consumes every pending notice.
func Flashes(c *gin.Context) []string {
	msgs := pendingFlashes(c)
	c.Set(ctxFlashes, []string(nil))
	if _, err := c.Cookie(flashCookie); err == nil && !c.GetBool(ctxFlashRead) {
		clearFlashCookie(c)
	}
	c.Set(ctxFlashRead, true)
	return msgs
}

func pendingFlashes(c *gin.Context) []string {
	v, ok := c.Get(ctxFlashes)
	if !ok {
		return nil
	}
	msgs, _ := v.([]string)
	return msgs
}

func persistFlashes(c *gin.Context) {
	msgs := pendingFlashes(c)
	if len(msgs) == 0 {
		return
	}
	b, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(b), 60, "/", "", c.GetBool(ctxFlashSecure), true)
}

func clearFlashCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", c.GetBool(ctxFlashSecure), true)
}

func decodeFlashes(raw string) []string {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var msgs []string
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil
	}
	return msgs
}
