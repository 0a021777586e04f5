package controller

import (
	"net/http"
	"net/url"
	"strconv"

	"cafedir/logger"
	"cafedir/metrics"
	"cafedir/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler carries the dependencies every route needs. Nothing is read from
// package globals so each handler can be exercised with its own store.
type Handler struct {
	db       *gorm.DB
	sessions *utils.SessionManager
	metrics  *metrics.Metrics
	currency string
}

func NewHandler(db *gorm.DB, sessions *utils.SessionManager, m *metrics.Metrics, currency string) *Handler {
	return &Handler{
		db:       db,
		sessions: sessions,
		metrics:  m,
		currency: currency,
	}
}

// render adds the values every view relies on: the viewer's login state and
// pending flash messages.
func (h *Handler) render(c *gin.Context, status int, view string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["logged_in"] = utils.IsAuthenticated(c)
	data["flashes"] = utils.Flashes(c)
	c.HTML(status, view, data)
}

func (h *Handler) notFound(c *gin.Context, message string) {
	h.render(c, http.StatusNotFound, "not_found.html", gin.H{"title": "Not found", "message": message})
}

func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	logger.FromGin(c).Error(msg, zap.Error(err))
	_ = c.Error(err)
	h.render(c, http.StatusInternalServerError, "error.html", gin.H{"title": "Error"})
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(c *gin.Context) {
	h.notFound(c, "")
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func submitted(c *gin.Context) bool {
	return c.Request.Method == http.MethodPost
}

func postValues(c *gin.Context) url.Values {
	if err := c.Request.ParseForm(); err != nil {
		logger.FromGin(c).Debug("unparsable form body", zap.Error(err))
		return url.Values{}
	}
	return c.Request.PostForm
}
