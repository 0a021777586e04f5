package route

import (
	"time"

	"cafedir/config"
	"cafedir/controller"
	"cafedir/logger"
	"cafedir/metrics"
	"cafedir/templates"
	"cafedir/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewRouter builds the engine with its middleware chain and every route.
func NewRouter(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*gin.Engine, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	sessions := utils.NewSessionManager(cfg.Session)
	h := controller.NewHandler(db, sessions, m, cfg.Currency.Symbol)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(
		utils.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		m.GinMiddleware(),
		utils.SecurityHeaders(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		utils.FlashMiddleware(cfg.Session.Secure),
		utils.SessionMiddleware(sessions, db),
	)

	CafeRoutes(router, h)
	router.GET("/metrics", m.Handler())

	return router, nil
}

func CafeRoutes(router *gin.Engine, h *controller.Handler) {
	router.GET("/", h.Home)
	router.GET("/about", h.About)
	router.GET("/contact", h.Contact)
	router.GET("/cafe/:id", h.GetCafeByID)
	router.GET("/cafes/export.xlsx", h.ExportCafes)
	router.Match([]string{"GET", "POST"}, "/search", h.Search)
	router.Match([]string{"GET", "POST"}, "/register", h.Register)
	router.Match([]string{"GET", "POST"}, "/login", h.Login)
	router.GET("/logout", h.Logout)

	authed := router.Group("/")
	authed.Use(utils.LoginRequired())
	{
		authed.Match([]string{"GET", "POST"}, "/add_cafe", h.AddCafe)
		authed.POST("/add_cafe/excel", h.BulkAddCafes)
		authed.Match([]string{"GET", "POST"}, "/edit_cafe/:id", h.EditCafe)
	}

	router.GET("/healthz", h.Healthz)
	router.GET("/readyz", h.Readyz)
	router.NoRoute(h.NotFound)
}
