package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dapodiksmk/siswa-web/internal/config"
	"github.com/dapodiksmk/siswa-web/internal/handler"
	"github.com/dapodiksmk/siswa-web/internal/middleware"
	"github.com/dapodiksmk/siswa-web/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth  *handler.AuthHandler
	Page  *handler.PageHandler
	Siswa *handler.SiswaHandler
}

// SetupRouter configures the Gin engine: middleware stack, template
// renderer, static assets, and the route table. Only the page routes are
// session-guarded; the mutating /siswa routes are open.
func SetupRouter(
	sessions *service.SessionService,
	handlers *Handlers,
	renderer multitemplate.Renderer,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	router.HTMLRender = renderer

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.RequestID())
	router.Use(middleware.Brotli())
	router.Use(middleware.LoadSession(sessions, cfg.SessionCookie, log))

	// Static assets with aggressive caching (1 year).
	static := router.Group("/public")
	static.Use(middleware.CacheControl(365 * 24 * time.Hour))
	{
		static.Static("/", cfg.StaticDir)
	}

	router.GET("/login", middleware.RejectIfSession(), handlers.Auth.ShowLogin)
	router.POST("/login", handlers.Auth.Login)
	router.POST("/logout", handlers.Auth.Logout)

	router.GET("/", middleware.RequireSession(), handlers.Page.Home)
	router.GET("/about", handlers.Page.About)

	router.GET("/siswa", middleware.RequireSession(), handlers.Siswa.List)
	router.GET("/siswa/add", middleware.RequireSession(), handlers.Siswa.ShowAdd)
	router.GET("/siswa/edit/:nisn", middleware.RequireSession(), handlers.Siswa.ShowEdit)
	router.POST("/siswa", handlers.Siswa.Create)
	router.PUT("/siswa", handlers.Siswa.Update)
	router.DELETE("/siswa", handlers.Siswa.Delete)

	return router
}
