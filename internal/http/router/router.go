// Package router assembles the gin engine from the application modules.
package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	apphttp "lead_triage_backend/internal/http"
	"lead_triage_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New builds the gin engine: global middleware, health probe, optional
// static frontend, and every module's routes under /api/v1.
func New(app *apphttp.App) *gin.Engine {
	if !strings.EqualFold(app.Config.GetEnv(), "development") {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app.Config))

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	mountFrontend(engine, app)

	v1 := engine.Group("/api/v1")
	routerCtx := &apphttp.RouterContext{
		Engine:            engine,
		V1:                v1,
		IngestRateLimiter: httpkit.NewIngestRateLimiter(app.Logger),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(routerCtx)
		app.Logger.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func corsMiddleware(cfg apphttp.RouterConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", httpkit.RequestIDHeader}

	if cfg.GetCORSAllowAll() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.GetCORSOrigins()
		corsConfig.AllowCredentials = cfg.GetCORSAllowCreds()
	}

	return cors.New(corsConfig)
}

// mountFrontend serves the single-page frontend when FRONTEND_DIR is set.
// The backend works headless without it.
func mountFrontend(engine *gin.Engine, app *apphttp.App) {
	dir := app.Config.GetFrontendDir()
	if dir == "" {
		return
	}

	staticDir := filepath.Join(dir, "static")
	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		engine.Static("/static", staticDir)
	} else {
		app.Logger.Warn("static directory not found", "dir", staticDir)
	}

	indexPath := filepath.Join(dir, "templates", "index.html")
	if _, err := os.Stat(indexPath); err == nil {
		engine.LoadHTMLFiles(indexPath)
		engine.GET("/", func(c *gin.Context) {
			c.HTML(http.StatusOK, "index.html", nil)
		})
		return
	}

	app.Logger.Warn("index template not found", "path", indexPath)
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "Template missing.")
	})
}
