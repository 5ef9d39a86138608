package api

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/placescout/placescout/pkg/sdk"
	"github.com/placescout/placescout/pkg/utils"

	health_module "github.com/placescout/placescout/internal/api/modules/health"
	search_module "github.com/placescout/placescout/internal/api/modules/search"
)

func Start(cfg *utils.Config) {
	// Initialized configuration settings
	port := cfg.GetInt("API_PORT", 5001)

	// Build the engine, giving up early when a module cannot initialize
	engine, err := NewEngine(cfg)
	if err != nil {
		log.Fatal("[API-MAIN]: Failed to set up server: ", err)
	}

	// Then after performing initial setup, start the server
	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}

// NewEngine builds the gin engine with all app level settings and module
// routes registered
func NewEngine(cfg *utils.Config) (*gin.Engine, error) {
	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(noRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Serve the search page at the root
	engine.StaticFile("/", filepath.Join(cfg.GetWithDefault("STATIC_DIR", "./static"), "index.html"))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)

	search_module.RegisterRoutes(baseGroup)
	if err := search_module.Init(cfg); err != nil {
		return nil, err
	}

	return engine, nil
}

// Answer unknown paths with the uniform error body
func noRouteHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Route not found"})
}
