package search

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the routes for the search module
func RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/search", runSearch)
	g.POST("/search/more", runSearchMore)
	g.GET("/download/:sessionId", downloadResults)
}
