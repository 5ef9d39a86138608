package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placescout/placescout/pkg/sdk"
)

// Report liveness of the API
func getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, sdk.HealthResponse{Status: "ok"})
}
