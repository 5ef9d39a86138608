package search

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/placescout/placescout/internal/stores/session"
	"github.com/placescout/placescout/pkg/export"
	"github.com/placescout/placescout/pkg/places"
	"github.com/placescout/placescout/pkg/sdk"
)

// Run a new text search and open a session for its results
func runSearch(c *gin.Context) {
	var req sdk.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Error: "Search query is required"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Error: "Search query is required"})
		return
	}

	resp, err := searchService.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Fetch the next page of results for an existing session
func runSearchMore(c *gin.Context) {
	var req sdk.SearchMoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Error: "Session id is required"})
		return
	}

	resp, err := searchService.More(c.Request.Context(), req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Download the session's accumulated results as a CSV attachment
func downloadResults(c *gin.Context) {
	sess, err := searchService.Export(c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if sess.Count() == 0 {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Error: "No results to export"})
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, sess.Places); err != nil {
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to encode results"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sess.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// respondError translates service errors into the flat {"error"} body and
// its matching status code
func respondError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, errMalformedSessionID), errors.Is(err, places.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrUnknownSession):
		status = http.StatusNotFound
	case errors.Is(err, places.ErrQuotaExceeded):
		status = http.StatusTooManyRequests
	}

	c.JSON(status, sdk.ErrorResponse{Error: err.Error()})
}
