package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placescout/placescout/internal/api/modules/search"
	"github.com/placescout/placescout/pkg/sdk"
	"github.com/placescout/placescout/pkg/utils"
)

func TestNewEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)

	staticDir := t.TempDir()
	page := []byte("<html><body>placescout</body></html>")
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), page, 0o644))

	engine, err := NewEngine(utils.NewConfig(map[string]string{
		"GOOGLE_API_KEY": "test-key",
		"STATIC_DIR":     staticDir,
	}))
	require.NoError(t, err)
	t.Cleanup(search.Shutdown)

	serve := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec
	}

	t.Run("serves the search page at the root", func(t *testing.T) {
		rec := serve(http.MethodGet, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "placescout")
	})

	t.Run("registers the api modules", func(t *testing.T) {
		rec := serve(http.MethodGet, "/api/health")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown routes get the uniform error body", func(t *testing.T) {
		rec := serve(http.MethodGet, "/api/nope")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error": "Route not found"}`, rec.Body.String())
	})

	t.Run("sdk client can reach the engine", func(t *testing.T) {
		srv := httptest.NewServer(engine)
		t.Cleanup(srv.Close)

		resp, err := sdk.NewClient(srv.URL).Health(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Status)
	})
}

func TestNewEngineMissingAPIKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	_, err := NewEngine(utils.NewConfig(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
}
