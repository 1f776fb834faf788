package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NguyenHongSon4/app-02/database"
	"github.com/NguyenHongSon4/app-02/testutils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHealthRouter(t *testing.T, backend *testutils.MemoryBackend) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(context.Background(), backend, database.Options{CreateIfMissing: true})
	require.NoError(t, err)

	router := gin.New()
	RegisterHealthRoutes(router, db)
	return router
}

func TestHealthReportsCounts(t *testing.T) {
	router := setupHealthRouter(t, &testutils.MemoryBackend{})

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "memory", body["driver"])
	assert.Equal(t, float64(0), body["notes"])
}

func TestHealthReportsUnavailableBackend(t *testing.T) {
	backend := &testutils.MemoryBackend{}
	router := setupHealthRouter(t, backend)
	backend.PingErr = errors.New("connection refused")

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unavailable", body["status"])
	assert.Equal(t, "connection refused", body["message"])
}
