package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manzapp/manz/backend/internal/testhelpers"
)

func TestHealthCheck(t *testing.T) {
	router, db := setupTestRouter(t)

	for _, path := range []string{"/health", "/api/health"} {
		w := performRequest(router, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := performRequest(router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode[map[string]string](t, w)["status"])
}

func TestRateLimitStatusWithoutRedis(t *testing.T) {
	router, db := setupTestRouter(t)
	_, token := testhelpers.LoginTestUser(t, db, "limits@example.com")

	w := performRequest(router, http.MethodGet, "/rate-limit/", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode[map[string]interface{}](t, w)["enabled"])
}
