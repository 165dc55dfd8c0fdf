package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/manzapp/manz/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestRouter wires the real services over an in-memory database
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := testhelpers.SetupSQLiteDB(t)
	router := gin.New()
	SetupAPI(router, NewDependencies(db, testhelpers.TestTokenSecret, nil, nil))
	return router, db
}

// performRequest sends body as JSON, with a token header when token is set
func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func recipeBody(title string, lines ...map[string]interface{}) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(lines))
	items = append(items, lines...)
	return map[string]interface{}{
		"title":        title,
		"recipe_items": items,
	}
}

func line(name string, quantity float64, quantityType string) map[string]interface{} {
	return map[string]interface{}{
		"item":     map[string]interface{}{"name": name, "quantity_type": quantityType},
		"quantity": quantity,
	}
}

