package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manzapp/manz/backend/internal/mocks"
	"github.com/manzapp/manz/backend/internal/models"
	"github.com/manzapp/manz/backend/internal/service"
	"github.com/manzapp/manz/backend/internal/testhelpers"
	"github.com/manzapp/manz/backend/internal/types"
)

func TestListIngredientsHandler(t *testing.T) {
	router, db := setupTestRouter(t)
	user, token := testhelpers.LoginTestUser(t, db, "shopper@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, user.ID, "Omelette",
		testhelpers.Line("egg", 2, "units"), testhelpers.Line("butter", 10, "grams"))

	start := time.Date(2030, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Meal{
		UserID:    user.ID,
		RecipeID:  recipe.ID,
		StartDate: start,
		EndDate:   start.Add(time.Hour),
	}).Error)

	w := performRequest(router, http.MethodGet, "/item/?end_date=2030-03-02", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entries := decode[[]types.IngredientEntry](t, w)
	require.Len(t, entries, 2)
	assert.Equal(t, "egg", entries[0].Item.Name)
	assert.Equal(t, 10.0, entries[1].Quantity)

	w = performRequest(router, http.MethodGet, "/item/?end_date=2030-03-01T08:30:00Z", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]types.IngredientEntry](t, w))

	t.Run("missing cutoff", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/item/", nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "end_date is required", decode[ErrorResponse](t, w).Error)
	})

	t.Run("malformed cutoff", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/item/?end_date=next-week", nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid date format", decode[ErrorResponse](t, w).Error)
	})

	t.Run("single item", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, fmt.Sprintf("/item/%d/", entries[0].Item.ID), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "egg", decode[models.Item](t, w).Name)

		w = performRequest(router, http.MethodGet, "/item/999/", nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func uploadRequest(t *testing.T, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/item/image/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Token good")
	return req
}

func TestUploadImageHandler(t *testing.T) {
	authService := new(mocks.MockAuthService)
	authService.On("ValidateToken", mock.Anything, "good").Return(&types.TokenClaims{UserID: 1}, nil)

	png := []byte("\x89PNG\r\n\x1a\n" + "rest-of-image")

	t.Run("stores the image", func(t *testing.T) {
		images := new(mocks.MockImageService)
		images.On("UploadItemImage", mock.Anything, png).
			Return("https://bucket.s3.amazonaws.com/item-images/abc.png", nil).Once()

		router := gin.New()
		NewItemHandler(new(mocks.MockItemService), images, authService).RegisterRoutes(router.Group(""))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, png))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "https://bucket.s3.amazonaws.com/item-images/abc.png", decode[types.ImageUploadResponse](t, w).ImageURL)
		images.AssertExpectations(t)
	})

	t.Run("unsupported type", func(t *testing.T) {
		images := new(mocks.MockImageService)
		images.On("UploadItemImage", mock.Anything, mock.Anything).Return("", service.ErrUnsupportedImage).Once()

		router := gin.New()
		NewItemHandler(new(mocks.MockItemService), images, authService).RegisterRoutes(router.Group(""))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, []byte("plain text")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("too large", func(t *testing.T) {
		images := new(mocks.MockImageService)

		router := gin.New()
		NewItemHandler(new(mocks.MockItemService), images, authService).RegisterRoutes(router.Group(""))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, bytes.Repeat([]byte{0}, service.MaxImageSize+1)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		images.AssertNotCalled(t, "UploadItemImage", mock.Anything, mock.Anything)
	})

	t.Run("storage not configured", func(t *testing.T) {
		router := gin.New()
		NewItemHandler(new(mocks.MockItemService), nil, authService).RegisterRoutes(router.Group(""))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, png))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
