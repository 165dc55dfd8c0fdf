package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manzapp/manz/backend/internal/mocks"
	"github.com/manzapp/manz/backend/internal/models"
	"github.com/manzapp/manz/backend/internal/testhelpers"
)

func registration(email string) map[string]string {
	return map[string]string{
		"username":  "",
		"email":     email,
		"password1": "pw12345678",
		"password2": "pw12345678",
	}
}

func TestRegisterHandler(t *testing.T) {
	router, db := setupTestRouter(t)

	w := performRequest(router, http.MethodPost, "/register/", registration("alice@example.com"), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "User registered successfully", decode[MessageResponse](t, w).Message)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "alice@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	t.Run("duplicate email", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/register/", registration("alice@example.com"), "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, decode[ValidationResponse](t, w).Message)
	})

	t.Run("invalid email", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/register/", registration("not-an-email"), "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[ValidationResponse](t, w).Message, "Email: Enter A Valid Email Address.")
	})

	t.Run("no email", func(t *testing.T) {
		body := registration("")
		delete(body, "email")
		w := performRequest(router, http.MethodPost, "/register/", body, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[ValidationResponse](t, w).Message, "Email: This Field Is Required.")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/register/", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegisterAcceptsFormBody(t *testing.T) {
	router, _ := setupTestRouter(t)

	form := url.Values{}
	form.Set("email", "form@example.com")
	form.Set("password1", "pw12345678")
	form.Set("password2", "pw12345678")

	req := httptest.NewRequest(http.MethodPost, "/api/register/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestLoginHandler(t *testing.T) {
	router, db := setupTestRouter(t)
	testhelpers.CreateTestUser(t, db, "bob@example.com", "pw12345678")

	creds := map[string]string{"email": "bob@example.com", "password": "pw12345678"}

	first := performRequest(router, http.MethodPost, "/login/", creds, "")
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	token := decode[TokenResponse](t, first).Token
	require.NotEmpty(t, token)

	second := performRequest(router, http.MethodPost, "/login/", creds, "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, token, decode[TokenResponse](t, second).Token)

	t.Run("wrong password", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/login/", map[string]string{"email": "bob@example.com", "password": "nope"}, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Invalid email or password.", decode[ErrorResponse](t, w).Error)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/login/", map[string]string{"email": "ghost@example.com", "password": "pw12345678"}, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/login/", map[string]string{"email": "bob@example.com"}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email and password are required.", decode[ErrorResponse](t, w).Error)
	})
}

func TestLogoutHandler(t *testing.T) {
	router, db := setupTestRouter(t)
	_, token := testhelpers.LoginTestUser(t, db, "carol@example.com")

	w := performRequest(router, http.MethodPost, "/logout/", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = performRequest(router, http.MethodGet, "/recipe/", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodPost, "/logout/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerInternalError(t *testing.T) {
	authService := new(mocks.MockAuthService)
	authService.On("Register", mock.Anything, mock.AnythingOfType("types.RegisterRequest")).
		Return(nil, errors.New("connection reset"))

	router := gin.New()
	NewAuthHandler(authService, nil).RegisterRoutes(router.Group(""))

	w := performRequest(router, http.MethodPost, "/register/", registration("dave@example.com"), "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decode[ErrorResponse](t, w).Error)
	authService.AssertExpectations(t)
}
