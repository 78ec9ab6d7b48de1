package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	accounterrors "go-workforce/internal/account/errors"
	"go-workforce/internal/auth"
	autherrors "go-workforce/internal/auth/errors"
	authMock "go-workforce/internal/auth/mock"
	"go-workforce/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupAuthRouter(t *testing.T) (*gin.Engine, *authMock.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	ctrl := gomock.NewController(t)
	svc := authMock.NewMockService(ctrl)
	h := auth.NewHandler(svc, auth.CookieConfig{MaxAge: time.Hour})

	withUser := func(c *gin.Context) {
		c.Set("user_id", "acc-1")
		c.Next()
	}

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/profile", withUser, h.Profile)
	r.PUT("/auth/avatar", withUser, h.UpdateAvatar)
	return r, svc
}

func doJSON(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r, svc := setupAuthRouter(t)
		svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(auth.AuthResponse{
			AccountResponse: auth.AccountResponse{ID: "acc-1", Role: "employer"},
			Token:           "tok",
		}, nil)

		w := doJSON(r, http.MethodPost, "/auth/register", map[string]string{
			"name": "Boss", "email": "boss@example.com", "password": "secret123", "role": "employer",
		}, map[string]string{"X-Client-Type": "mobile"})

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decode(t, w)
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), `"token":"tok"`)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("short password is a validation error", func(t *testing.T) {
		r, _ := setupAuthRouter(t)

		w := doJSON(r, http.MethodPost, "/auth/register", map[string]string{
			"name": "Boss", "email": "boss@example.com", "password": "123", "role": "employer",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeValidation, decode(t, w).Error.Code)
	})

	t.Run("duplicate email is a 400 conflict", func(t *testing.T) {
		r, svc := setupAuthRouter(t)
		svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(auth.AuthResponse{}, accounterrors.ErrEmailAlreadyRegistered)

		w := doJSON(r, http.MethodPost, "/auth/register", map[string]string{
			"name": "Boss", "email": "boss@example.com", "password": "secret123", "role": "employer",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperror.CodeConflict, decode(t, w).Error.Code)
	})
}

func TestHandler_Login(t *testing.T) {
	t.Run("web client gets cookie", func(t *testing.T) {
		r, svc := setupAuthRouter(t)
		svc.EXPECT().Login(gomock.Any(), auth.LoginRequest{Email: "ana@example.com", Password: "secret123"}).
			Return(auth.AuthResponse{Token: "tok"}, nil)

		w := doJSON(r, http.MethodPost, "/auth/login",
			map[string]string{"email": "ana@example.com", "password": "secret123"},
			map[string]string{"X-Client-Type": "web"})

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "access_token", cookies[0].Name)
		assert.Equal(t, "tok", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, 3600, cookies[0].MaxAge)
	})

	t.Run("bad credentials are generic", func(t *testing.T) {
		r, svc := setupAuthRouter(t)
		svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(auth.AuthResponse{}, autherrors.ErrInvalidCredentials)

		w := doJSON(r, http.MethodPost, "/auth/login",
			map[string]string{"email": "ana@example.com", "password": "nope"}, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decode(t, w)
		assert.Equal(t, "Invalid credentials", env.Error.Message)
	})
}

func TestHandler_Logout(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doJSON(r, http.MethodPost, "/auth/logout", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestHandler_Profile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r, svc := setupAuthRouter(t)
		svc.EXPECT().GetProfile(gomock.Any(), "acc-1").Return(auth.ProfileResponse{
			Account: auth.AccountResponse{ID: "acc-1", Role: "hr"},
		}, nil)

		w := doJSON(r, http.MethodGet, "/auth/profile", nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w).Data), `"role":"hr"`)
	})

	t.Run("account gone", func(t *testing.T) {
		r, svc := setupAuthRouter(t)
		svc.EXPECT().GetProfile(gomock.Any(), "acc-1").Return(auth.ProfileResponse{}, accounterrors.ErrAccountNotFound)

		w := doJSON(r, http.MethodGet, "/auth/profile", nil, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_UpdateAvatar(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		r, _ := setupAuthRouter(t)

		w := doJSON(r, http.MethodPut, "/auth/avatar", map[string]string{"url": "not a url"}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("updated", func(t *testing.T) {
		r, svc := setupAuthRouter(t)
		url := "https://cdn.example.com/a.png"
		svc.EXPECT().UpdateAvatar(gomock.Any(), "acc-1", auth.UpdateAvatarRequest{URL: url}).
			Return(auth.AccountResponse{ID: "acc-1", AvatarURL: &url}, nil)

		w := doJSON(r, http.MethodPut, "/auth/avatar", map[string]string{"url": url}, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w).Data), url)
	})
}
