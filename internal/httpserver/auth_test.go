package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/staffhub/staffhub/internal/events"
	"github.com/staffhub/staffhub/internal/models"
	"github.com/staffhub/staffhub/internal/repo"
	"github.com/staffhub/staffhub/internal/service"
	"github.com/staffhub/staffhub/internal/tokens"
	"github.com/staffhub/staffhub/internal/transport"
)

type serverEnv struct {
	e  *echo.Echo
	db *gorm.DB
}

func newServerEnv(t *testing.T) *serverEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Position{}))

	rp := &repo.GormRepo{DB: db}
	issuer := &tokens.Issuer{
		AccessSecret:  []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
	producer := events.NewProducer(nil, "")

	e := echo.New()
	Register(e, &Deps{
		AuthHandler: &AuthHTTP{
			Svc: &service.AuthService{Repo: rp, Tokens: issuer, Events: producer},
		},
		UserHandler: &UserHTTP{
			Svc: &service.UserService{Repo: rp},
		},
		PositionHandler: &PositionHTTP{
			Svc: &service.PositionService{Repo: rp, Events: producer},
		},
		Tokens: issuer,
	})

	return &serverEnv{e: e, db: db}
}

func (env *serverEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, env *serverEnv, username string) transport.TokenResponse {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/register", "", map[string]string{
		"username": username, "password": "pw123", "contact_number": "555-0100",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": username, "password": "pw123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	return resp
}

func TestRegisterEndpoint(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodPost, "/register", "", map[string]string{
		"username": "alice", "password": "pw123", "contact_number": "555-0100",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user created successfully", resp["message"])
	assert.NotZero(t, resp["id"])

	rec = env.do(t, http.MethodPost, "/register", "", map[string]string{
		"username": "alice", "password": "pw123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/register", "", map[string]string{
		"username": "bob",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	env := newServerEnv(t)
	registerAndLogin(t, env, "alice")

	rec := env.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": "ghost", "password": "pw123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshEndpoint_RotationIsSingleUse(t *testing.T) {
	env := newServerEnv(t)
	login := registerAndLogin(t, env, "alice")

	rec := env.do(t, http.MethodPost, "/refresh", "", map[string]string{
		"refresh_token": login.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshed transport.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	rec = env.do(t, http.MethodPost, "/refresh", "", map[string]string{
		"refresh_token": login.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshEndpoint_MissingToken(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodPost, "/refresh", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpoint_InvalidatesRefresh(t *testing.T) {
	env := newServerEnv(t)
	login := registerAndLogin(t, env, "alice")

	rec := env.do(t, http.MethodPost, "/logout", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/refresh", "", map[string]string{
		"refresh_token": login.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Idempotent.
	rec = env.do(t, http.MethodPost, "/logout", login.AccessToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutEndpoint_RequiresAuth(t *testing.T) {
	env := newServerEnv(t)

	rec := env.do(t, http.MethodPost, "/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
