package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tracker/internal/domain/user"
	vo "github.com/orris-inc/tracker/internal/domain/user/valueobjects"
	"github.com/orris-inc/tracker/internal/infrastructure/auth"
	"github.com/orris-inc/tracker/internal/infrastructure/config"
	"github.com/orris-inc/tracker/internal/infrastructure/persistence/testdb"
	"github.com/orris-inc/tracker/internal/infrastructure/repository"
	sharedConfig "github.com/orris-inc/tracker/internal/shared/config"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testdb.New(t)

	admin, err := user.NewUser("admin", "Ada", "Admin", nil)
	require.NoError(t, err)
	pw, err := vo.NewPassword("correct-horse")
	require.NoError(t, err)
	require.NoError(t, admin.SetPassword(pw, auth.NewBcryptPasswordHasher(4)))
	admin.SetSuperuser(true)
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), admin))

	cfg := &config.Config{
		Server: sharedConfig.ServerConfig{BaseURL: "http://tracker.test", AllowedOrigins: []string{"*"}},
		Auth: sharedConfig.AuthConfig{
			BcryptCost: 4,
			JWT:        sharedConfig.JWTConfig{Secret: "test-secret", Issuer: "tracker", AccessExpMinutes: 60},
		},
		Activity: sharedConfig.ActivityConfig{RelayChannel: "tracker:activity"},
	}

	c, err := NewContainer(db, cfg, logger.NewLogger())
	require.NoError(t, err)
	c.SetupRoutes()
	c.StartRelay()
	t.Cleanup(c.Shutdown)

	return &testServer{t: t, engine: c.Engine()}
}

func (s *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &resp))
	assert.Equal(s.t, "Bearer", resp.TokenType)
	return resp.AccessToken
}

func TestContainer_HealthAndVersion(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/version", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContainer_LoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
}

func TestContainer_ProjectAndIssueFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin", "correct-horse")

	w, _ := s.do(http.MethodPost, "/api/v1/projects", "", map[string]string{"name": "demo", "display_name": "Demo"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/projects", token, map[string]string{"name": "demo", "display_name": "Demo"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = s.do(http.MethodPost, "/api/v1/projects/demo/issues", token, map[string]string{"title": "Crash on save"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := s.do(http.MethodGet, "/api/v1/projects/demo/issues", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var list struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, int64(1), list.Total)

	// Anonymous callers hold no grant on the project and are asked to log in.
	w, _ = s.do(http.MethodGet, "/api/v1/projects/demo/issues", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/projects/missing/issues", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/projects/demo/issues", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestContainer_ProfileRequiresLogin(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login("admin", "correct-horse")
	w, env := s.do(http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"username":"admin"`)
}
