package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "taskboard/docs"
	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/repo"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		App:     config.AppConfig{Env: "test", Version: "v0.0.1"},
		Auth:    config.AuthConfig{JWTSecret: "test-secret", BcryptCost: 4},
		Storage: config.StorageConfig{Driver: config.StorageMemory},
	}
	store := repo.NewMemoryStore()
	deps := Deps{Users: store.Users(), Tasks: store.Tasks(), Pinger: store}
	return NewRouter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), deps)
}

type client struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func (c *client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == auth.CookieName {
			c.cookie = ck
		}
	}
	return w
}

func TestScenario_SignupThenTaskLifecycle(t *testing.T) {
	r := newMemoryRouter(t)
	anon := &client{t: t, router: r}
	user := &client{t: t, router: r}

	w := user.do(http.MethodPost, "/api/auth/signup", `{"email":"a@x.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, user.cookie)

	w = anon.do(http.MethodGet, "/api/tasks", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Not authenticated"}`, w.Body.String())

	w = user.do(http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = user.do(http.MethodPost, "/api/tasks", `{"title":"write docs"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"write docs","completed":false}`, w.Body.String())

	w = user.do(http.MethodDelete, "/api/tasks/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = user.do(http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = user.do(http.MethodGet, "/api/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"a@x.com"`)

	w = user.do(http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, user.cookie.Value)
}

func TestPages(t *testing.T) {
	r := newMemoryRouter(t)
	c := &client{t: t, router: r}

	w := c.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `id="loginForm"`)

	w = c.do(http.MethodGet, "/index.html", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	require.Equal(t, http.StatusCreated,
		c.do(http.MethodPost, "/api/auth/signup", `{"email":"b@x.com","password":"pw"}`).Code)
	w = c.do(http.MethodGet, "/index.html", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="list"`)

	w = c.do(http.MethodGet, "/assets/app.js", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "render()")

	w = c.do(http.MethodGet, "/assets/missing.js", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSystemRoutes(t *testing.T) {
	r := newMemoryRouter(t)
	c := &client{t: t, router: r}

	w := c.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = c.do(http.MethodGet, "/api/version", "")
	assert.JSONEq(t, `{"version":"v0.0.1","env":"test"}`, w.Body.String())

	w = c.do(http.MethodGet, "/swagger-doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/tasks/{id}"`)
	assert.Contains(t, w.Body.String(), `"title": "Taskboard API"`)
}

func TestCORS_ReflectsOriginWithCredentials(t *testing.T) {
	r := newMemoryRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
