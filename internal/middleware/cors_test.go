package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"constru_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(cfg))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func corsConfig(mode, env string, origins ...string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = env
	cfg.CORS.Mode = mode
	cfg.CORS.AllowedOrigins = origins
	return cfg
}

func TestCORSAllowlistKnownOrigin(t *testing.T) {
	r := corsRouter(corsConfig("allowlist", "development", "http://localhost:3000"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestCORSAllowlistUnknownOrigin(t *testing.T) {
	r := corsRouter(corsConfig("allowlist", "development", "http://localhost:3000"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)

	// The request still runs, it just gets no CORS grant.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	r := corsRouter(corsConfig("allowlist", "development", "http://localhost:3000"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORSMirrorReflectsAnyOrigin(t *testing.T) {
	r := corsRouter(corsConfig("mirror", "development"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://anything.example")
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://anything.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPermissiveWildcardNoCredentials(t *testing.T) {
	r := corsRouter(corsConfig("permissive", "development"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://anything.example")
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSMirrorRefusedInProduction(t *testing.T) {
	r := corsRouter(corsConfig("mirror", "production", "http://app.example"))

	// An arbitrary origin is no longer reflected.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://anything.example")
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	// The configured allowlist still works.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://app.example")
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}
