package middleware

import (
	"net/http"

	"constru_backend/internal/config"
	"constru_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsAllowHeaders = "Authorization, Content-Type, X-Request-ID"
)

// CORSMiddleware selects the CORS strategy from config. The mirror and
// permissive variants are development conveniences and are refused in
// production.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	mode := cfg.CORS.Mode
	if cfg.Server.Env == "production" && mode != "allowlist" {
		logger.Warn("cors mode is not allowed in production, falling back to allowlist", "mode", mode)
		mode = "allowlist"
	}

	switch mode {
	case "mirror":
		return corsMirror()
	case "permissive":
		return corsPermissive()
	default:
		return corsAllowlist(cfg.CORS.AllowedOrigins)
	}
}

// corsAllowlist echoes the origin only when it is explicitly allowed.
func corsAllowlist(allowed []string) gin.HandlerFunc {
	allowedSet := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		allowedSet[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && allowedSet[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", corsAllowMethods)
			c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// corsMirror reflects any origin back with credentials. Development only.
func corsMirror() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", corsAllowMethods)
			c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// corsPermissive answers every origin with a wildcard and no credentials.
func corsPermissive() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", corsAllowMethods)
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
