package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const contextKeyIdentity = "identity"

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidSession   = "Invalid or expired session"
)

// IdentityFromContext returns the identity set by RequireAuth.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// RequireAuth returns a middleware that verifies the session cookie and
// stores the identity in context. Missing and invalid tokens both get 401,
// with different messages.
func RequireAuth(codec *Codec, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgNotAuthenticated})
			return
		}
		id, err := codec.Verify(token)
		if err != nil {
			logger.DebugContext(c.Request.Context(), "session rejected", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgInvalidSession})
			return
		}
		c.Set(contextKeyIdentity, id)
		c.Next()
	}
}
