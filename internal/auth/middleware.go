package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// BearerToken extracts the raw token from an Authorization header value.
// Returns "" when the header is absent or not a bearer scheme.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, bearerPrefix)
}

// RequireAuth verifies an access token and injects the principal into request
// context. It enforces; the activity tracker only observes. A request may be
// tracked as anonymous without ever being rejected here.
func RequireAuth(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := BearerToken(c.GetHeader(authorizationHeader))
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := m.Verify(tok, time.Now())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		uid := claims.PrincipalID()
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), uid))

		// Also store on gin context for handler convenience.
		c.Set("user_id", uid)

		c.Next()
	}
}
