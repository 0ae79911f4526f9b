// Package middleware carries the session middleware and the request-scoped
// identity accessors the handlers share.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	userdomain "pagecraft/backend/internal/user/domain"
)

// SessionCookie is the cookie the browser flow stores the session token in.
const SessionCookie = "session_token"

// IdentityResolver turns a raw session token into the identity it belongs
// to. Implemented by the auth service.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*userdomain.User, error)
}

// RequireSession authenticates the request from the session cookie, falling
// back to an Authorization bearer token for non-browser clients. Requests
// without a valid session are rejected with 401 before the handler runs.
func RequireSession(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		user, err := resolver.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		SetUser(c, user, token)
		c.Next()
	}
}

// RequireAdmin rejects non-admin sessions. It must run after RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}
