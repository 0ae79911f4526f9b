package middleware

import (
	"github.com/gin-gonic/gin"

	userdomain "pagecraft/backend/internal/user/domain"
)

const (
	userKey  = "middleware.user"
	tokenKey = "middleware.session_token"
)

// SetUser attaches the authenticated identity and its raw session token to
// the request context.
func SetUser(c *gin.Context, u *userdomain.User, token string) {
	c.Set(userKey, u)
	c.Set(tokenKey, token)
}

// CurrentUser returns the authenticated identity, or nil when the request
// did not pass through RequireSession.
func CurrentUser(c *gin.Context) *userdomain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*userdomain.User)
	return u
}

// SessionToken returns the raw token the current session was authenticated
// with. Logout needs it to revoke the right credential.
func SessionToken(c *gin.Context) string {
	v, ok := c.Get(tokenKey)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
