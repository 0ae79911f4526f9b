package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

type clientIPKey struct{}

// ClientIP copies gin's resolved client IP into the request context so code
// below the HTTP layer (the audit trail) can read it without a gin
// dependency.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), clientIPKey{}, c.ClientIP())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ClientIPFromContext returns the IP stashed by ClientIP, or "" when absent.
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
