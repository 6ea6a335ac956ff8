package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ayes009/photoshare-webapp/internal/infrastructure/auth"
	"github.com/ayes009/photoshare-webapp/internal/pkg/httputil"
)

type IdentityMiddleware struct {
	tokens *auth.TokenCodec
}

func NewIdentityMiddleware(tokens *auth.TokenCodec) *IdentityMiddleware {
	return &IdentityMiddleware{tokens: tokens}
}

// Attribute records the username carried by the bearer token. Requests
// without a readable token continue as Anonymous; nothing is rejected.
func (m *IdentityMiddleware) Attribute() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			if username, ok := m.tokens.Username(header); ok {
				c.Set(httputil.UsernameKey, username)
			}
		}
		c.Next()
	}
}
