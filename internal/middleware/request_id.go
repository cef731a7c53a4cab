package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-leavehub/internal/shared/contextutil"
)

const requestIDHeader = "X-Request-ID"

// RequestID menerima id dari client bila ada, atau membuat yang baru,
// lalu menaruhnya di gin context, standard context, dan response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(contextutil.GetKey(), rid)
		c.Request = c.Request.WithContext(
			contextutil.WithRequestID(c.Request.Context(), rid),
		)
		c.Header(requestIDHeader, rid)

		c.Next()
	}
}
