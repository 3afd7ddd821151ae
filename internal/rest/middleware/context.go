package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/poloedu/polobill/internal/types"
)

// RequestIDMiddleware ensures every request carries a request ID, either the
// caller's X-Request-ID or a freshly generated one, and echoes it back.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
	}

	ctx := types.WithRequestID(c.Request.Context(), requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Writer.Header().Set(types.HeaderRequestID, requestID)

	c.Next()
}

// PoloMiddleware copies the tenant identifier from the X-Polo-ID header into
// the request context so every log line and record is attributed to a polo.
func PoloMiddleware(c *gin.Context) {
	if poloID := c.GetHeader(types.HeaderPoloID); poloID != "" {
		ctx := types.WithPoloID(c.Request.Context(), poloID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("polo_id", poloID)
	}

	c.Next()
}
