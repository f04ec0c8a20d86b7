package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/use-agent/pagelens/reqlog"
)

// HeaderRequestID carries the request id in and out.
const HeaderRequestID = "X-Request-ID"

// RequestID tags each request with an id, taken from the incoming header
// or freshly minted, echoes it back, and attaches a logger carrying it to
// the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)

		logger := slog.Default().With("request_id", id)
		c.Request = c.Request.WithContext(reqlog.WithLogger(c.Request.Context(), logger))
		c.Next()
	}
}
