package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursequest/internal/pkg/apperrors"
	"github.com/yigit/coursequest/internal/pkg/logger"
)

// IngestTokenHeader carries the shared ingest secret.
const IngestTokenHeader = "x-ingest-token"

// IngestAuth rejects requests whose x-ingest-token header does not equal the
// configured secret. An empty secret rejects everything. The check runs before
// the body is read, so a bad token answers 401 whatever the payload.
func IngestAuth(secret string) gin.HandlerFunc {
	if secret == "" {
		logger.Warn().Msg("Ingest token is not configured, every ingest request will be rejected")
	}
	return func(c *gin.Context) {
		token := c.GetHeader(IngestTokenHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			logger.Warn().
				Str("client_ip", c.ClientIP()).
				Bool("token_present", token != "").
				Msg("Rejected ingest request")
			HandleAPIError(c, apperrors.NewUnauthorizedError("Unauthorized"))
			return
		}
		c.Next()
	}
}
