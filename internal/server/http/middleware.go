package http

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/siteauth/internal/common"
	"github.com/dmitrijs2005/siteauth/internal/server/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = "userID"
	requestIDKey = "requestID"

	maxRequestIDLen = 64
)

// requestID tags every request with an id, reusing a sane inbound
// X-Request-ID, and echoes it back.
func (s *HTTPServer) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" || len(id) > maxRequestIDLen {
			var err error
			if id, err = common.MakeRandHexString(8); err != nil {
				id = "-"
			}
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

// accessLog writes one line per request. Bodies and headers are not logged.
func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// corsMiddleware returns nil when no browser origins are configured.
func (s *HTTPServer) corsMiddleware() gin.HandlerFunc {
	if len(s.allowedOrigins) == 0 {
		return nil
	}
	return cors.New(cors.Config{
		AllowOrigins:     s.allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", common.AuthorizationHeaderName},
		ExposeHeaders:    []string{common.RequestIDHeaderName},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

// requireToken verifies "Authorization: Bearer <jwt>" and stores the user id
// for downstream handlers.
func (s *HTTPServer) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			s.writeError(c, common.ErrInvalidToken)
			return
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimSpace(token), s.jwtSecret)
		if err != nil {
			s.writeError(c, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func userIDFromContext(c *gin.Context) string {
	return c.GetString(userIDKey)
}
