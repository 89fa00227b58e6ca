package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentaroom/internal/domain"
)

const (
	authorizationHeader = "Authorization"
	requestIDHeader     = "X-Request-ID"
	identityCtx         = "identity"
	requestIDCtx        = "request_id"
)

func (h *Handler) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(requestIDCtx, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		logger := h.logger.With(
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.String("request_id", c.GetString(requestIDCtx)),
		)

		if status >= 500 {
			logger.Error("server error")
		} else if status >= 400 {
			logger.Warn("client error")
		} else {
			logger.Info("request processed")
		}
	}
}

func (h *Handler) errorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, err := range c.Errors {
			h.logger.Error("request error", zap.Error(err), zap.String("request_id", c.GetString(requestIDCtx)))
		}
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Content-Length, Accept, Origin, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Type, X-Request-ID, Retry-After")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400") // 24 часа

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// queryTokenMiddleware lets browser websocket clients, which cannot set
// headers, pass the token as ?token=.
func (h *Handler) queryTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(authorizationHeader) == "" {
			if token := c.Query("token"); token != "" {
				c.Request.Header.Set(authorizationHeader, "Bearer "+token)
			}
		}

		c.Next()
	}
}

func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			errorResponse(c, http.StatusUnauthorized, "No token provided")
			return
		}

		identity, err := h.services.Auth.ParseToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			errorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(identityCtx, identity)

		c.Next()
	}
}

// adminMiddleware must run after authMiddleware.
func (h *Handler) adminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := getIdentity(c)
		if !ok {
			errorResponse(c, http.StatusUnauthorized, "No token provided")
			return
		}

		if !identity.IsAdmin {
			errorResponse(c, http.StatusForbidden, "Admin access required")
			return
		}

		c.Next()
	}
}

func getIdentity(c *gin.Context) (domain.Identity, bool) {
	value, exists := c.Get(identityCtx)
	if !exists {
		return domain.Identity{}, false
	}

	identity, ok := value.(domain.Identity)
	return identity, ok
}
