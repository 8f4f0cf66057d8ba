package handler

import (
	"errors"
	"net/http"
	"time"

	"complaintbox/backend/internal/auth"
	"complaintbox/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-Id"

	ctxRequestID = "request_id"
	ctxAdmin     = "admin"
)

// RequestID tags every request with an id, reusing the caller's header when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request. Bodies are never logged.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(requestFields(c)).WithFields(logrus.Fields{
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request")
		case status >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

func requestFields(c *gin.Context) logrus.Fields {
	return logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"request_id": c.GetString(ctxRequestID),
	}
}

// RequireAdmin rejects requests without a valid admin_session cookie and
// stores the authenticated admin in the context.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
			return
		}

		admin, err := h.Auth.Authenticate(c.Request.Context(), token)
		if errors.Is(err, auth.ErrInvalidSession) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
			return
		}
		if err != nil {
			h.respondError(c, err)
			return
		}

		c.Set(ctxAdmin, admin)
		c.Next()
	}
}

// sessionAdmin returns the admin put in the context by RequireAdmin.
func sessionAdmin(c *gin.Context) *models.Admin {
	admin, _ := c.Get(ctxAdmin)
	a, _ := admin.(*models.Admin)
	return a
}
