package handler

import (
	"net/http"

	"complaintbox/backend/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with the middleware stack and every route.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(h.Log), metrics.Middleware())
	h.Register(r)
	return r
}

// Register mounts the public and admin routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Healthz)
	r.GET(h.Options.MetricsPath, gin.WrapH(promhttp.Handler()))

	r.POST("/complaints", h.SubmitComplaint)
	r.POST("/track", h.rateLimit("track", h.Options.TrackRate), h.TrackComplaint)

	admin := r.Group("/admin")
	admin.POST("/login", h.rateLimit("login", h.Options.LoginRate), h.Login)
	admin.POST("/logout", h.Logout)

	protected := admin.Group("", h.RequireAdmin())
	protected.GET("/me", h.Me)
	protected.GET("/complaints", h.ListComplaints)
	protected.GET("/complaints/:case_id", h.GetComplaint)
	protected.GET("/complaints/:case_id/audit", h.AuditTrail)
	protected.POST("/update-status", h.UpdateStatus)
	protected.GET("/analytics", h.GetAnalytics)
	protected.GET("/export", h.Export)
	protected.GET("/feed", h.ServeFeed)
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Health.Ping(c.Request.Context()); err != nil {
		h.Log.WithError(err).Warn("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
