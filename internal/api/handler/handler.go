// Package handler exposes the complaint service over HTTP with gin.
package handler

import (
	"context"
	"time"

	"complaintbox/backend/internal/analysis"
	"complaintbox/backend/internal/auth"
	"complaintbox/backend/internal/complaint"
	"complaintbox/backend/internal/feed"
	"complaintbox/backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// ComplaintService is implemented by *complaint.Service.
type ComplaintService interface {
	Submit(ctx context.Context, sub complaint.Submission) (*models.Complaint, error)
	Track(ctx context.Context, caseID, pin string) (*models.Complaint, error)
	Get(ctx context.Context, caseID string) (*models.Complaint, error)
	List(ctx context.Context) ([]models.Complaint, error)
	AuditTrail(ctx context.Context, caseID string) ([]models.AuditLog, error)
	UpdateStatus(ctx context.Context, u complaint.StatusUpdate) (*models.AuditLog, error)
}

// AuthService is implemented by *auth.Service.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*auth.Session, error)
	Authenticate(ctx context.Context, token string) (*models.Admin, error)
}

// AnalyticsService is implemented by *analysis.Service.
type AnalyticsService interface {
	Summary(ctx context.Context) (analysis.Summary, error)
}

// Pinger reports backing store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options carries the HTTP-facing settings of the handler.
type Options struct {
	CookieSecure   bool
	SessionTTL     time.Duration
	AllowedOrigins []string
	MetricsPath    string

	// LimiterStore defaults to an in-memory store.
	LimiterStore limiter.Store
	TrackRate    limiter.Rate
	LoginRate    limiter.Rate
}

// Handler holds the services behind every route.
type Handler struct {
	Complaints ComplaintService
	Auth       AuthService
	Analytics  AnalyticsService
	Feed       *feed.Hub
	Health     Pinger
	Log        *logrus.Logger
	Options    Options

	upgrader websocket.Upgrader
}

func NewHandler(complaints ComplaintService, authSvc AuthService, analytics AnalyticsService, hub *feed.Hub, health Pinger, log *logrus.Logger, opts Options) *Handler {
	configureBinding()

	if opts.LimiterStore == nil {
		opts.LimiterStore = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          limiterPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	h := &Handler{
		Complaints: complaints,
		Auth:       authSvc,
		Analytics:  analytics,
		Feed:       hub,
		Health:     health,
		Log:        log,
		Options:    opts,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}
