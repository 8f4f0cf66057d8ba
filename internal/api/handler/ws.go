package handler

import (
	"net/http"
	"net/url"
	"strings"

	"complaintbox/backend/internal/feed"

	"github.com/gin-gonic/gin"
)

// ServeFeed upgrades GET /admin/feed to a websocket streaming complaint events.
// The session cookie is checked by RequireAdmin before the upgrade.
func (h *Handler) ServeFeed(c *gin.Context) {
	admin := sessionAdmin(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.Log.WithError(err).WithFields(requestFields(c)).Warn("feed upgrade failed")
		return
	}

	feed.NewWebSocketClient(h.Feed, conn, admin.ID).Run()
}

// checkOrigin accepts the configured CORS origins, or the same host when none
// are configured. Requests without an Origin header come from non-browsers.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if len(h.Options.AllowedOrigins) > 0 {
		for _, allowed := range h.Options.AllowedOrigins {
			if strings.EqualFold(strings.TrimRight(allowed, "/"), origin) {
				return true
			}
		}
		return false
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}
