package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"complaintbox/backend/internal/analysis"
	"complaintbox/backend/internal/auth"
	"complaintbox/backend/internal/complaint"
	"complaintbox/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=72"`
}

type updateStatusRequest struct {
	CaseID  string  `json:"case_id" binding:"required"`
	Status  string  `json:"status" binding:"required"`
	AdminID uint    `json:"admin_id" binding:"required"`
	Notes   *string `json:"notes"`
}

type adminView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func viewOf(a *models.Admin) adminView {
	return adminView{ID: a.ID, Username: a.Username, Role: a.Role}
}

// Login handles POST /admin/login and sets the session cookie.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !h.bindJSON(c, &req, msgMissingCredentials) {
		return
	}

	session, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setSessionCookie(c, session.Token, int(h.Options.SessionTTL.Seconds()))
	h.Log.WithFields(requestFields(c)).WithField("admin_id", session.Admin.ID).Info("admin logged in")
	c.JSON(http.StatusOK, gin.H{"success": true, "admin": viewOf(session.Admin)})
}

// Logout handles POST /admin/logout.
func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, value, maxAge, "/", "", h.Options.CookieSecure, true)
}

// Me handles GET /admin/me.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, viewOf(sessionAdmin(c)))
}

// ListComplaints handles GET /admin/complaints.
func (h *Handler) ListComplaints(c *gin.Context) {
	list, err := h.Complaints.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if list == nil {
		list = []models.Complaint{}
	}
	c.JSON(http.StatusOK, gin.H{"complaints": list})
}

// GetComplaint handles GET /admin/complaints/:case_id.
func (h *Handler) GetComplaint(c *gin.Context) {
	found, err := h.Complaints.Get(c.Request.Context(), c.Param("case_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaint": found})
}

// AuditTrail handles GET /admin/complaints/:case_id/audit.
func (h *Handler) AuditTrail(c *gin.Context) {
	entries, err := h.Complaints.AuditTrail(c.Request.Context(), c.Param("case_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if entries == nil {
		entries = []models.AuditLog{}
	}
	c.JSON(http.StatusOK, gin.H{"audit_logs": entries})
}

// UpdateStatus handles POST /admin/update-status. The admin_id in the body
// must be the admin of the session.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if !h.bindJSON(c, &req, msgMissingFields) {
		return
	}

	admin := sessionAdmin(c)
	if req.AdminID != admin.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": msgForbidden})
		return
	}

	_, err := h.Complaints.UpdateStatus(c.Request.Context(), complaint.StatusUpdate{
		CaseID:  req.CaseID,
		Status:  req.Status,
		AdminID: admin.ID,
		Notes:   req.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetAnalytics handles GET /admin/analytics.
func (h *Handler) GetAnalytics(c *gin.Context) {
	summary, err := h.Analytics.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Export handles GET /admin/export?format=csv|xlsx. The file is rendered in
// memory first so a failure can still produce a JSON error.
func (h *Handler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", analysis.FormatCSV)
	if !analysis.IsExportFormat(format) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid export format"})
		return
	}

	list, err := h.Complaints.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := analysis.Export(&buf, format, list); err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="complaints.%s"`, format))
	c.Data(http.StatusOK, analysis.ContentType(format), buf.Bytes())
}
