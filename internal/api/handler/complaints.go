package handler

import (
	"net/http"

	"complaintbox/backend/internal/complaint"

	"github.com/gin-gonic/gin"
)

type submitRequest struct {
	Category    string  `json:"category" binding:"required,max=64"`
	Location    string  `json:"location" binding:"required,max=128"`
	Description string  `json:"description" binding:"required"`
	EvidenceURL *string `json:"evidence_url" binding:"omitempty,max=256"`
	PIN         string  `json:"pin" binding:"required"`
}

type trackRequest struct {
	CaseID string `json:"case_id" binding:"required"`
	PIN    string `json:"pin" binding:"required"`
}

// SubmitComplaint handles POST /complaints. The PIN is echoed back once so
// the citizen can note it next to the case id.
func (h *Handler) SubmitComplaint(c *gin.Context) {
	var req submitRequest
	if !h.bindJSON(c, &req, msgMissingRequired) {
		return
	}

	created, err := h.Complaints.Submit(c.Request.Context(), complaint.Submission{
		Category:    req.Category,
		Location:    req.Location,
		Description: req.Description,
		EvidenceURL: req.EvidenceURL,
		PIN:         req.PIN,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"case_id": created.CaseID, "pin": req.PIN})
}

// TrackComplaint handles POST /track.
func (h *Handler) TrackComplaint(c *gin.Context) {
	var req trackRequest
	if !h.bindJSON(c, &req, msgMissingRequired) {
		return
	}

	found, err := h.Complaints.Track(c.Request.Context(), req.CaseID, req.PIN)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaint": found})
}
