// Package analysis aggregates complaints for the admin dashboard and renders
// them for export.
package analysis

import (
	"context"

	"complaintbox/backend/internal/config"
	"complaintbox/backend/internal/models"
)

// Summary is the dashboard breakdown returned by GET /admin/analytics.
type Summary struct {
	ByCategory map[string]int `json:"byCategory"`
	ByStatus   map[string]int `json:"byStatus"`
}

// ComplaintLister lists every complaint.
type ComplaintLister interface {
	ListComplaints(ctx context.Context) ([]models.Complaint, error)
}

type Service struct {
	Storage ComplaintLister
}

func NewService(s ComplaintLister) *Service {
	return &Service{Storage: s}
}

// Summary recomputes the breakdown from a full scan on every call.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	complaints, err := s.Storage.ListComplaints(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Aggregate(complaints), nil
}

// Aggregate tallies complaints by category and by status. An empty category
// or status is counted under config.UnknownBucket. The maps are never nil.
func Aggregate(complaints []models.Complaint) Summary {
	summary := Summary{
		ByCategory: make(map[string]int),
		ByStatus:   make(map[string]int),
	}
	for _, c := range complaints {
		summary.ByCategory[bucket(c.Category)]++
		summary.ByStatus[bucket(c.Status)]++
	}
	return summary
}

func bucket(v string) string {
	if v == "" {
		return config.UnknownBucket
	}
	return v
}
