package config

const (
	// Case identifiers
	CaseIDLength      = 10
	MaxCaseIDAttempts = 3

	// Field limits, mirrored by the migrations
	MaxCategoryLength    = 64
	MaxLocationLength    = 128
	MaxEvidenceURLLength = 256
	MinPINLength         = 4
	MaxSecretLength      = 72 // bcrypt input limit

	// Statuses
	StatusReceived = "Received"
	StatusInReview = "In Review"
	StatusResolved = "Resolved"
	StatusClosed   = "Closed"

	// UnknownBucket groups rows with an absent category or status.
	UnknownBucket = "Unknown"

	// Admin roles
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
)

// Statuses lists the recognised complaint statuses in workflow order.
var Statuses = []string{StatusReceived, StatusInReview, StatusResolved, StatusClosed}

// Categories lists the complaint categories offered to citizens.
var Categories = []string{
	"Corruption",
	"Bribery",
	"Fraud",
	"Abuse of Power",
	"Misconduct",
	"Financial Irregularities",
	"Other",
}

// IsValidStatus reports whether s is one of Statuses.
func IsValidStatus(s string) bool {
	return contains(Statuses, s)
}

// IsValidCategory reports whether c is one of Categories.
func IsValidCategory(c string) bool {
	return contains(Categories, c)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
