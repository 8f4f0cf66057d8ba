package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"complaintbox/backend/internal/auth"
	"complaintbox/backend/internal/complaint"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	msgMissingRequired    = "Missing required fields"
	msgMissingCredentials = "Missing credentials"
	msgMissingFields      = "Missing fields"
	msgInvalidFields      = "Invalid fields"
	msgInvalidBody        = "Invalid request body"
	msgUnauthorized       = "Unauthorized"
	msgForbidden          = "Forbidden"
	msgInternal           = "Internal server error"
)

var bindingOnce sync.Once

// configureBinding makes gin reject unknown JSON fields and report JSON field
// names in validation errors. Both settings are global to gin.
func configureBinding() {
	bindingOnce.Do(setupBinding)
}

func setupBinding() {
	binding.EnableDecoderDisallowUnknownFields = true

	// Report JSON names instead of Go field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindJSON decodes the body into obj. On failure it writes a 400 and returns
// false; missing is the message used when only required fields are absent.
func (h *Handler) bindJSON(c *gin.Context, obj interface{}, missing string) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return false
	}

	msg := missing
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		if fe.Tag() != "required" {
			msg = msgInvalidFields
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "fields": fields})
	return false
}

// respondError maps service errors to a status and a client-safe message.
// Anything unrecognised is logged and reported as a 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, msgInternal

	switch {
	case errors.Is(err, complaint.ErrMissingFields):
		status, msg = http.StatusBadRequest, msgMissingRequired
	case errors.Is(err, complaint.ErrPINLength):
		status, msg = http.StatusBadRequest, complaint.ErrPINLength.Error()
	case errors.Is(err, complaint.ErrInvalidEvidence):
		status, msg = http.StatusBadRequest, "Invalid evidence reference"
	case errors.Is(err, complaint.ErrInvalidCategory):
		status, msg = http.StatusBadRequest, "Invalid category"
	case errors.Is(err, complaint.ErrInvalidStatus):
		status, msg = http.StatusBadRequest, "Invalid status"
	case errors.Is(err, complaint.ErrCaseNotFound):
		status, msg = http.StatusNotFound, "Case not found"
	case errors.Is(err, complaint.ErrInvalidPIN):
		status, msg = http.StatusForbidden, "Invalid PIN"
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, auth.ErrInvalidSession):
		status, msg = http.StatusUnauthorized, msgUnauthorized
	default:
		h.Log.WithError(err).WithFields(requestFields(c)).Error("request failed")
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
