package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Code    ErrorKind         `json:"code,omitempty"`    // Error classification
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper
func NewValidationHelper() *ValidationHelper {
	return &ValidationHelper{
		validator: validator.New(),
	}
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	writeError(w, statusCode, ErrorResponse{Error: message, Details: validationDetails(validationErr)})
}

// SendLedgerError writes a classified error with the status its kind maps to.
func SendLedgerError(w http.ResponseWriter, err error) {
	kind := KindOf(err)
	message := UserMessage(kind)

	var le *LedgerError
	if errors.As(err, &le) && le.Message != "" {
		message = le.Message
	}

	writeError(w, StatusForKind(kind), ErrorResponse{Error: message, Code: kind})
}

// StatusForKind maps an error classification to an HTTP status.
func StatusForKind(kind ErrorKind) int {
	switch {
	case IsValidationKind(kind), kind == KindInvalidAccountRequest:
		return http.StatusBadRequest
	case kind == KindUnauthenticated:
		return http.StatusUnauthorized
	case kind == KindNotFound:
		return http.StatusNotFound
	case kind == KindReferentialIntegrity, kind == KindDuplicateSubmission:
		return http.StatusConflict
	case kind == KindStoreUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func validationDetails(validationErr error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(validationErr, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, err := range verrs {
		details[err.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", err.Tag())
	}
	return details
}

func writeError(w http.ResponseWriter, statusCode int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}
