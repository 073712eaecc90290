package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/paylinkhq/paylink/internal/http/dto"
)

// respondJSON sends JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends error response
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// formatValidationErrors formats validation errors
func formatValidationErrors(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation failed"
	}

	messages := make([]string, len(errs))
	for i, err := range errs {
		switch err.Tag() {
		case "required":
			messages[i] = err.Field() + " is required"
		case "email":
			messages[i] = err.Field() + " must be a valid email"
		case "oneof":
			messages[i] = err.Field() + " is not a supported value"
		case "min":
			messages[i] = err.Field() + " is too short"
		case "max":
			messages[i] = err.Field() + " is too long"
		case "gt":
			messages[i] = err.Field() + " must be greater than zero"
		default:
			messages[i] = err.Field() + " is invalid"
		}
	}

	return messages[0] // Return first error for simplicity
}

// parseInt parses int with default value
func parseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}

	var val int
	if _, err := fmt.Sscanf(s, "%d", &val); err != nil {
		return defaultVal
	}

	return val
}
