// Package api provides the HTTP surface of the style-guide search engine.
package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/styleguide-search/services"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSearchRequest validates a search request body.
// maxResultsLimit bounds the optional max_results override.
func ValidateSearchRequest(req *services.SearchRequest, maxResultsLimit int) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("request_body", "Search request is required")
		return result
	}

	if strings.TrimSpace(req.Query) == "" {
		result.AddError("query", "Query cannot be empty or whitespace-only")
	}

	if strings.TrimSpace(req.Domain) != req.Domain {
		result.AddError("domain", "Domain cannot have leading or trailing whitespace")
	}

	if strings.TrimSpace(req.Stack) != req.Stack {
		result.AddError("stack", "Stack cannot have leading or trailing whitespace")
	}

	if req.MaxResults != nil {
		if *req.MaxResults < 0 {
			result.AddError("max_results", "max_results cannot be negative")
		} else if *req.MaxResults > maxResultsLimit {
			result.AddError("max_results", fmt.Sprintf("max_results cannot exceed %d", maxResultsLimit))
		}
	}

	return result
}

// ValidateStackName validates a stack path parameter
func ValidateStackName(stack string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if stack == "" {
		result.AddError("stack", "Stack name is required")
		return result
	}

	if strings.TrimSpace(stack) != stack {
		result.AddError("stack", "Stack name cannot have leading or trailing whitespace")
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
