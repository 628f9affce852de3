package errors

import (
	"fmt"
	"net/http"
)

// Error codes returned in the "error" field of every failed response.
const (
	CodeInvalidRequest  = "InvalidRequest"
	CodeValidation      = "ValidationError"
	CodeUnauthorized    = "Unauthorized"
	CodeListingNotFound = "ListingNotFound"
	CodeProductNotFound = "ProductNotFound"
	CodeVariantNotFound = "VariantNotFound"
	CodeSuperseded      = "Superseded"
	CodeUpstream        = "UpstreamError"
	CodeCache           = "CacheError"
	CodeInternal        = "InternalError"
)

// StandardError is the JSON error envelope shared by all handlers.
type StandardError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return e.Message
}

// HTTPStatus maps the error code onto a response status.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeListingNotFound, CodeProductNotFound, CodeVariantNotFound:
		return http.StatusNotFound
	case CodeSuperseded:
		return http.StatusConflict
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewStandardError creates a new standard error
func NewStandardError(code, message, details string) *StandardError {
	return &StandardError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

func NewInvalidRequest(message, details string) *StandardError {
	return NewStandardError(CodeInvalidRequest, message, details)
}

func NewValidationError(message, field string) *StandardError {
	return NewStandardError(CodeValidation, message, fmt.Sprintf("Field: %s", field))
}

func NewUnauthorized(message, details string) *StandardError {
	return NewStandardError(CodeUnauthorized, message, details)
}

func NewListingNotFound(category string) *StandardError {
	return NewStandardError(CodeListingNotFound, "category not found", fmt.Sprintf("Category: %s", category))
}

func NewProductNotFound(slug string) *StandardError {
	return NewStandardError(CodeProductNotFound, "product not found", fmt.Sprintf("Slug: %s", slug))
}

func NewVariantNotFound(fieldCode, fieldValue string) *StandardError {
	return NewStandardError(CodeVariantNotFound, "no variant matches the chosen attribute",
		fmt.Sprintf("%s=%s", fieldCode, fieldValue))
}

// NewSuperseded is returned when a newer intent replaced the one being served.
func NewSuperseded(details string) *StandardError {
	return NewStandardError(CodeSuperseded, "listing request superseded by a newer one", details)
}

func NewUpstreamError(operation string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError(CodeUpstream, fmt.Sprintf("commerce api call failed: %s", operation), details)
}

func NewCacheError(operation string, err error) *StandardError {
	return NewStandardError(CodeCache, fmt.Sprintf("cache operation failed: %s", operation), err.Error())
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError(CodeInternal, message, details)
}
