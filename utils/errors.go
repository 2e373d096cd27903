package utils

import (
	"errors"
	"net/http"
)

// Error codes surfaced to API clients.
const (
	CodeInvalidRequest          = "INVALID_REQUEST"
	CodePolicyNotFound          = "POLICY_NOT_FOUND"
	CodePurposeNotFound         = "PURPOSE_NOT_FOUND"
	CodeDomainNotFound          = "DOMAIN_NOT_FOUND"
	CodeSubjectNotFound         = "SUBJECT_NOT_FOUND"
	CodeConsentNotFound         = "CONSENT_NOT_FOUND"
	CodeConsentAlreadyWithdrawn = "CONSENT_ALREADY_WITHDRAWN"
	CodeSubjectCreationFailed   = "SUBJECT_CREATION_FAILED"
	CodePurposeInUse            = "PURPOSE_IN_USE"
	CodeConflict                = "CONFLICT"
	CodeInternalServerError     = "INTERNAL_SERVER_ERROR"
)

// APIError is the single error shape the service exposes: a stable code, an
// HTTP status, a human message, and optional metadata for the client.
type APIError struct {
	Code    string                 `json:"code"`
	Status  int                    `json:"-"`
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

func NewAPIError(code string, status int, message string) *APIError {
	return &APIError{Code: code, Status: status, Message: message}
}

// WithMeta returns a copy carrying extra context for the client.
func (e *APIError) WithMeta(meta map[string]interface{}) *APIError {
	clone := *e
	clone.Meta = meta
	return &clone
}

func ErrInvalidRequest(message string) *APIError {
	return NewAPIError(CodeInvalidRequest, http.StatusBadRequest, message)
}

func ErrNotFound(code, message string) *APIError {
	return NewAPIError(code, http.StatusNotFound, message)
}

func ErrConflict(code, message string) *APIError {
	return NewAPIError(code, http.StatusConflict, message)
}

func ErrInternal(message string) *APIError {
	return NewAPIError(CodeInternalServerError, http.StatusInternalServerError, message)
}

// AsAPIError unwraps err into an *APIError, rewrapping unknown errors as
// INTERNAL_SERVER_ERROR so handlers never leak driver details.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return ErrInternal("an unexpected error occurred")
}
