package domain

import (
	"errors"
	"fmt"
)

// ============================================================================
// Domain Error Types
// ============================================================================

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ============================================================================
// Common Domain Errors
// ============================================================================

var (
	// User Errors
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}

	// Ping Errors
	ErrPingNotFound = &DomainError{
		Code:    "PING_NOT_FOUND",
		Message: "ping not found",
	}

	// Auth Errors
	ErrUnauthenticated = &DomainError{
		Code:    "UNAUTHENTICATED",
		Message: "authentication required",
	}
	ErrProviderUnknown = &DomainError{
		Code:    "PROVIDER_UNKNOWN",
		Message: "unknown identity provider",
	}
	ErrProviderNotConfigured = &DomainError{
		Code:    "PROVIDER_NOT_CONFIGURED",
		Message: "identity provider is not configured",
	}
	ErrOAuthStateMismatch = &DomainError{
		Code:    "OAUTH_STATE_MISMATCH",
		Message: "invalid or expired login state",
	}
	ErrOAuthExchangeFailed = &DomainError{
		Code:    "OAUTH_EXCHANGE_FAILED",
		Message: "failed to complete login with identity provider",
	}
	ErrProfileInvalid = &DomainError{
		Code:    "PROFILE_INVALID",
		Message: "identity provider returned an unusable profile",
	}

	// Validation Errors
	ErrValidationFailed = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "validation failed",
	}

	// Infrastructure Errors
	ErrDatabaseOperation = &DomainError{
		Code:    "DATABASE_OPERATION_FAILED",
		Message: "database operation failed",
	}
)

// ============================================================================
// Error Wrapping Helpers
// ============================================================================

// WrapUserNotFound wraps an error as a user not found error
func WrapUserNotFound(userID string, cause error) error {
	return &DomainError{
		Code:    ErrUserNotFound.Code,
		Message: fmt.Sprintf("user not found: %s", userID),
		Cause:   cause,
	}
}

// WrapPingNotFound wraps an error as a ping not found error
func WrapPingNotFound(pingID string, cause error) error {
	return &DomainError{
		Code:    ErrPingNotFound.Code,
		Message: fmt.Sprintf("ping not found: %s", pingID),
		Cause:   cause,
	}
}

// WrapProviderUnknown reports a provider name that is not registered
func WrapProviderUnknown(provider string) error {
	return &DomainError{
		Code:    ErrProviderUnknown.Code,
		Message: fmt.Sprintf("unknown identity provider: %s", provider),
	}
}

// WrapOAuthExchangeFailed wraps a failed code exchange or userinfo request
func WrapOAuthExchangeFailed(provider string, cause error) error {
	return &DomainError{
		Code:    ErrOAuthExchangeFailed.Code,
		Message: fmt.Sprintf("failed to complete login with %s", provider),
		Cause:   cause,
	}
}

// WrapValidationError wraps an error as a validation failure on a field
func WrapValidationError(field string, cause error) error {
	message := fmt.Sprintf("validation failed for %s", field)
	if cause != nil {
		message = fmt.Sprintf("%s: %v", message, cause)
	}
	return &DomainError{
		Code:    ErrValidationFailed.Code,
		Message: message,
		Cause:   cause,
	}
}

// WrapDatabaseOperation wraps an error as a database operation failure
func WrapDatabaseOperation(operation string, cause error) error {
	return &DomainError{
		Code:    ErrDatabaseOperation.Code,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Cause:   cause,
	}
}

// PublicMessage returns a client-safe message: the domain message without code or
// cause chain, or a generic message for anything that is not a DomainError
func PublicMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	return "An error occurred"
}

// ============================================================================
// Error Checking Helpers
// ============================================================================

func hasCode(err error, codes ...string) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	for _, code := range codes {
		if domainErr.Code == code {
			return true
		}
	}
	return false
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return hasCode(err,
		ErrUserNotFound.Code,
		ErrPingNotFound.Code,
		ErrProviderUnknown.Code,
	)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasCode(err,
		ErrValidationFailed.Code,
		ErrOAuthStateMismatch.Code,
		ErrProfileInvalid.Code,
	)
}

// IsAuthError checks if an error means the caller is not (or no longer) logged in
func IsAuthError(err error) bool {
	return hasCode(err, ErrUnauthenticated.Code)
}

// IsUpstreamError checks if an error came from an identity provider round-trip
func IsUpstreamError(err error) bool {
	return hasCode(err, ErrOAuthExchangeFailed.Code, ErrProviderNotConfigured.Code)
}

// IsInfrastructureError checks if an error is an infrastructure error
func IsInfrastructureError(err error) bool {
	return hasCode(err, ErrDatabaseOperation.Code)
}
