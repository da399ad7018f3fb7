package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountInactive    = errors.New("account is inactive")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")
)

// Domain sentinels wrap the category sentinel above, so errors.Is against
// either the specific or the umbrella error matches.
var (
	// Account errors
	ErrAccountNotFound       = fmt.Errorf("account %w", ErrResourceNotFound)
	ErrUsernameAlreadyExists = fmt.Errorf("username already exists: %w", ErrConflict)
	ErrEmailAlreadyExists    = fmt.Errorf("email already exists: %w", ErrConflict)
	ErrRoleEscalation        = errors.New("role cannot be escalated to admin")

	// Group errors
	ErrGroupNotFound       = fmt.Errorf("group %w", ErrResourceNotFound)
	ErrGroupAlreadyExists  = fmt.Errorf("group with this name already exists: %w", ErrConflict)
	ErrAlreadyInOtherGroup = fmt.Errorf("account already belongs to another group: %w", ErrConflict)

	// Content errors
	ErrStoryNotFound        = fmt.Errorf("story %w", ErrResourceNotFound)
	ErrChapterNotFound      = fmt.Errorf("chapter %w", ErrResourceNotFound)
	ErrCommentNotFound      = fmt.Errorf("comment %w", ErrResourceNotFound)
	ErrFollowNotFound       = fmt.Errorf("follow %w", ErrResourceNotFound)
	ErrAlreadyFollowing     = fmt.Errorf("already following: %w", ErrConflict)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrResourceNotFound)
	ErrNegativeAmount       = errors.New("donation amount cannot be negative")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
