package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Is lets errors.Is match the typed errors against the sentinels
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (item, member)
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// RejectionReason says why a drop gesture was refused
type RejectionReason string

const (
	ReasonNoPosition      RejectionReason = "no_position"
	ReasonNoTarget        RejectionReason = "no_target"
	ReasonNoItem          RejectionReason = "no_item"
	ReasonSelfDrop        RejectionReason = "self_drop"
	ReasonTargetNotFolder RejectionReason = "target_not_folder"
	ReasonCycle           RejectionReason = "cycle"
	ReasonSourceNotFound  RejectionReason = "source_not_found"
	ReasonTargetNotFound  RejectionReason = "target_not_found"
	ReasonInvalidPayload  RejectionReason = "invalid_payload"
	ReasonUnknownSession  RejectionReason = "unknown_session"
)

// RejectionError is returned for a drop that must be a no-op. It unwraps to
// ErrNotFound for stale references and to ErrValidation otherwise.
type RejectionError struct {
	Reason  RejectionReason
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

func (e *RejectionError) StatusCode() int {
	if e.Unwrap() == ErrNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func (e *RejectionError) Unwrap() error {
	switch e.Reason {
	case ReasonSourceNotFound, ReasonTargetNotFound, ReasonUnknownSession:
		return ErrNotFound
	default:
		return ErrValidation
	}
}

// Reject builds a RejectionError
func Reject(reason RejectionReason, message string) *RejectionError {
	return &RejectionError{Reason: reason, Message: message}
}
