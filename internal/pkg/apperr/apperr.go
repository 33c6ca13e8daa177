// Package apperr carries the error taxonomy shared by the controllers and the
// magazine pipeline. Every failure a handler returns maps onto one of these
// types so the HTTP layer can pick a status code without string matching.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError marks a missing or invalid required field. Never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Validation builds a field-specific validation error.
func Validation(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError marks an id that matched no row.
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError for the given entity and id.
func NotFound(entity string, id interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// UpstreamError marks a failure of an external collaborator (AI, flipbook,
// renderer). Detail keeps the upstream payload for diagnostics.
type UpstreamError struct {
	Service string
	Message string
	Detail  string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Upstream builds an UpstreamError wrapping err.
func Upstream(service, message string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Message: message, Err: err}
}

// IntegrityError marks a corrupt or empty intermediate artifact. It aborts
// the whole pipeline run.
type IntegrityError struct {
	Artifact string
	Reason   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("artifact %s: %s", e.Artifact, e.Reason)
}

// Integrity builds an IntegrityError for the named artifact.
func Integrity(artifact, format string, args ...interface{}) *IntegrityError {
	return &IntegrityError{Artifact: artifact, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsIntegrity reports whether err is an IntegrityError.
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}

// UpstreamDetail returns the upstream payload attached to err, if any.
func UpstreamDetail(err error) string {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Detail
	}
	return ""
}
