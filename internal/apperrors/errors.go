// Package apperrors defines the typed errors the API surfaces as HTTP statuses.
package apperrors

import (
	"fmt"
	"strings"
)

// GenerationError means question generation failed: the gateway call errored,
// returned no text, or returned a payload that does not parse as a list of
// questions. The caller surfaces it so the user can retry manually.
type GenerationError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("question generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("question generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ValidationError reports required fields that are missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// AuthError means the request carried no credential or an invalid one.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Reason)
}

// NotFoundError means a referenced resource does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// StoreError wraps an unexpected persistence failure. The wrapped cause is
// logged server-side; clients only see an opaque 500.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %v", e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
