package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindConflict       ErrKind = "conflict"       // 400 (duplicate identity is reported as a bad request)
	KindAuth           ErrKind = "auth"           // 401
	KindForbidden      ErrKind = "forbidden"      // 403
	KindNotFound       ErrKind = "not_found"      // 404
	KindTooLarge       ErrKind = "too_large"      // 413
	KindInfrastructure ErrKind = "infrastructure" // 500
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients
// - Meta: optional details (field, reason, etc.)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// KindOf returns the kind of a domain error, or KindInternal for anything else.
func KindOf(err error) ErrKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrPayloadTooLarge(limit int64, cause error) *Error {
	e := Wrap(KindTooLarge, "payload_too_large", "Request body too large", cause)
	e.Meta = map[string]string{"limit_bytes": fmt.Sprintf("%d", limit)}
	return e
}

// ErrMissingFields reports that one or more required fields were empty.
// msg is flow specific, e.g. "All fields are required: email, password, role".
func ErrMissingFields(msg string) *Error {
	return New(KindValidation, "missing_fields", msg)
}

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", "missing required field"), map[string]string{
		"field": field,
	})
}

func ErrInvalidField(field, reason string) *Error {
	return WithMeta(New(KindValidation, "invalid_field", "invalid field"), map[string]string{
		"field":  field,
		"reason": reason,
	})
}

func ErrInvalidEmail(msg string) *Error {
	return New(KindValidation, "invalid_email", msg)
}

func ErrInvalidRole(role string) *Error {
	return WithMeta(
		New(KindValidation, "invalid_role", "Invalid role. Must be one of: "+RoleList()),
		map[string]string{"role": role},
	)
}

func ErrPasswordTooShort(min int) *Error {
	return WithMeta(
		New(KindValidation, "password_too_short", fmt.Sprintf("Password must be at least %d characters long", min)),
		map[string]string{"min": fmt.Sprint(min)},
	)
}

func ErrMissingToken(msg string) *Error {
	return New(KindValidation, "missing_token", msg)
}

// ----------------------
// Conflict
// ----------------------

func ErrEmailAlreadyExists() *Error {
	return New(KindConflict, "email_already_exists", "Email already registered")
}

// ----------------------
// Auth errors (401)
// ----------------------

func ErrInvalidPassword() *Error {
	return New(KindAuth, "invalid_password", "Invalid password")
}

// ----------------------
// Forbidden (403)
// ----------------------

func ErrEmailNotVerified() *Error {
	return New(KindForbidden, "email_not_verified", "Please verify your email address before logging in")
}

// ----------------------
// Not Found (404)
// ----------------------

// Role mismatch on login also reports this; callers cannot tell the two apart.
func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "User not found")
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrEmailDeliveryFailed(detail string) *Error {
	return WithMeta(New(KindInfrastructure, "email_delivery_failed", detail), map[string]string{
		"reason": "delivery",
	})
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
