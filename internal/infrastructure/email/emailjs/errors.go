package emailjs

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed dispatch.
type ErrorKind string

const (
	// KindConfiguration: credentials or recipient missing, nothing was sent.
	KindConfiguration ErrorKind = "configuration"
	// KindTransport: the request never got a response. Retried.
	KindTransport ErrorKind = "transport"
	// KindRejected: the provider answered 4xx. Terminal.
	KindRejected ErrorKind = "rejected"
	// KindUnavailable: 5xx or any other unexpected status. Retried.
	KindUnavailable ErrorKind = "unavailable"
)

// Error is the failure of a single attempt or of the dispatch as a whole.
type Error struct {
	Kind   ErrorKind
	Status int
	Body   string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("emailjs %s: status %d, body: %s", e.Kind, e.Status, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("emailjs %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("emailjs %s", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Message is the caller-facing text: the provider body when there is one.
func (e *Error) Message() string {
	if e.Body != "" {
		return e.Body
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

// Retryable reports whether another attempt may succeed.
func Retryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return true
	}
	return e.Kind == KindTransport || e.Kind == KindUnavailable
}

func classifyStatus(status int, body string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status >= 400 && status < 500:
		return &Error{Kind: KindRejected, Status: status, Body: body}
	default:
		return &Error{Kind: KindUnavailable, Status: status, Body: body}
	}
}
