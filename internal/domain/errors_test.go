package domain

import (
	"errors"
	"testing"
)

func TestError_ErrorString_NoCause(t *testing.T) {
	err := New(KindAuth, "invalid_password", "Invalid password")

	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty error string")
	}
}

func TestError_ErrorString_WithCause(t *testing.T) {
	root := errors.New("root cause")
	err := Wrap(KindInfrastructure, "db_unavailable", "database unavailable", root)

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}
}

func TestError_Unwrap(t *testing.T) {
	root := errors.New("root")
	err := Wrap(KindInternal, "internal_error", "internal", root)

	if errors.Unwrap(err) != root {
		t.Fatalf("unwrap did not return cause")
	}
}

func TestWithMeta_AttachesMeta(t *testing.T) {
	err := ErrMissingField("email")

	if err.Meta == nil {
		t.Fatalf("expected meta to be set")
	}
	if err.Meta["field"] != "email" {
		t.Fatalf("unexpected meta value: %+v", err.Meta)
	}
}

func TestIs_MatchesCode(t *testing.T) {
	err := ErrInvalidPassword()

	if !Is(err, "invalid_password") {
		t.Fatalf("expected code match")
	}
	if Is(err, "something_else") {
		t.Fatalf("unexpected code match")
	}
}

func TestIs_NonDomainError(t *testing.T) {
	if Is(errors.New("plain error"), "invalid_password") {
		t.Fatalf("should not match non-domain error")
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want ErrKind
	}{
		{ErrEmailAlreadyExists(), KindConflict},
		{ErrUserNotFound(), KindNotFound},
		{ErrEmailNotVerified(), KindForbidden},
		{ErrInvalidPassword(), KindAuth},
		{ErrPasswordTooShort(6), KindValidation},
		{ErrPayloadTooLarge(16, nil), KindTooLarge},
		{errors.New("boom"), KindInternal},
	}
	for _, c := range cases {
		if got := KindOf(c.err); got != c.want {
			t.Fatalf("KindOf(%v)=%q want %q", c.err, got, c.want)
		}
	}
}

func TestErrPasswordTooShort_Message(t *testing.T) {
	err := ErrPasswordTooShort(6)
	if err.Message != "Password must be at least 6 characters long" {
		t.Fatalf("unexpected message: %q", err.Message)
	}
	if err.Meta["min"] != "6" {
		t.Fatalf("unexpected meta: %+v", err.Meta)
	}
}

func TestErrInvalidRole_ListsRoles(t *testing.T) {
	err := ErrInvalidRole("root")
	if err.Message != "Invalid role. Must be one of: customer, admin, manager, worker" {
		t.Fatalf("unexpected message: %q", err.Message)
	}
	if err.Meta["role"] != "root" {
		t.Fatalf("unexpected meta: %+v", err.Meta)
	}
}
