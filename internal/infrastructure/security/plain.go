package security

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
)

var ErrMismatch = errors.New("password mismatch")

// PlainHasher stores credentials as given and compares by exact equality.
// It is the default so existing plaintext records keep working.
type PlainHasher struct{}

func NewPlainHasher() PlainHasher { return PlainHasher{} }

func (PlainHasher) Hash(password string) (string, error) { return password, nil }

func (PlainHasher) Compare(stored string, password string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrMismatch
	}
	return nil
}

// Hasher is the credential strategy selected by PASSWORD_HASHER.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(stored string, password string) error
}

// NewHasher returns the hasher named by kind: "plain" (default) or "bcrypt".
func NewHasher(kind string, bcryptCost int) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "plain":
		return PlainHasher{}, nil
	case "bcrypt":
		return NewBcryptHasher(bcryptCost), nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", kind)
	}
}
