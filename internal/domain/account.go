package domain

import (
	"regexp"
	"strings"
	"time"
)

// Account is a registered user. Email is stored normalized and never changes;
// IsVerified only ever moves from false to true.
type Account struct {
	ID         string
	Name       string
	Email      string
	Password   string
	Role       string
	IsVerified bool
	CreatedAt  time.Time
}

// ContactMessage is an append-only contact form submission.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail checks the basic local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
