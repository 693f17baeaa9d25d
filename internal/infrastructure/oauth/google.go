package oauth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/application/account"
)

var ErrNoIdentity = errors.New("google token carries no identity")

// GoogleStubDecoder reads email and name from a Google ID token without
// checking its signature, issuer or expiry. It is a development stub.
type GoogleStubDecoder struct {
	parser *jwt.Parser
}

func NewGoogleStubDecoder() *GoogleStubDecoder {
	return &GoogleStubDecoder{parser: jwt.NewParser()}
}

type googleClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func (d *GoogleStubDecoder) Decode(token string) (account.GoogleIdentity, error) {
	var claims googleClaims
	if _, _, err := d.parser.ParseUnverified(strings.TrimSpace(token), &claims); err != nil {
		return account.GoogleIdentity{}, err
	}
	if claims.Email == "" && claims.Name == "" {
		return account.GoogleIdentity{}, ErrNoIdentity
	}
	return account.GoogleIdentity{Email: claims.Email, Name: claims.Name}, nil
}

var _ account.GoogleIdentityDecoder = (*GoogleStubDecoder)(nil)
