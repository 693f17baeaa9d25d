package oauth

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-key"))
	require.NoError(t, err)
	return tok
}

func TestGoogleStubDecoder_ReadsClaims(t *testing.T) {
	d := NewGoogleStubDecoder()

	id, err := d.Decode(signed(t, jwt.MapClaims{"email": "dana@gmail.com", "name": "Dana"}))
	require.NoError(t, err)
	assert.Equal(t, "dana@gmail.com", id.Email)
	assert.Equal(t, "Dana", id.Name)
}

func TestGoogleStubDecoder_NoIdentityClaims(t *testing.T) {
	d := NewGoogleStubDecoder()

	_, err := d.Decode(signed(t, jwt.MapClaims{"sub": "123"}))
	assert.True(t, errors.Is(err, ErrNoIdentity))
}

func TestGoogleStubDecoder_NotAJWT(t *testing.T) {
	d := NewGoogleStubDecoder()

	_, err := d.Decode("not-a-token")
	assert.Error(t, err)
}
