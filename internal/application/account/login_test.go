package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
)

func seedVerified(t *testing.T, d testDeps, verified bool) {
	t.Helper()
	seedAccount(t, d.accounts, domain.Account{
		ID: "acc-1", Name: "Alice", Email: "alice@x.com", Password: "secret1", Role: "customer", IsVerified: verified,
	})
}

func TestLogin_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   LoginInput
		code string
	}{
		{"missing password", LoginInput{Email: "alice@x.com", Role: "customer"}, "missing_fields"},
		{"missing all", LoginInput{}, "missing_fields"},
		{"bad email", LoginInput{Email: "alice.x.com", Password: "p", Role: "customer"}, "invalid_email"},
		{"bad role", LoginInput{Email: "alice@x.com", Password: "p", Role: "root"}, "invalid_role"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, _ := newSvcForTest(t)
			_, err := svc.Login(context.Background(), tc.in)
			requireErrCode(t, err, tc.code)
		})
	}
}

func TestLogin_MissingFieldsMessage(t *testing.T) {
	t.Parallel()
	svc, _ := newSvcForTest(t)

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@b.co"})

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "All fields are required: email, password, role", de.Message)
}

func TestLogin_UnknownEmail_NotFound(t *testing.T) {
	t.Parallel()
	svc, _ := newSvcForTest(t)

	_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@x.com", Password: "secret1", Role: "customer"})

	requireErrCode(t, err, "user_not_found")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestLogin_RoleMismatch_NotFoundNotUnauthorized(t *testing.T) {
	t.Parallel()
	svc, d := newSvcForTest(t)
	seedVerified(t, d, true)

	_, err := svc.Login(context.Background(), LoginInput{Email: "alice@x.com", Password: "secret1", Role: "admin"})

	requireErrCode(t, err, "user_not_found")
}

func TestLogin_UnverifiedWithWrongPassword_Forbidden(t *testing.T) {
	t.Parallel()
	svc, d := newSvcForTest(t)
	seedVerified(t, d, false)

	_, err := svc.Login(context.Background(), LoginInput{Email: "alice@x.com", Password: "wrong!!", Role: "customer"})

	requireErrCode(t, err, "email_not_verified")
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

func TestLogin_WrongPassword_Unauthorized(t *testing.T) {
	t.Parallel()
	svc, d := newSvcForTest(t)
	seedVerified(t, d, true)

	_, err := svc.Login(context.Background(), LoginInput{Email: "alice@x.com", Password: "secret2", Role: "customer"})

	requireErrCode(t, err, "invalid_password")
	assert.Equal(t, domain.KindAuth, domain.KindOf(err))
}

func TestLogin_Success_NormalizesEmail(t *testing.T) {
	t.Parallel()
	svc, d := newSvcForTest(t)
	seedVerified(t, d, true)

	a, err := svc.Login(context.Background(), LoginInput{Email: "ALICE@x.com", Password: "secret1", Role: "customer"})

	require.NoError(t, err)
	assert.Equal(t, "acc-1", a.ID)
	assert.Equal(t, "customer", a.Role)
	assert.True(t, a.IsVerified)

	last := (*d.audits)[len(*d.audits)-1]
	assert.Equal(t, "account.login", last.action)
}

func TestRegisterVerifyLogin_RoundTrip(t *testing.T) {
	t.Parallel()
	svc, d := newSvcForTest(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@x.com", Password: "secret1", Role: "customer"})
	require.NoError(t, err)

	stored, _ := d.accounts.get("alice@x.com")
	assert.False(t, stored.IsVerified)

	_, err = svc.Login(ctx, LoginInput{Email: "alice@x.com", Password: "secret1", Role: "customer"})
	requireErrCode(t, err, "email_not_verified")

	vr, err := svc.VerifyEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, VerifyVerified, vr.Status)

	a, err := svc.Login(ctx, LoginInput{Email: "alice@x.com", Password: "secret1", Role: "customer"})
	require.NoError(t, err)
	assert.Equal(t, "customer", a.Role)
	assert.True(t, a.IsVerified)
}
