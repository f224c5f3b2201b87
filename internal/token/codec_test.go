package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
)

func newTestCodec(t *testing.T, now time.Time) *Codec {
	t.Helper()
	c, err := NewCodec(CodecOptions{
		Secret: "test-secret",
		TTL:    time.Hour,
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)
	return c
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	_, err := NewCodec(CodecOptions{Secret: ""})
	assert.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t, now)

	id := domainauth.Identity{
		UserID: "u-123",
		Email:  "staff@trackr.gov",
		Role:   domainauth.RoleStaff,
	}
	signed, issued, err := c.Encode(id)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.Equal(t, now, issued.IssuedAt)
	assert.Equal(t, now.Add(time.Hour), issued.ExpiresAt)

	claims, err := c.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, "u-123", claims.UserID)
	assert.Equal(t, "staff@trackr.gov", claims.Email)
	assert.Equal(t, domainauth.RoleStaff, claims.Role)
	assert.True(t, now.Add(time.Hour).Equal(claims.ExpiresAt))
}

func TestCodec_Decode_Expired(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCodec(t, issuedAt)

	signed, _, err := c.Encode(domainauth.Identity{UserID: "u-1", Role: domainauth.RoleAdmin})
	require.NoError(t, err)

	late, err := NewCodec(CodecOptions{
		Secret: "test-secret",
		TTL:    time.Hour,
		Now:    func() time.Time { return issuedAt.Add(2 * time.Hour) },
	})
	require.NoError(t, err)

	_, err = late.Decode(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_HonorsInjectedClock(t *testing.T) {
	// A token long expired by the wall clock must still decode when the
	// codec clock sits inside its validity window.
	issuedAt := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newTestCodec(t, issuedAt)

	signed, _, err := c.Encode(domainauth.Identity{UserID: "u-1", Role: domainauth.RoleStaff})
	require.NoError(t, err)

	within, err := NewCodec(CodecOptions{
		Secret: "test-secret",
		TTL:    time.Hour,
		Now:    func() time.Time { return issuedAt.Add(30 * time.Minute) },
	})
	require.NoError(t, err)

	claims, err := within.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
}

func TestCodec_Decode_RejectsNotYetValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID: "u-1",
		Role:   domainauth.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			NotBefore: jwt.NewNumericDate(now.Add(time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Hour)),
		},
	})
	signed, err := raw.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	c := newTestCodec(t, now)
	_, err = c.Decode(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_WrongSecret(t *testing.T) {
	now := time.Now()
	c := newTestCodec(t, now)
	signed, _, err := c.Encode(domainauth.Identity{UserID: "u-1", Role: domainauth.RoleStaff})
	require.NoError(t, err)

	other, err := NewCodec(CodecOptions{Secret: "other-secret", TTL: time.Hour})
	require.NoError(t, err)

	_, err = other.Decode(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_Malformed(t *testing.T) {
	c := newTestCodec(t, time.Now())

	for _, tok := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := c.Decode(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestCodec_Decode_RejectsForeignAlgorithm(t *testing.T) {
	c := newTestCodec(t, time.Now())

	// alg=none tokens must never verify regardless of payload.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": "u-1",
		"role":   "ADMIN",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = c.Decode(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_RejectsMissingExpiry(t *testing.T) {
	// A hand-built token with no exp claim is invalid even with a good
	// signature.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u-1",
		"email":  "staff@trackr.gov",
		"role":   "STAFF",
	})
	signed, err := raw.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	c := newTestCodec(t, time.Now())
	_, err = c.Decode(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
