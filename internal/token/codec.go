// Package token implements the signed session token codec.
//
// The codec is the single source of truth for token signing and
// verification: the auth service encodes with it and both the session
// resolver and the route gatekeeper decode with it, so the two request-time
// checks can never disagree on secret or algorithm. It is pure and free of
// I/O; callers own clock and transport concerns.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, foreign algorithm, malformed structure, or past expiry.
// Callers must treat all of these identically; no partial claims escape.
var ErrInvalidToken = errors.New("invalid session token")

// sessionClaims is the wire shape of the session payload. The custom
// fields mirror the public identity; registered claims carry iat/exp.
type sessionClaims struct {
	UserID string          `json:"userId"`
	Email  string          `json:"email"`
	Role   domainauth.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with an HS256 symmetric key.
type Codec struct {
	secret []byte
	ttl    time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// CodecOptions groups construction parameters for Codec.
type CodecOptions struct {
	Secret string
	TTL    time.Duration
	// Now overrides the clock (tests). Defaults to time.Now.
	Now func() time.Time
}

// NewCodec constructs a Codec. The secret must be non-empty; configuration
// validation upstream guarantees this in production, but the constructor
// fails closed anyway.
func NewCodec(opts CodecOptions) (*Codec, error) {
	if opts.Secret == "" {
		return nil, errors.New("token codec requires a signing secret")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Codec{secret: []byte(opts.Secret), ttl: ttl, now: now}, nil
}

// Encode issues a signed token for the given identity. The returned claims
// carry the issued-at and absolute expiry embedded in the token.
func (c *Codec) Encode(id domainauth.Identity) (string, domainauth.Claims, error) {
	issued := c.now().UTC().Truncate(time.Second)
	expires := issued.Add(c.ttl)

	wire := sessionClaims{
		UserID: id.UserID,
		Email:  id.Email,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(c.secret)
	if err != nil {
		return "", domainauth.Claims{}, fmt.Errorf("sign session token: %w", err)
	}

	return signed, domainauth.Claims{
		UserID:    id.UserID,
		Email:     id.Email,
		Role:      id.Role,
		IssuedAt:  issued,
		ExpiresAt: expires,
	}, nil
}

// Decode verifies the token's signature and expiry and returns the embedded
// claims. Any failure collapses into ErrInvalidToken; the caller never sees
// a partially verified result.
func (c *Codec) Decode(tokenString string) (domainauth.Claims, error) {
	if tokenString == "" {
		return domainauth.Claims{}, ErrInvalidToken
	}

	// The parser validates registered claims against the wall clock only,
	// so claim validation is disabled here and expiry is checked against
	// the codec clock below.
	wire := &sessionClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	_, err := parser.ParseWithClaims(tokenString, wire, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return domainauth.Claims{}, ErrInvalidToken
	}

	now := c.now().UTC()
	if wire.ExpiresAt == nil || !now.Before(wire.ExpiresAt.Time) {
		// A token without an expiry is never acceptable.
		return domainauth.Claims{}, ErrInvalidToken
	}
	if wire.NotBefore != nil && now.Before(wire.NotBefore.Time) {
		return domainauth.Claims{}, ErrInvalidToken
	}

	claims := domainauth.Claims{
		UserID:    wire.UserID,
		Email:     wire.Email,
		Role:      wire.Role,
		ExpiresAt: wire.ExpiresAt.Time,
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.Time
	}

	return claims, nil
}

// TTL returns the configured token lifetime. The HTTP layer uses this to
// derive the cookie max-age so cookie and token always expire together.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}
