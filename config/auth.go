package config

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// devFallbackSecret is used only when DEV mode is active and no JWT_SECRET
// is set. Validate rejects it outside dev mode.
const devFallbackSecret = "trackr-dev-secret-do-not-use-in-production"

// AuthConfig groups authentication and session token configuration.
type AuthConfig struct {
	// JWTSecret is the symmetric key used to sign and verify session tokens.
	// Required in production; see Validate.
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is the lifetime of an issued session token. The cookie
	// max-age is derived from this value so both always agree.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"168h"` // 7 days

	// BcryptCost is the bcrypt work factor used when hashing passwords.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"10"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.TokenTTL <= 0 {
		a.TokenTTL = 168 * time.Hour
	}
	if a.BcryptCost < bcrypt.MinCost || a.BcryptCost > bcrypt.MaxCost {
		a.BcryptCost = bcrypt.DefaultCost
	}
}

// Validate checks the configuration for startup-blocking problems.
// A missing signing secret is fatal outside dev mode; in dev mode a fixed
// fallback is substituted so local setups work without extra ceremony.
func (a *AuthConfig) Validate(isDev bool) error {
	if a.JWTSecret != "" {
		return nil
	}
	if !isDev {
		return errors.New("JWT_SECRET is required outside dev mode; refusing to start with a default signing secret")
	}
	a.JWTSecret = devFallbackSecret
	return nil
}
