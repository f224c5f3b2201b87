package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthConfig_Sanitize_Defaults(t *testing.T) {
	a := AuthConfig{TokenTTL: -1, BcryptCost: 99}
	a.Sanitize()

	assert.Equal(t, 168*time.Hour, a.TokenTTL)
	assert.Equal(t, bcrypt.DefaultCost, a.BcryptCost)
}

func TestAuthConfig_Validate_RequiresSecretInProduction(t *testing.T) {
	a := AuthConfig{}
	err := a.Validate(false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestAuthConfig_Validate_DevFallback(t *testing.T) {
	a := AuthConfig{}
	require.NoError(t, a.Validate(true))
	assert.NotEmpty(t, a.JWTSecret)
}

func TestAuthConfig_Validate_ExplicitSecret(t *testing.T) {
	a := AuthConfig{JWTSecret: "s3cret"}
	require.NoError(t, a.Validate(false))
	assert.Equal(t, "s3cret", a.JWTSecret)
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	c := AppConfig{}
	c.Sanitize()

	assert.True(t, c.IsDev)
}

func TestAppConfig_Validate_PropagatesAuth(t *testing.T) {
	c := AppConfig{}
	require.Error(t, c.Validate())

	c.IsDev = true
	require.NoError(t, c.Validate())
}
