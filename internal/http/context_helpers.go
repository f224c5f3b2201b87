package httpx

import (
	"context"

	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
)

// claimsKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type claimsKey struct{}

// SetClaimsInContext returns a child context that carries verified session claims.
// If claims is nil, the original ctx is returned unchanged.
func SetClaimsInContext(ctx context.Context, claims *domainauth.Claims) context.Context {
	if claims == nil {
		return ctx
	}
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the session claims from context and a boolean indicating presence.
func ClaimsFromContext(ctx context.Context) (*domainauth.Claims, bool) {
	if claims, ok := ctx.Value(claimsKey{}).(*domainauth.Claims); ok && claims != nil {
		return claims, true
	}
	return nil, false
}

// IdentityFromContext returns the caller's identity derived from the session
// claims, or false when the request is unauthenticated.
func IdentityFromContext(ctx context.Context) (domainauth.Identity, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return domainauth.Identity{}, false
	}
	return domainauth.Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, true
}
