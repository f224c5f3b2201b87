package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and token claims.
// Valid values are defined as constants below.
type Role string

const (
	// RoleStaff can file and view their own tickets and browse assets read-only.
	RoleStaff Role = "STAFF"
	// RoleITOfficer manages tickets, assets, and maintenance logs.
	RoleITOfficer Role = "IT_OFFICER"
	// RoleAdmin has all IT officer capabilities plus destructive operations.
	// Admin accounts are provisioned out-of-band; self-service signup never
	// produces one.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleITOfficer, RoleAdmin:
		return true
	default:
		return false
	}
}

// SelfServiceRoles returns the roles a user may choose at signup.
func SelfServiceRoles() []Role {
	return []Role{RoleStaff, RoleITOfficer}
}

// Identity is the minimal public identity of an authenticated user.
// It never carries the password hash.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Role   Role   `json:"role"`
}

// Claims is the session payload carried by the client in a signed token.
// Claims are immutable once issued: there is no server-side revocation
// list, so a token remains valid for any holder until ExpiresAt passes,
// even if the underlying credential is later altered or deleted.
type Claims struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// Identity returns the public identity embedded in the claims.
func (c Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

// Expired reports whether the claims are past their expiry at the given time.
func (c Claims) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
