// Package model defines the core data types and request shapes for the
// trackr ticketing and asset inventory system.
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/idna"

	"github.com/trackr-gov/trackr/internal/domain/auth"
)

const (
	maxNameLen       = 255
	minPasswordLen   = 8
	maxPasswordLen   = 128
	maxEmailLen      = 254
	maxDepartmentLen = 100
)

// User is a registered account. PasswordHash never serializes to JSON;
// handlers return PublicUser instead.
type User struct {
	ID           string    `json:"id"                   db:"id"`
	Email        string    `json:"email"                db:"email"`
	PasswordHash string    `json:"-"                    db:"password_hash"`
	Name         string    `json:"name"                 db:"name"`
	Role         auth.Role `json:"role"                 db:"role"`
	Department   *string   `json:"department,omitempty" db:"department"`
	CreatedAt    time.Time `json:"created_at"           db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"           db:"updated_at"`
}

// PublicUser is the externally visible projection of a User.
type PublicUser struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       auth.Role `json:"role"`
	Department *string   `json:"department,omitempty"`
}

// Public returns the projection of u safe to hand to clients.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
	}
}

// Identity returns the session identity for u.
func (u *User) Identity() auth.Identity {
	return auth.Identity{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// SignupRequest represents a self-service account registration.
type SignupRequest struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	Role       auth.Role `json:"role"`
	Department *string   `json:"department,omitempty"`
}

// Validate validates the SignupRequest fields and normalizes the email
// in place. Only self-service roles are accepted; an ADMIN role here is a
// validation error, not a permission one.
func (r *SignupRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxNameLen {
		return errors.New("name cannot exceed 255 characters")
	}

	email, err := NormalizeEmail(r.Email)
	if err != nil {
		return err
	}
	r.Email = email

	if len(r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	if len(r.Password) > maxPasswordLen {
		return errors.New("password cannot exceed 128 characters")
	}

	if !selfServiceRole(r.Role) {
		return errors.New("invalid role selected")
	}

	if r.Department != nil {
		d := strings.TrimSpace(*r.Department)
		if d == "" {
			r.Department = nil
		} else {
			if utf8.RuneCountInString(d) > maxDepartmentLen {
				return errors.New("department cannot exceed 100 characters")
			}
			*r.Department = d
		}
	}
	return nil
}

func selfServiceRole(role auth.Role) bool {
	for _, r := range auth.SelfServiceRoles() {
		if role == r {
			return true
		}
	}
	return false
}

// LoginRequest represents a credential check.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the LoginRequest fields and normalizes the email.
// It deliberately says nothing about which field was wrong beyond
// presence; credential mismatch reporting happens in the auth service.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required and cannot be empty")
	}
	if r.Password == "" {
		return errors.New("password is required and cannot be empty")
	}
	email, err := NormalizeEmail(r.Email)
	if err != nil {
		return err
	}
	r.Email = email
	return nil
}

// NormalizeEmail lowercases and validates an email address. The domain part
// goes through IDNA lookup rules so internationalized domains normalize to
// their ASCII form and one address cannot register twice under lookalike
// domains.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", errors.New("email is required and cannot be empty")
	}
	if len(email) > maxEmailLen {
		return "", errors.New("email cannot exceed 254 characters")
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", errors.New("invalid email format")
	}
	local, domain := email[:at], email[at+1:]
	if strings.ContainsAny(local, " \t@") {
		return "", errors.New("invalid email format")
	}

	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil || !strings.Contains(ascii, ".") {
		return "", errors.New("invalid email format")
	}
	return local + "@" + ascii, nil
}
