// Package service implements the business logic between the HTTP layer and
// the repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/trackr-gov/trackr/internal/core"
	"github.com/trackr-gov/trackr/internal/data"
	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
	"github.com/trackr-gov/trackr/internal/domain/model"
	apperrors "github.com/trackr-gov/trackr/internal/errors"
	"github.com/trackr-gov/trackr/internal/token"
)

// ErrInvalidCredentials is returned for any login failure. Unknown email
// and wrong password collapse into this single error so responses cannot
// reveal which accounts exist.
var ErrInvalidCredentials = apperrors.Unauthorized("Invalid email or password")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users      core.UserRepository // Required: user repository
	Codec      *token.Codec        // Required: session token codec
	BcryptCost int                 // Optional: defaults to bcrypt.DefaultCost
	Logger     *slog.Logger        // Optional: structured logger
}

// AuthService handles account registration and credential verification.
type AuthService struct {
	users      core.UserRepository
	codec      *token.Codec
	bcryptCost int
	logger     *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Users == nil {
		return nil, errors.New("UserRepository is required")
	}
	if opts.Codec == nil {
		return nil, errors.New("token codec is required")
	}
	cost := opts.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "auth_service")
	}

	return &AuthService{
		users:      opts.Users,
		codec:      opts.Codec,
		bcryptCost: cost,
		logger:     logger,
	}, nil
}

// Signup registers a new self-service account. The plaintext password never
// leaves this method; only the bcrypt hash is stored.
func (s *AuthService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	if req == nil {
		return nil, apperrors.Validation("signup request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, core.CreateUserParams{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         req.Role,
		Department:   req.Department,
	})
	if err != nil {
		if errors.Is(err, data.ErrEmailExists) {
			return nil, apperrors.Conflict("Email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "account created", "user_id", user.ID, "role", user.Role)
	}
	return user, nil
}

// LoginResult contains the issued token and the authenticated user.
type LoginResult struct {
	Token  string
	Claims domainauth.Claims
	User   *model.User
}

// Login verifies credentials and issues a signed session token. All
// failures return ErrInvalidCredentials; callers must not distinguish
// unknown accounts from wrong passwords.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*LoginResult, error) {
	if req == nil {
		return nil, apperrors.Validation("login request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			// Burn a comparison so unknown emails cost the same as wrong
			// passwords.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	signed, claims, err := s.codec.Encode(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "login", "user_id", user.ID, "role", user.Role)
	}
	return &LoginResult{Token: signed, Claims: claims, User: user}, nil
}

// dummyHash is a valid bcrypt hash of an unguessable value, used to
// equalize login timing for unknown emails.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
