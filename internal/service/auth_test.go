package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/trackr-gov/trackr/internal/core"
	"github.com/trackr-gov/trackr/internal/data"
	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
	"github.com/trackr-gov/trackr/internal/domain/model"
	apperrors "github.com/trackr-gov/trackr/internal/errors"
	"github.com/trackr-gov/trackr/internal/mocks"
	"github.com/trackr-gov/trackr/internal/token"
)

const testUserID = "user-1"

// Helper function to create an AuthService for testing. MinCost keeps the
// bcrypt work factor out of the test runtime.
func newTestAuthService(t *testing.T, users core.UserRepository) *AuthService {
	t.Helper()
	codec, err := token.NewCodec(token.CodecOptions{Secret: "test-secret"})
	require.NoError(t, err)
	svc, err := NewAuthService(AuthServiceOptions{
		Users:      users,
		Codec:      codec,
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, err)
	return svc
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestNewAuthService_RequiredDependencies(t *testing.T) {
	codec, err := token.NewCodec(token.CodecOptions{Secret: "test-secret"})
	require.NoError(t, err)

	svc, err := NewAuthService(AuthServiceOptions{Codec: codec})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "UserRepository is required")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, err = NewAuthService(AuthServiceOptions{Users: mocks.NewMockUserRepository(ctrl)})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "token codec is required")
}

func TestAuthService_Signup_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, mockUsers)

	ctx := context.Background()
	dept := "Finance"
	req := &model.SignupRequest{
		Email:      "New.Hire@Agency.GOV",
		Password:   "longenough",
		Name:       "New Hire",
		Role:       domainauth.RoleStaff,
		Department: &dept,
	}

	mockUsers.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, params core.CreateUserParams) (*model.User, error) {
			// The stored hash must verify against the plaintext and the
			// email must be normalized before it reaches the repository.
			assert.Equal(t, "new.hire@agency.gov", params.Email)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(params.PasswordHash), []byte("longenough")))
			assert.Equal(t, domainauth.RoleStaff, params.Role)
			require.NotNil(t, params.Department)
			assert.Equal(t, "Finance", *params.Department)
			return &model.User{ID: testUserID, Email: params.Email, Name: params.Name, Role: params.Role}, nil
		}).
		Times(1)

	user, err := svc.Signup(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, testUserID, user.ID)
}

func TestAuthService_Signup_ValidationFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The repository must never be reached for invalid requests.
	mockUsers := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, mockUsers)

	tests := []struct {
		name    string
		req     *model.SignupRequest
		wantErr string
	}{
		{
			name:    "nil request",
			req:     nil,
			wantErr: "signup request is required",
		},
		{
			name:    "short password",
			req:     &model.SignupRequest{Email: "a@b.gov", Password: "short", Name: "A", Role: domainauth.RoleStaff},
			wantErr: "password must be at least 8 characters",
		},
		{
			name:    "admin role rejected",
			req:     &model.SignupRequest{Email: "a@b.gov", Password: "longenough", Name: "A", Role: domainauth.RoleAdmin},
			wantErr: "invalid role selected",
		},
		{
			name:    "missing email",
			req:     &model.SignupRequest{Password: "longenough", Name: "A", Role: domainauth.RoleStaff},
			wantErr: "email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Signup(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, user)
			assert.True(t, apperrors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, mockUsers)

	ctx := context.Background()
	mockUsers.EXPECT().
		Create(ctx, gomock.Any()).
		Return(nil, data.ErrEmailExists).
		Times(1)

	user, err := svc.Signup(ctx, &model.SignupRequest{
		Email:    "taken@agency.gov",
		Password: "longenough",
		Name:     "Taken",
		Role:     domainauth.RoleITOfficer,
	})
	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "Email already registered")
}

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, mockUsers)

	ctx := context.Background()
	stored := &model.User{
		ID:           testUserID,
		Email:        "officer@agency.gov",
		Name:         "Officer",
		Role:         domainauth.RoleITOfficer,
		PasswordHash: hashPassword(t, "correct-horse"),
	}
	mockUsers.EXPECT().
		GetByEmail(ctx, "officer@agency.gov").
		Return(stored, nil).
		Times(1)

	result, err := svc.Login(ctx, &model.LoginRequest{Email: "officer@agency.gov", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, testUserID, result.Claims.UserID)
	assert.Equal(t, domainauth.RoleITOfficer, result.Claims.Role)
	assert.Equal(t, stored, result.User)

	// The issued token must decode back to the same session.
	codec, err := token.NewCodec(token.CodecOptions{Secret: "test-secret"})
	require.NoError(t, err)
	claims, err := codec.Decode(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Claims, claims)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, mockUsers)
	ctx := context.Background()

	mockUsers.EXPECT().
		GetByEmail(ctx, "nobody@agency.gov").
		Return(nil, data.ErrUserNotFound).
		Times(1)
	_, unknownErr := svc.Login(ctx, &model.LoginRequest{Email: "nobody@agency.gov", Password: "whatever1"})

	mockUsers.EXPECT().
		GetByEmail(ctx, "officer@agency.gov").
		Return(&model.User{
			ID:           testUserID,
			Email:        "officer@agency.gov",
			Role:         domainauth.RoleITOfficer,
			PasswordHash: hashPassword(t, "correct-horse"),
		}, nil).
		Times(1)
	_, wrongErr := svc.Login(ctx, &model.LoginRequest{Email: "officer@agency.gov", Password: "wrong-horse"})

	// Unknown account and wrong password must yield the exact same error.
	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.True(t, apperrors.IsUnauthorized(unknownErr))
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	svc := newTestAuthService(t, mockUsers)
	ctx := context.Background()

	repoErr := errors.New("connection refused")
	mockUsers.EXPECT().
		GetByEmail(ctx, "officer@agency.gov").
		Return(nil, repoErr).
		Times(1)

	_, err := svc.Login(ctx, &model.LoginRequest{Email: "officer@agency.gov", Password: "correct-horse"})
	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
