package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/trackr-gov/trackr/internal/data"
	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
	"github.com/trackr-gov/trackr/internal/domain/model"
	"github.com/trackr-gov/trackr/internal/mocks"
	"github.com/trackr-gov/trackr/internal/service"
)

func newTestAuthHandlers(t *testing.T, users *mocks.MockUserRepository) *AuthHandlers {
	t.Helper()
	codec := newTestCodec(t)
	svc, err := service.NewAuthService(service.AuthServiceOptions{
		Users:      users,
		Codec:      codec,
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, err)
	return &AuthHandlers{Svc: svc, Codec: codec}
}

func findSessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandlers_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	h := newTestAuthHandlers(t, mockUsers)

	mockUsers.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(&model.User{ID: "user-1", Email: "new@agency.gov", Name: "New", Role: domainauth.RoleStaff}, nil)

	body := `{"email":"new@agency.gov","password":"longenough","name":"New","role":"STAFF"}`
	rec := httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Success bool `json:"success"`
		User    struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "user-1", resp.User.ID)

	// Signup never sets a session cookie; the client logs in afterwards.
	assert.Nil(t, findSessionCookie(t, rec))
}

func TestAuthHandlers_Signup_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	h := newTestAuthHandlers(t, mockUsers)

	mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, data.ErrEmailExists)

	body := `{"email":"taken@agency.gov","password":"longenough","name":"Taken","role":"STAFF"}`
	rec := httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
}

func TestAuthHandlers_Signup_RejectsUnknownFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newTestAuthHandlers(t, mocks.NewMockUserRepository(ctrl))

	body := `{"email":"a@b.gov","password":"longenough","name":"A","role":"STAFF","admin":true}`
	rec := httptest.NewRecorder()
	h.Signup(rec, httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestAuthHandlers_Login_SetsSessionCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	h := newTestAuthHandlers(t, mockUsers)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	mockUsers.EXPECT().
		GetByEmail(gomock.Any(), "officer@agency.gov").
		Return(&model.User{
			ID:           "user-1",
			Email:        "officer@agency.gov",
			Role:         domainauth.RoleITOfficer,
			PasswordHash: string(hash),
		}, nil)

	body := `{"email":"officer@agency.gov","password":"correct-horse"}`
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := findSessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int((7 * 24 * 60 * 60)), cookie.MaxAge)
	assert.False(t, cookie.Secure, "plain HTTP request must not set Secure")

	// The cookie must decode back to the caller's session.
	claims, err := h.Codec.Decode(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domainauth.RoleITOfficer, claims.Role)

	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthHandlers_Login_SecureCookieBehindProxy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	h := newTestAuthHandlers(t, mockUsers)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	mockUsers.EXPECT().
		GetByEmail(gomock.Any(), "officer@agency.gov").
		Return(&model.User{ID: "user-1", Email: "officer@agency.gov", Role: domainauth.RoleITOfficer, PasswordHash: string(hash)}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"officer@agency.gov","password":"correct-horse"}`))
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := findSessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestAuthHandlers_Login_FailureShapesIdentical(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := mocks.NewMockUserRepository(ctrl)
	h := newTestAuthHandlers(t, mockUsers)

	mockUsers.EXPECT().
		GetByEmail(gomock.Any(), "nobody@agency.gov").
		Return(nil, data.ErrUserNotFound)
	recUnknown := httptest.NewRecorder()
	h.Login(recUnknown, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"nobody@agency.gov","password":"whatever1"}`)))

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	mockUsers.EXPECT().
		GetByEmail(gomock.Any(), "officer@agency.gov").
		Return(&model.User{ID: "user-1", Email: "officer@agency.gov", Role: domainauth.RoleITOfficer, PasswordHash: string(hash)}, nil)
	recWrong := httptest.NewRecorder()
	h.Login(recWrong, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"officer@agency.gov","password":"wrong-horse"}`)))

	// Unknown account and wrong password are indistinguishable on the wire.
	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, http.StatusUnauthorized, recWrong.Code)
	assert.Equal(t, recUnknown.Body.String(), recWrong.Body.String())
	assert.Contains(t, recUnknown.Body.String(), "Invalid email or password")
	assert.Nil(t, findSessionCookie(t, recUnknown))
	assert.Nil(t, findSessionCookie(t, recWrong))
}

func TestAuthHandlers_Logout_ClearsCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newTestAuthHandlers(t, mocks.NewMockUserRepository(ctrl))

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := findSessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)

	// Logout with no session behaves identically.
	rec = httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandlers_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newTestAuthHandlers(t, mocks.NewMockUserRepository(ctrl))

	handler := RequireAuth(h.Codec)(http.HandlerFunc(h.Me))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithCookie(http.MethodGet, "/auth/me", issueToken(t, h.Codec, domainauth.RoleStaff)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp["userId"])
	assert.Equal(t, "user@agency.gov", resp["email"])
	assert.Equal(t, "STAFF", resp["role"])
	assert.Len(t, resp, 3)
}

func TestAuthHandlers_Me_IndependentOfStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Sessions are stateless: a valid unexpired token answers /auth/me even
	// after the account row is gone. The mock carries no expectations, so
	// any repository lookup fails the test.
	h := newTestAuthHandlers(t, mocks.NewMockUserRepository(ctrl))

	handler := RequireAuth(h.Codec)(http.HandlerFunc(h.Me))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithCookie(http.MethodGet, "/auth/me", issueToken(t, h.Codec, domainauth.RoleStaff)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp["userId"])
}
