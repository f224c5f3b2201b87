package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
	"github.com/trackr-gov/trackr/internal/token"
)

const testSecret = "test-secret"

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec(token.CodecOptions{Secret: testSecret})
	require.NoError(t, err)
	return codec
}

func issueToken(t *testing.T, codec *token.Codec, role domainauth.Role) string {
	t.Helper()
	signed, _, err := codec.Encode(domainauth.Identity{
		UserID: "user-1",
		Email:  "user@agency.gov",
		Role:   role,
	})
	require.NoError(t, err)
	return signed
}

func issueExpiredToken(t *testing.T) string {
	t.Helper()
	past := time.Now().Add(-30 * 24 * time.Hour)
	codec, err := token.NewCodec(token.CodecOptions{
		Secret: testSecret,
		Now:    func() time.Time { return past },
	})
	require.NoError(t, err)
	signed, _, err := codec.Encode(domainauth.Identity{UserID: "user-1", Role: domainauth.RoleStaff})
	require.NoError(t, err)
	return signed
}

func requestWithCookie(method, target, tokenValue string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	if tokenValue != "" {
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: tokenValue})
	}
	return r
}

func TestRequireAuth(t *testing.T) {
	codec := newTestCodec(t)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantCalled bool
	}{
		{"missing cookie", "", http.StatusUnauthorized, false},
		{"garbage token", "not-a-token", http.StatusUnauthorized, false},
		{"expired token", issueExpiredToken(t), http.StatusUnauthorized, false},
		{"valid token", issueToken(t, codec, domainauth.RoleStaff), http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				claims, ok := ClaimsFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, "user-1", claims.UserID)
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			RequireAuth(codec)(next).ServeHTTP(rec, requestWithCookie(http.MethodGet, "/api/tickets", tt.token))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

func TestRequireOperation_DeniedRoleGets401(t *testing.T) {
	codec := newTestCodec(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	handler := RequireAuth(codec)(RequireOperation(domainauth.OpTicketManage)(next))

	// Staff may not manage tickets; the handler must never run.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithCookie(http.MethodPatch, "/api/tickets/t-1", issueToken(t, codec, domainauth.RoleStaff)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "Not authorized")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithCookie(http.MethodPatch, "/api/tickets/t-1", issueToken(t, codec, domainauth.RoleITOfficer)))
	assert.True(t, called)
}

func TestRequireOperation_WithoutClaimsDenies(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without claims")
	})

	rec := httptest.NewRecorder()
	RequireOperation(domainauth.OpAssetDelete)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/assets/a-1", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClassifyPath(t *testing.T) {
	tests := []struct {
		path string
		want pathClass
	}{
		{"/", classPublic},
		{"/login", classEntry},
		{"/signup", classEntry},
		{"/dashboard", classProtected},
		{"/assets", classProtected},
		{"/assets/a-1", classProtected},
		{"/tickets/t-1", classProtected},
		{"/maintenance", classProtected},
		{"/assetsfoo", classPublic},
		{"/api/tickets", classBypass},
		{"/auth/login", classBypass},
		{"/healthz", classBypass},
		{"/static/app.css", classBypass},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyPath(tt.path))
		})
	}
}

func TestGatekeeper(t *testing.T) {
	codec := newTestCodec(t)
	valid := issueToken(t, codec, domainauth.RoleStaff)

	tests := []struct {
		name         string
		path         string
		token        string
		wantStatus   int
		wantLocation string
	}{
		{"protected without session", "/dashboard", "", http.StatusFound, "/login"},
		{"protected with expired session", "/tickets", issueExpiredToken(t), http.StatusFound, "/login"},
		{"protected with session", "/dashboard", valid, http.StatusOK, ""},
		{"protected subpath without session", "/assets/a-1", "", http.StatusFound, "/login"},
		{"login without session", "/login", "", http.StatusOK, ""},
		{"login with session", "/login", valid, http.StatusFound, "/dashboard"},
		{"signup with session", "/signup", valid, http.StatusFound, "/dashboard"},
		{"root with session", "/", valid, http.StatusOK, ""},
		{"api bypassed", "/api/tickets", "", http.StatusOK, ""},
		{"auth bypassed", "/auth/login", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			Gatekeeper(codec)(next).ServeHTTP(rec, requestWithCookie(http.MethodGet, tt.path, tt.token))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
		})
	}
}

func TestGatekeeper_AttachesClaimsForPages(t *testing.T) {
	codec := newTestCodec(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "user@agency.gov", claims.Email)
	})

	rec := httptest.NewRecorder()
	Gatekeeper(codec)(next).ServeHTTP(rec,
		requestWithCookie(http.MethodGet, "/dashboard", issueToken(t, codec, domainauth.RoleStaff)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
