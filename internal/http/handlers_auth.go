package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/trackr-gov/trackr/internal/domain/model"
	"github.com/trackr-gov/trackr/internal/service"
	"github.com/trackr-gov/trackr/internal/token"
)

// AuthHandlers provides HTTP handlers for signup, login, logout, and session
// introspection.
type AuthHandlers struct {
	Svc          *service.AuthService
	Codec        *token.Codec
	CookieDomain string
	Logger       *slog.Logger
}

// Signup handles POST /auth/signup. A new account is never logged in; the
// client follows up with a login request.
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Signup(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    user.Public(),
	})
}

// Login handles POST /auth/login. Success sets the session cookie and
// returns the minimal public identity.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Login(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(r, result.Token, int(h.Codec.TTL().Seconds())))
	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":    result.User.ID,
			"email": result.User.Email,
			"role":  result.User.Role,
		},
	})
}

// Logout handles POST /auth/logout. The cookie is overwritten with an
// expired empty value; the operation is idempotent and requires no session.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie(r, "", -1))
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me handles GET /auth/me. Runs behind RequireAuth, so claims are always
// present. The response comes straight from the verified claims: a token
// stays good until its expiry even if the account has since been altered
// or deleted, so no store lookup happens here.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "unauthorized",
			Err:     errors.New("Not authenticated"),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"userId": claims.UserID,
		"email":  claims.Email,
		"role":   claims.Role,
	})
}

// sessionCookie builds the session cookie. Secure is derived per request so
// TLS-terminating proxies still get secure cookies via X-Forwarded-Proto.
func (h *AuthHandlers) sessionCookie(r *http.Request, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isRequestSecure(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// isRequestSecure reports whether the request arrived over TLS, directly or
// via a forwarding proxy.
func isRequestSecure(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
