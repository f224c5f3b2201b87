package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
	"github.com/trackr-gov/trackr/internal/token"
)

// sessionCookieName is the cookie carrying the signed session token.
const sessionCookieName = "auth-token"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// resolveClaims extracts and verifies the session token from the request
// cookie. Absent, malformed, tampered, and expired tokens all resolve to
// nil; resolution never errors.
func resolveClaims(r *http.Request, codec *token.Codec) *domainauth.Claims {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := codec.Decode(cookie.Value)
	if err != nil {
		return nil
	}
	return &claims
}

// RequireAuth returns a middleware that requires a valid session token.
// Unauthenticated requests get a 401 response; authenticated requests
// continue with the verified claims in the request context.
func RequireAuth(codec *token.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := resolveClaims(r, codec)
			if claims == nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "unauthorized",
					Err:     errors.New("Not authenticated"),
				})
				return
			}

			ctx := SetClaimsInContext(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOperation returns a middleware that gates a route on the role
// policy. It must run inside RequireAuth. Denial is a 401, matching the
// external contract: clients treat it as "re-authenticate", not "ask an
// admin".
func RequireOperation(op domainauth.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || !domainauth.Permits(claims.Role, op) {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "unauthorized",
					Err:     errors.New("Not authorized"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth returns a middleware that resolves the session when present.
// Unauthenticated requests continue without claims; page handlers decide
// what to render.
func OptionalAuth(codec *token.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims := resolveClaims(r, codec); claims != nil {
				r = r.WithContext(SetClaimsInContext(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// pathClass is the gatekeeper's classification of a request path.
type pathClass int

const (
	classPublic pathClass = iota
	classProtected
	classEntry
	classBypass
)

// protectedPrefixes are browser sections that require a session. Subpaths
// inherit the classification.
var protectedPrefixes = []string{"/dashboard", "/assets", "/tickets", "/maintenance"}

// classifyPath sorts a request path into the gatekeeper's decision classes.
// API and auth endpoints enforce their own checks, so the gatekeeper leaves
// them alone.
func classifyPath(path string) pathClass {
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/auth/") ||
		path == "/healthz" || strings.HasPrefix(path, "/static/") {
		return classBypass
	}
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return classProtected
		}
	}
	if path == "/login" || path == "/signup" {
		return classEntry
	}
	return classPublic
}

// Gatekeeper returns the edge middleware for browser navigations. Protected
// pages without a valid session redirect to /login; the login and signup
// pages with a valid session redirect to /dashboard. Everything else passes
// through, with claims attached when a valid session is present.
func Gatekeeper(codec *token.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class := classifyPath(r.URL.Path)
			if class == classBypass {
				next.ServeHTTP(w, r)
				return
			}

			claims := resolveClaims(r, codec)
			switch {
			case class == classProtected && claims == nil:
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			case class == classEntry && claims != nil:
				http.Redirect(w, r, "/dashboard", http.StatusFound)
				return
			}

			if claims != nil {
				r = r.WithContext(SetClaimsInContext(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}
