package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
	"github.com/trackr-gov/trackr/internal/service"
	"github.com/trackr-gov/trackr/internal/token"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth        *service.AuthService
	Tickets     *service.TicketService
	Assets      *service.AssetService
	Maintenance *service.MaintenanceService
	Dashboard   *service.DashboardService
	Codec       *token.Codec

	CookieDomain string
	Logger       *slog.Logger // Logger for request logging and panics (optional)
}

// NewRouter creates and configures the HTTP handler: JSON API plus the
// browser page shells, wrapped in logging, panic recovery, and the edge
// gatekeeper.
func NewRouter(services RouterServices) (http.Handler, error) {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		Codec:        services.Codec,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	ticketHandlers := &TicketHandlers{Svc: services.Tickets}
	assetHandlers := &AssetHandlers{Svc: services.Assets}
	maintenanceHandlers := &MaintenanceHandlers{Svc: services.Maintenance}
	dashboardHandlers := &DashboardHandlers{Svc: services.Dashboard}

	registerAuthRoutes(mux, authHandlers, services.Codec)
	registerTicketRoutes(mux, ticketHandlers, services.Codec)
	registerAssetRoutes(mux, assetHandlers, services.Codec)
	registerMaintenanceRoutes(mux, maintenanceHandlers, services.Codec)

	authed := RequireAuth(services.Codec)
	mux.Handle("GET /api/dashboard", authed(http.HandlerFunc(dashboardHandlers.Get)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	uiHandlers, err := NewUIHandlers(logger)
	if err != nil {
		return nil, err
	}
	registerPageRoutes(mux, uiHandlers)

	handler := Gatekeeper(services.Codec)(mux)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, codec *token.Codec) {
	mux.HandleFunc("POST /auth/signup", h.Signup)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.Handle("GET /auth/me", RequireAuth(codec)(http.HandlerFunc(h.Me)))
}

func registerTicketRoutes(mux *http.ServeMux, h *TicketHandlers, codec *token.Codec) {
	authed := RequireAuth(codec)
	manage := func(next http.HandlerFunc) http.Handler {
		return authed(RequireOperation(domainauth.OpTicketManage)(next))
	}

	mux.Handle("POST /api/tickets", authed(RequireOperation(domainauth.OpTicketCreate)(http.HandlerFunc(h.Create))))
	mux.Handle("GET /api/tickets", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/tickets/{id}", authed(http.HandlerFunc(h.GetByID)))
	mux.Handle("PATCH /api/tickets/{id}", manage(h.Update))
	mux.Handle("DELETE /api/tickets/{id}", manage(h.Delete))
}

func registerAssetRoutes(mux *http.ServeMux, h *AssetHandlers, codec *token.Codec) {
	authed := RequireAuth(codec)
	write := func(next http.HandlerFunc) http.Handler {
		return authed(RequireOperation(domainauth.OpAssetWrite)(next))
	}

	mux.Handle("GET /api/assets", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/assets/types", authed(http.HandlerFunc(h.Types)))
	mux.Handle("GET /api/assets/{id}", authed(http.HandlerFunc(h.GetByID)))
	mux.Handle("POST /api/assets", write(h.Create))
	mux.Handle("PATCH /api/assets/{id}", write(h.Update))
	mux.Handle("DELETE /api/assets/{id}",
		authed(RequireOperation(domainauth.OpAssetDelete)(http.HandlerFunc(h.Delete))))
}

func registerMaintenanceRoutes(mux *http.ServeMux, h *MaintenanceHandlers, codec *token.Codec) {
	authed := RequireAuth(codec)
	mux.Handle("GET /api/maintenance",
		authed(RequireOperation(domainauth.OpMaintenanceRead)(http.HandlerFunc(h.List))))
	mux.Handle("POST /api/maintenance",
		authed(RequireOperation(domainauth.OpMaintenanceWrite)(http.HandlerFunc(h.Create))))
}

// registerPageRoutes wires the browser page shells. Access control is the
// gatekeeper's job; these handlers only render.
func registerPageRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.Handle("GET /{$}", h.Page("IT Helpdesk", "home"))
	mux.Handle("GET /login", h.Page("Sign in", "login"))
	mux.Handle("GET /signup", h.Page("Create account", "signup"))
	mux.Handle("GET /dashboard", h.Page("Dashboard", "dashboard"))
	mux.Handle("GET /assets", h.Page("Assets", "assets"))
	mux.Handle("GET /assets/{id}", h.Page("Asset", "asset-detail"))
	mux.Handle("GET /tickets", h.Page("Tickets", "tickets"))
	mux.Handle("GET /tickets/{id}", h.Page("Ticket", "ticket-detail"))
	mux.Handle("GET /maintenance", h.Page("Maintenance", "maintenance"))
}
