package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/trackr-gov/trackr/config"
	"github.com/trackr-gov/trackr/internal/data"
	"github.com/trackr-gov/trackr/internal/service"
	"github.com/trackr-gov/trackr/internal/token"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth        *service.AuthService
	Tickets     *service.TicketService
	Assets      *service.AssetService
	Maintenance *service.MaintenanceService
	Dashboard   *service.DashboardService
	Codec       *token.Codec
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing the services.
type serviceRepositories struct {
	Users       *data.UserRepo
	Tickets     *data.TicketRepo
	Assets      *data.AssetRepo
	Maintenance *data.MaintenanceRepo
	Dashboard   *data.DashboardRepo
	Cache       *data.RedisCacheRepo
}

// buildRepositories builds repositories backing the services; no business rules here.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient) serviceRepositories {
	return serviceRepositories{
		Users:       data.NewUserRepo(db),
		Tickets:     data.NewTicketRepo(db),
		Assets:      data.NewAssetRepo(db),
		Maintenance: data.NewMaintenanceRepo(db),
		Dashboard:   data.NewDashboardRepo(db),
		Cache:       data.NewRedisCacheRepo(redisClient),
	}
}

// BuildServices constructs the full service graph from configuration and
// storage connections.
func BuildServices(deps ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}

	repos := buildRepositories(deps.DB, deps.RedisClient)

	codec, err := token.NewCodec(token.CodecOptions{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("build token codec: %w", err)
	}

	authSvc, err := service.NewAuthService(service.AuthServiceOptions{
		Users:      repos.Users,
		Codec:      codec,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build auth service: %w", err)
	}

	ticketSvc, err := service.NewTicketService(service.TicketServiceOptions{
		Tickets: repos.Tickets,
		Logger:  deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build ticket service: %w", err)
	}

	assetSvc, err := service.NewAssetService(service.AssetServiceOptions{
		Assets: repos.Assets,
		Logger: deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build asset service: %w", err)
	}

	maintenanceSvc, err := service.NewMaintenanceService(service.MaintenanceServiceOptions{
		Maintenance: repos.Maintenance,
		Logger:      deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build maintenance service: %w", err)
	}

	dashboardSvc, err := service.NewDashboardService(service.DashboardServiceOptions{
		Dashboard: repos.Dashboard,
		Users:     repos.Users,
		Cache:     repos.Cache,
		CacheTTL:  cfg.Cache.DashboardTTL,
		Logger:    deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build dashboard service: %w", err)
	}

	return &ServiceContainer{
		Auth:        authSvc,
		Tickets:     ticketSvc,
		Assets:      assetSvc,
		Maintenance: maintenanceSvc,
		Dashboard:   dashboardSvc,
		Codec:       codec,
	}, nil
}
