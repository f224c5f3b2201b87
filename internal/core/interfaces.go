package core

import (
	"context"
	"time"

	"github.com/trackr-gov/trackr/internal/domain/auth"
	"github.com/trackr-gov/trackr/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// CreateUserParams groups parameters for UserRepository.Create. The hash is
// produced by the auth service; repositories never see plaintext passwords.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Name         string
	Role         auth.Role
	Department   *string
}

// UserRepository defines the interface for user account data operations.
type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TicketRepository defines the interface for helpdesk ticket data operations.
type TicketRepository interface {
	Create(ctx context.Context, reportedBy string, req *model.CreateTicketRequest) (*model.Ticket, error)
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
	List(ctx context.Context, opts *model.TicketsListOptions) ([]*model.Ticket, error)
	Update(ctx context.Context, id string, req model.UpdateTicketRequest) (*model.Ticket, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// AssetRepository defines the interface for asset inventory data operations.
// Delete cascades to dependent tickets and maintenance logs at the schema
// level.
type AssetRepository interface {
	Create(ctx context.Context, req *model.CreateAssetRequest) (*model.Asset, error)
	GetByID(ctx context.Context, id string) (*model.Asset, error)
	GetByTag(ctx context.Context, assetTag string) (*model.Asset, error)
	List(ctx context.Context, opts *model.AssetsListOptions) ([]*model.Asset, error)
	Update(ctx context.Context, id string, req model.UpdateAssetRequest) (*model.Asset, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// MaintenanceRepository defines the interface for maintenance log data operations.
type MaintenanceRepository interface {
	Create(ctx context.Context, technician string, req *model.CreateMaintenanceLogRequest) (*model.MaintenanceLog, error)
	List(ctx context.Context, opts *model.MaintenanceListOptions) ([]*model.MaintenanceLog, error)
}

// DashboardRepository defines the aggregate queries behind the dashboard.
type DashboardRepository interface {
	TicketCountByStatus(ctx context.Context, status model.TicketStatus, reportedBy *string) (int, error)
	ActiveTicketCount(ctx context.Context, reportedBy *string) (int, error)
	FailedMaintenanceCount(ctx context.Context) (int, error)
	AssetCount(ctx context.Context) (int, error)
	RecentTickets(ctx context.Context, reportedBy *string, limit int) ([]*model.Ticket, error)
	RecentMaintenance(ctx context.Context, limit int) ([]*model.MaintenanceLog, error)
	AssetsByDepartment(ctx context.Context, department string, limit int) ([]*model.Asset, error)
}

// CacheRepository defines a small read-through cache used for dashboard
// payloads. Implementations must treat a miss as (nil, nil).
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
