// Package mocks provides mock implementations for testing the trackr services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// Create, GetByID, GetByEmail, List, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/trackr-gov/trackr/internal/core UserRepository

// Generate mock for TicketRepository interface from internal/core package.
// This creates MockTicketRepository with methods for all TicketRepository interface methods:
// Create, GetByID, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=ticket_repository_mock.go github.com/trackr-gov/trackr/internal/core TicketRepository

// Generate mock for AssetRepository interface from internal/core package.
// This creates MockAssetRepository with methods for all AssetRepository interface methods:
// Create, GetByID, GetByTag, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=asset_repository_mock.go github.com/trackr-gov/trackr/internal/core AssetRepository

// Generate mock for MaintenanceRepository interface from internal/core package.
// This creates MockMaintenanceRepository with methods for all MaintenanceRepository interface methods:
// Create, List
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=maintenance_repository_mock.go github.com/trackr-gov/trackr/internal/core MaintenanceRepository

// Generate mock for DashboardRepository interface from internal/core package.
// This creates MockDashboardRepository with methods for all DashboardRepository interface methods:
// TicketCountByStatus, ActiveTicketCount, FailedMaintenanceCount, AssetCount, RecentTickets, RecentMaintenance, AssetsByDepartment
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=dashboard_repository_mock.go github.com/trackr-gov/trackr/internal/core DashboardRepository

// Generate mock for CacheRepository interface from internal/core package.
// This creates MockCacheRepository with methods for all CacheRepository interface methods:
// Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/trackr-gov/trackr/internal/core CacheRepository
