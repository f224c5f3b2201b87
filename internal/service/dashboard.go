package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trackr-gov/trackr/internal/core"
	"github.com/trackr-gov/trackr/internal/data"
	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
	"github.com/trackr-gov/trackr/internal/domain/model"
)

const (
	dashboardRecentLimit    = 5
	dashboardMyTicketsLimit = 10
	defaultDashboardTTL     = 30 * time.Second
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Dashboard core.DashboardRepository // Required: aggregate queries
	Users     core.UserRepository     // Required: department lookup for staff views
	Cache     core.CacheRepository    // Optional: payload cache
	CacheTTL  time.Duration           // Optional: defaults to 30s
	Logger    *slog.Logger            // Optional: structured logger
}

// DashboardService assembles the role-scoped dashboard payload. Officers
// and admins see system-wide figures; staff see their own tickets plus
// assets from their department.
type DashboardService struct {
	dashboard core.DashboardRepository
	users     core.UserRepository
	cache     core.CacheRepository
	cacheTTL  time.Duration
	logger    *slog.Logger
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) (*DashboardService, error) {
	if opts.Dashboard == nil {
		return nil, errors.New("DashboardRepository is required")
	}
	if opts.Users == nil {
		return nil, errors.New("UserRepository is required")
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultDashboardTTL
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "dashboard_service")
	}

	return &DashboardService{
		dashboard: opts.Dashboard,
		users:     opts.Users,
		cache:     opts.Cache,
		cacheTTL:  ttl,
		logger:    logger,
	}, nil
}

// Get returns the dashboard for the caller, serving from cache when fresh.
// Cache failures degrade to a direct build; they never fail the request.
func (s *DashboardService) Get(ctx context.Context, identity domainauth.Identity) (*model.Dashboard, error) {
	key := s.cacheKey(identity)
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	var (
		out *model.Dashboard
		err error
	)
	if domainauth.Permits(identity.Role, domainauth.OpTicketViewAll) {
		out, err = s.buildOverview(ctx)
	} else {
		out, err = s.buildPersonal(ctx, identity)
	}
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, out)
	return out, nil
}

// cacheKey scopes cached payloads: one shared entry for the system-wide
// view, one per user for personal views.
func (s *DashboardService) cacheKey(identity domainauth.Identity) string {
	if domainauth.Permits(identity.Role, domainauth.OpTicketViewAll) {
		return "dashboard:overview"
	}
	return "dashboard:user:" + identity.UserID
}

func (s *DashboardService) fromCache(ctx context.Context, key string) *model.Dashboard {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "dashboard cache read failed", "err", err)
		}
		return nil
	}
	if raw == nil {
		return nil
	}
	var out model.Dashboard
	if err := json.Unmarshal(raw, &out); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "dashboard cache entry corrupt", "err", err)
		}
		return nil
	}
	return &out
}

func (s *DashboardService) toCache(ctx context.Context, key string, d *model.Dashboard) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "dashboard cache write failed", "err", err)
	}
}

// buildOverview assembles the system-wide dashboard. The independent
// aggregate queries fan out concurrently.
func (s *DashboardService) buildOverview(ctx context.Context) (*model.Dashboard, error) {
	var out model.Dashboard

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Stats.ActiveTickets, err = s.dashboard.ActiveTicketCount(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		out.Stats.OpenTickets, err = s.dashboard.TicketCountByStatus(gctx, model.TicketStatusOpen, nil)
		return err
	})
	g.Go(func() (err error) {
		out.Stats.InProgressTickets, err = s.dashboard.TicketCountByStatus(gctx, model.TicketStatusInProgress, nil)
		return err
	})
	g.Go(func() (err error) {
		out.Stats.ResolvedTickets, err = s.dashboard.TicketCountByStatus(gctx, model.TicketStatusResolved, nil)
		return err
	})
	g.Go(func() (err error) {
		out.Stats.PendingRepairs, err = s.dashboard.FailedMaintenanceCount(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Stats.TotalAssets, err = s.dashboard.AssetCount(gctx)
		return err
	})
	g.Go(func() error {
		tickets, err := s.dashboard.RecentTickets(gctx, nil, dashboardRecentLimit)
		if err != nil {
			return err
		}
		out.RecentTickets = derefTickets(tickets)
		return nil
	})
	g.Go(func() error {
		logs, err := s.dashboard.RecentMaintenance(gctx, dashboardRecentLimit)
		if err != nil {
			return err
		}
		out.RecentMaintenance = derefMaintenance(logs)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build dashboard overview: %w", err)
	}
	return &out, nil
}

// buildPersonal assembles the staff dashboard: ticket counts scoped to the
// caller, the caller's recent tickets, and assets from their department.
func (s *DashboardService) buildPersonal(ctx context.Context, identity domainauth.Identity) (*model.Dashboard, error) {
	var out model.Dashboard
	mine := identity.UserID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Stats.ActiveTickets, err = s.dashboard.ActiveTicketCount(gctx, &mine)
		return err
	})
	g.Go(func() (err error) {
		out.Stats.OpenTickets, err = s.dashboard.TicketCountByStatus(gctx, model.TicketStatusOpen, &mine)
		return err
	})
	g.Go(func() (err error) {
		out.Stats.InProgressTickets, err = s.dashboard.TicketCountByStatus(gctx, model.TicketStatusInProgress, &mine)
		return err
	})
	g.Go(func() (err error) {
		out.Stats.ResolvedTickets, err = s.dashboard.TicketCountByStatus(gctx, model.TicketStatusResolved, &mine)
		return err
	})
	g.Go(func() (err error) {
		out.Stats.TotalAssets, err = s.dashboard.AssetCount(gctx)
		return err
	})
	g.Go(func() error {
		tickets, err := s.dashboard.RecentTickets(gctx, &mine, dashboardMyTicketsLimit)
		if err != nil {
			return err
		}
		out.MyTickets = derefTickets(tickets)
		return nil
	})
	g.Go(func() error {
		user, err := s.users.GetByID(gctx, identity.UserID)
		if err != nil {
			if errors.Is(err, data.ErrUserNotFound) {
				return nil
			}
			return err
		}
		if user.Department == nil {
			return nil
		}
		assets, err := s.dashboard.AssetsByDepartment(gctx, *user.Department, dashboardRecentLimit)
		if err != nil {
			return err
		}
		out.DepartmentAssets = derefAssets(assets)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build personal dashboard: %w", err)
	}
	return &out, nil
}

func derefTickets(in []*model.Ticket) []model.Ticket {
	out := make([]model.Ticket, len(in))
	for i, t := range in {
		out[i] = *t
	}
	return out
}

func derefMaintenance(in []*model.MaintenanceLog) []model.MaintenanceLog {
	out := make([]model.MaintenanceLog, len(in))
	for i, m := range in {
		out[i] = *m
	}
	return out
}

func derefAssets(in []*model.Asset) []model.Asset {
	out := make([]model.Asset, len(in))
	for i, a := range in {
		out[i] = *a
	}
	return out
}
