package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/trackr-gov/trackr/internal/domain/model"
	"github.com/trackr-gov/trackr/internal/mocks"
)

type dashboardMocks struct {
	dashboard *mocks.MockDashboardRepository
	users     *mocks.MockUserRepository
	cache     *mocks.MockCacheRepository
}

func newTestDashboardService(t *testing.T, ctrl *gomock.Controller) (*DashboardService, dashboardMocks) {
	t.Helper()
	m := dashboardMocks{
		dashboard: mocks.NewMockDashboardRepository(ctrl),
		users:     mocks.NewMockUserRepository(ctrl),
		cache:     mocks.NewMockCacheRepository(ctrl),
	}
	svc, err := NewDashboardService(DashboardServiceOptions{
		Dashboard: m.dashboard,
		Users:     m.users,
		Cache:     m.cache,
	})
	require.NoError(t, err)
	return svc, m
}

// expectOverviewQueries wires the aggregate queries behind the system-wide
// dashboard with fixed figures.
func expectOverviewQueries(m dashboardMocks) {
	m.dashboard.EXPECT().ActiveTicketCount(gomock.Any(), nil).Return(7, nil)
	m.dashboard.EXPECT().TicketCountByStatus(gomock.Any(), model.TicketStatusOpen, nil).Return(4, nil)
	m.dashboard.EXPECT().TicketCountByStatus(gomock.Any(), model.TicketStatusInProgress, nil).Return(3, nil)
	m.dashboard.EXPECT().TicketCountByStatus(gomock.Any(), model.TicketStatusResolved, nil).Return(12, nil)
	m.dashboard.EXPECT().FailedMaintenanceCount(gomock.Any()).Return(2, nil)
	m.dashboard.EXPECT().AssetCount(gomock.Any()).Return(40, nil)
	m.dashboard.EXPECT().RecentTickets(gomock.Any(), nil, dashboardRecentLimit).
		Return([]*model.Ticket{{ID: "t-1"}}, nil)
	m.dashboard.EXPECT().RecentMaintenance(gomock.Any(), dashboardRecentLimit).
		Return([]*model.MaintenanceLog{{ID: "m-1"}}, nil)
}

func TestDashboardService_Get_OverviewForOfficers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestDashboardService(t, ctrl)
	ctx := context.Background()

	m.cache.EXPECT().Get(ctx, "dashboard:overview").Return(nil, nil)
	expectOverviewQueries(m)
	m.cache.EXPECT().Set(ctx, "dashboard:overview", gomock.Any(), defaultDashboardTTL).Return(nil)

	got, err := svc.Get(ctx, officerIdentity)
	require.NoError(t, err)
	assert.Equal(t, model.DashboardStats{
		ActiveTickets:     7,
		OpenTickets:       4,
		InProgressTickets: 3,
		ResolvedTickets:   12,
		PendingRepairs:    2,
		TotalAssets:       40,
	}, got.Stats)
	require.Len(t, got.RecentTickets, 1)
	assert.Equal(t, "t-1", got.RecentTickets[0].ID)
	require.Len(t, got.RecentMaintenance, 1)
	assert.Empty(t, got.MyTickets)
	assert.Empty(t, got.DepartmentAssets)
}

func TestDashboardService_Get_PersonalForStaff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestDashboardService(t, ctrl)
	ctx := context.Background()
	mine := staffIdentity.UserID
	dept := "Finance"

	m.cache.EXPECT().Get(ctx, "dashboard:user:"+mine).Return(nil, nil)
	m.dashboard.EXPECT().ActiveTicketCount(gomock.Any(), &mine).Return(2, nil)
	m.dashboard.EXPECT().TicketCountByStatus(gomock.Any(), model.TicketStatusOpen, &mine).Return(1, nil)
	m.dashboard.EXPECT().TicketCountByStatus(gomock.Any(), model.TicketStatusInProgress, &mine).Return(1, nil)
	m.dashboard.EXPECT().TicketCountByStatus(gomock.Any(), model.TicketStatusResolved, &mine).Return(5, nil)
	m.dashboard.EXPECT().AssetCount(gomock.Any()).Return(40, nil)
	m.dashboard.EXPECT().RecentTickets(gomock.Any(), &mine, dashboardMyTicketsLimit).
		Return([]*model.Ticket{{ID: "t-2", ReportedBy: mine}}, nil)
	m.users.EXPECT().GetByID(gomock.Any(), mine).
		Return(&model.User{ID: mine, Department: &dept}, nil)
	m.dashboard.EXPECT().AssetsByDepartment(gomock.Any(), dept, dashboardRecentLimit).
		Return([]*model.Asset{{ID: "a-1", Department: dept}}, nil)
	m.cache.EXPECT().Set(ctx, "dashboard:user:"+mine, gomock.Any(), defaultDashboardTTL).Return(nil)

	got, err := svc.Get(ctx, staffIdentity)
	require.NoError(t, err)
	// Staff never see repair figures; the zero value marks the field absent.
	assert.Zero(t, got.Stats.PendingRepairs)
	assert.Equal(t, 2, got.Stats.ActiveTickets)
	assert.Equal(t, 40, got.Stats.TotalAssets)
	require.Len(t, got.MyTickets, 1)
	assert.Equal(t, "t-2", got.MyTickets[0].ID)
	require.Len(t, got.DepartmentAssets, 1)
	assert.Empty(t, got.RecentTickets)
}

func TestDashboardService_Get_StaffWithoutDepartment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestDashboardService(t, ctrl)
	ctx := context.Background()
	mine := staffIdentity.UserID

	m.cache.EXPECT().Get(ctx, "dashboard:user:"+mine).Return(nil, nil)
	m.dashboard.EXPECT().ActiveTicketCount(gomock.Any(), &mine).Return(0, nil)
	m.dashboard.EXPECT().TicketCountByStatus(gomock.Any(), gomock.Any(), &mine).Return(0, nil).Times(3)
	m.dashboard.EXPECT().AssetCount(gomock.Any()).Return(0, nil)
	m.dashboard.EXPECT().RecentTickets(gomock.Any(), &mine, dashboardMyTicketsLimit).Return(nil, nil)
	// No department on file means no department asset query at all.
	m.users.EXPECT().GetByID(gomock.Any(), mine).Return(&model.User{ID: mine}, nil)
	m.cache.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Get(ctx, staffIdentity)
	require.NoError(t, err)
	assert.Empty(t, got.DepartmentAssets)
}

func TestDashboardService_Get_CacheHitSkipsQueries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestDashboardService(t, ctrl)
	ctx := context.Background()

	cached := &model.Dashboard{Stats: model.DashboardStats{TotalAssets: 99}}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)

	// No repository expectations: a fresh cache entry must short-circuit.
	m.cache.EXPECT().Get(ctx, "dashboard:overview").Return(raw, nil)

	got, err := svc.Get(ctx, officerIdentity)
	require.NoError(t, err)
	assert.Equal(t, cached, got)
}

func TestDashboardService_Get_CacheFailuresDegrade(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestDashboardService(t, ctrl)
	ctx := context.Background()

	m.cache.EXPECT().Get(ctx, "dashboard:overview").Return(nil, errors.New("redis down"))
	expectOverviewQueries(m)
	m.cache.EXPECT().Set(ctx, "dashboard:overview", gomock.Any(), gomock.Any()).
		Return(errors.New("redis down"))

	got, err := svc.Get(ctx, officerIdentity)
	require.NoError(t, err)
	assert.Equal(t, 40, got.Stats.TotalAssets)
}

func TestDashboardService_Get_QueryErrorFailsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newTestDashboardService(t, ctrl)
	ctx := context.Background()

	queryErr := errors.New("relation does not exist")
	m.cache.EXPECT().Get(ctx, "dashboard:overview").Return(nil, nil)
	m.dashboard.EXPECT().ActiveTicketCount(gomock.Any(), nil).Return(0, queryErr)
	m.dashboard.EXPECT().TicketCountByStatus(gomock.Any(), gomock.Any(), nil).Return(0, nil).AnyTimes()
	m.dashboard.EXPECT().FailedMaintenanceCount(gomock.Any()).Return(0, nil).AnyTimes()
	m.dashboard.EXPECT().AssetCount(gomock.Any()).Return(0, nil).AnyTimes()
	m.dashboard.EXPECT().RecentTickets(gomock.Any(), nil, gomock.Any()).Return(nil, nil).AnyTimes()
	m.dashboard.EXPECT().RecentMaintenance(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	got, err := svc.Get(ctx, officerIdentity)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, queryErr)
}

func TestNewDashboardService_RequiredDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, err := NewDashboardService(DashboardServiceOptions{Users: mocks.NewMockUserRepository(ctrl)})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "DashboardRepository is required")

	svc, err = NewDashboardService(DashboardServiceOptions{Dashboard: mocks.NewMockDashboardRepository(ctrl)})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "UserRepository is required")
}
