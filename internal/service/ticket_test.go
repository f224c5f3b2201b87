package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/trackr-gov/trackr/internal/data"
	domainauth "github.com/trackr-gov/trackr/internal/domain/auth"
	"github.com/trackr-gov/trackr/internal/domain/model"
	apperrors "github.com/trackr-gov/trackr/internal/errors"
	"github.com/trackr-gov/trackr/internal/mocks"
)

const testTicketID = "ticket-1"

var (
	staffIdentity   = domainauth.Identity{UserID: "staff-1", Email: "staff@agency.gov", Role: domainauth.RoleStaff}
	officerIdentity = domainauth.Identity{UserID: "officer-1", Email: "officer@agency.gov", Role: domainauth.RoleITOfficer}
)

func newTestTicketService(t *testing.T, tickets *mocks.MockTicketRepository) *TicketService {
	t.Helper()
	svc, err := NewTicketService(TicketServiceOptions{Tickets: tickets})
	require.NoError(t, err)
	return svc
}

func TestNewTicketService_RequiredDependency(t *testing.T) {
	svc, err := NewTicketService(TicketServiceOptions{})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "TicketRepository is required")
}

func TestTicketService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	svc := newTestTicketService(t, mockTickets)

	ctx := context.Background()
	req := &model.CreateTicketRequest{Title: "Broken monitor", Description: "No signal on boot"}
	expected := &model.Ticket{ID: testTicketID, Title: "Broken monitor", ReportedBy: staffIdentity.UserID}

	mockTickets.EXPECT().
		Create(ctx, staffIdentity.UserID, req).
		Return(expected, nil).
		Times(1)

	got, err := svc.Create(ctx, staffIdentity, req)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestTicketService_Create_UnknownAsset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	svc := newTestTicketService(t, mockTickets)

	ctx := context.Background()
	mockTickets.EXPECT().
		Create(ctx, staffIdentity.UserID, gomock.Any()).
		Return(nil, apperrors.ForeignKey("Related asset not found")).
		Times(1)

	got, err := svc.Create(ctx, staffIdentity, &model.CreateTicketRequest{Title: "t", Description: "d"})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Asset not found")
}

func TestTicketService_List_StaffScopedToOwnTickets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	svc := newTestTicketService(t, mockTickets)

	ctx := context.Background()
	other := "someone-else"
	mockTickets.EXPECT().
		List(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, opts *model.TicketsListOptions) ([]*model.Ticket, error) {
			// Staff listings are pinned to the caller no matter what the
			// request asked for.
			require.NotNil(t, opts.ReportedBy)
			assert.Equal(t, staffIdentity.UserID, *opts.ReportedBy)
			return []*model.Ticket{{ID: testTicketID, ReportedBy: staffIdentity.UserID}}, nil
		}).
		Times(1)

	got, err := svc.List(ctx, staffIdentity, &model.TicketsListOptions{ReportedBy: &other})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestTicketService_List_OfficerSeesAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	svc := newTestTicketService(t, mockTickets)

	ctx := context.Background()
	mockTickets.EXPECT().
		List(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, opts *model.TicketsListOptions) ([]*model.Ticket, error) {
			assert.Nil(t, opts.ReportedBy)
			return nil, nil
		}).
		Times(1)

	_, err := svc.List(ctx, officerIdentity, nil)
	require.NoError(t, err)
}

func TestTicketService_Get_StaffCannotSeeOthersTickets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	svc := newTestTicketService(t, mockTickets)

	ctx := context.Background()
	mockTickets.EXPECT().
		GetByID(ctx, testTicketID).
		Return(&model.Ticket{ID: testTicketID, ReportedBy: "someone-else"}, nil).
		Times(2)

	// A foreign ticket looks exactly like a missing one to staff.
	got, err := svc.Get(ctx, staffIdentity, testTicketID)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Ticket not found")

	got, err = svc.Get(ctx, officerIdentity, testTicketID)
	require.NoError(t, err)
	assert.Equal(t, testTicketID, got.ID)
}

func TestTicketService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	svc := newTestTicketService(t, mockTickets)

	ctx := context.Background()
	status := model.TicketStatusResolved
	req := model.UpdateTicketRequest{Status: &status}
	mockTickets.EXPECT().
		Update(ctx, testTicketID, req).
		Return(nil, data.ErrTicketNotFound).
		Times(1)

	got, err := svc.Update(ctx, testTicketID, req)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTicketService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTickets := mocks.NewMockTicketRepository(ctrl)
	svc := newTestTicketService(t, mockTickets)

	ctx := context.Background()
	mockTickets.EXPECT().Delete(ctx, testTicketID).Return(true, nil).Times(1)
	require.NoError(t, svc.Delete(ctx, testTicketID))

	mockTickets.EXPECT().Delete(ctx, "missing").Return(false, nil).Times(1)
	err := svc.Delete(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
