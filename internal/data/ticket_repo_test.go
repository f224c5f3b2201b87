package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-gov/trackr/internal/domain/auth"
	"github.com/trackr-gov/trackr/internal/domain/model"
	"github.com/trackr-gov/trackr/internal/testutil"
)

func TestTicketRepo_CreateStartsOpen(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		users := NewUserRepo(db)
		tickets := NewTicketRepo(db)

		user, err := users.Create(ctx, *userParams("staff@trackr.gov", auth.RoleStaff))
		require.NoError(t, err)

		created, err := tickets.Create(ctx, user.ID, &model.CreateTicketRequest{
			Title:       "Monitor flickers",
			Description: "Screen flickers at 60Hz.",
		})
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusOpen, created.Status)
		assert.Equal(t, model.TicketPriorityMedium, created.Priority)
		assert.Equal(t, user.ID, created.ReportedBy)
		require.NotNil(t, created.ReporterName)
		assert.Equal(t, "Test User", *created.ReporterName)
	})
}

func TestTicketRepo_ListScopedToReporter(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		users := NewUserRepo(db)
		tickets := NewTicketRepo(db)

		alice, err := users.Create(ctx, *userParams("alice@trackr.gov", auth.RoleStaff))
		require.NoError(t, err)
		bob, err := users.Create(ctx, *userParams("bob@trackr.gov", auth.RoleStaff))
		require.NoError(t, err)

		_, err = tickets.Create(ctx, alice.ID, &model.CreateTicketRequest{Title: "A1", Description: "d"})
		require.NoError(t, err)
		_, err = tickets.Create(ctx, bob.ID, &model.CreateTicketRequest{Title: "B1", Description: "d"})
		require.NoError(t, err)

		all, err := tickets.List(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		mine, err := tickets.List(ctx, &model.TicketsListOptions{ReportedBy: &alice.ID})
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "A1", mine[0].Title)
	})
}

func TestTicketRepo_Update(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		users := NewUserRepo(db)
		tickets := NewTicketRepo(db)

		user, err := users.Create(ctx, *userParams("officer@trackr.gov", auth.RoleITOfficer))
		require.NoError(t, err)

		created, err := tickets.Create(ctx, user.ID, &model.CreateTicketRequest{
			Title:       "Disk full",
			Description: "C: drive at 100%.",
		})
		require.NoError(t, err)

		status := model.TicketStatusResolved
		updated, err := tickets.Update(ctx, created.ID, model.UpdateTicketRequest{
			Status:     &status,
			Resolution: testutil.StringPtr("Cleared temp files."),
		})
		require.NoError(t, err)
		assert.Equal(t, model.TicketStatusResolved, updated.Status)
		require.NotNil(t, updated.Resolution)
		assert.Equal(t, "Cleared temp files.", *updated.Resolution)

		_, err = tickets.Update(ctx, "no-such-id", model.UpdateTicketRequest{Status: &status})
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})
}
