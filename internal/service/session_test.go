package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tableside/cafe-ordering-api/internal/domain"
	"github.com/tableside/cafe-ordering-api/internal/repository/dao"
	"github.com/tableside/cafe-ordering-api/internal/service"
)

func TestResolveTable(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	ctx := context.Background()

	_, err := svc.ResolveTable(ctx, 0)
	assert.ErrorIs(t, err, service.ErrInvalidTableNumber)
	_, err = svc.ResolveTable(ctx, -3)
	assert.ErrorIs(t, err, service.ErrInvalidTableNumber)

	created, err := svc.ResolveTable(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, created.TableNumber)
	assert.Equal(t, "https://cafe-ordering.com/qr/table7", created.QRCodeURL)
	assert.True(t, created.IsActive)

	// A second scan of the same code resolves to the same row.
	again, err := svc.ResolveTable(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&dao.Table{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveTableSession_SingleActivePerTable(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	ctx := context.Background()

	table, err := svc.ResolveTable(ctx, 1)
	require.NoError(t, err)

	first, err := svc.ResolveTableSession(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusActive, first.Status)

	second, err := svc.ResolveTableSession(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&dao.TableSession{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveGuestSession_MintsTokenWhenMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	ctx := context.Background()

	table, err := svc.ResolveTable(ctx, 1)
	require.NoError(t, err)
	tableSession, err := svc.ResolveTableSession(ctx, table)
	require.NoError(t, err)

	guest, err := svc.ResolveGuestSession(ctx, tableSession, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(guest.GuestToken, "guest_"))
	assert.Equal(t, domain.SessionStatusActive, guest.Status)
	assert.Equal(t, tableSession.ID, guest.TableSessionID)

	// A follow-up tokenless request from the same table piggybacks on the
	// latest active guest session instead of minting another.
	again, err := svc.ResolveGuestSession(ctx, tableSession, "")
	require.NoError(t, err)
	assert.Equal(t, guest.ID, again.ID)
}

func TestResolveGuestSession_TokenReuseIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	ctx := context.Background()

	table, err := svc.ResolveTable(ctx, 1)
	require.NoError(t, err)
	tableSession, err := svc.ResolveTableSession(ctx, table)
	require.NoError(t, err)

	first, err := svc.ResolveGuestSession(ctx, tableSession, "guest_abc12345")
	require.NoError(t, err)

	second, err := svc.ResolveGuestSession(ctx, tableSession, "guest_abc12345")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&dao.GuestSession{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveGuestSession_ReattachesAfterTableTurnover(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	ctx := context.Background()

	table, err := svc.ResolveTable(ctx, 1)
	require.NoError(t, err)
	firstSeating, err := svc.ResolveTableSession(ctx, table)
	require.NoError(t, err)

	guest, err := svc.ResolveGuestSession(ctx, firstSeating, "guest_returning1")
	require.NoError(t, err)

	require.NoError(t, svc.EndTableSession(ctx, 1))

	// The next party opens a fresh table session.
	secondSeating, err := svc.ResolveTableSession(ctx, table)
	require.NoError(t, err)
	require.NotEqual(t, firstSeating.ID, secondSeating.ID)

	// The returning token is moved onto the new seating, not duplicated.
	reattached, err := svc.ResolveGuestSession(ctx, secondSeating, "guest_returning1")
	require.NoError(t, err)
	assert.Equal(t, guest.ID, reattached.ID)
	assert.Equal(t, secondSeating.ID, reattached.TableSessionID)
	assert.Equal(t, domain.SessionStatusActive, reattached.Status)

	var count int64
	require.NoError(t, db.Model(&dao.GuestSession{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEndTableSession(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	ctx := context.Background()

	err := svc.EndTableSession(ctx, 42)
	assert.ErrorIs(t, err, service.ErrTableNotFound)

	err = svc.EndTableSession(ctx, -1)
	assert.ErrorIs(t, err, service.ErrInvalidTableNumber)

	table, err := svc.ResolveTable(ctx, 3)
	require.NoError(t, err)
	tableSession, err := svc.ResolveTableSession(ctx, table)
	require.NoError(t, err)
	_, err = svc.ResolveGuestSession(ctx, tableSession, "guest_one11111")
	require.NoError(t, err)
	_, err = svc.ResolveGuestSession(ctx, tableSession, "guest_two22222")
	require.NoError(t, err)

	require.NoError(t, svc.EndTableSession(ctx, 3))

	var activeSessions int64
	require.NoError(t, db.Model(&dao.TableSession{}).
		Where("status = ?", "active").
		Count(&activeSessions).Error)
	assert.EqualValues(t, 0, activeSessions)

	var activeGuests int64
	require.NoError(t, db.Model(&dao.GuestSession{}).
		Where("status = ?", "active").
		Count(&activeGuests).Error)
	assert.EqualValues(t, 0, activeGuests)
}

func TestListTables(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	ctx := context.Background()

	_, err := svc.ResolveTable(ctx, 9)
	require.NoError(t, err)
	_, err = svc.ResolveTable(ctx, 2)
	require.NoError(t, err)

	tables, err := svc.ListTables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	// Sorted by table number, not creation order.
	assert.Equal(t, 2, tables[0].TableNumber)
	assert.Equal(t, 9, tables[1].TableNumber)
}
