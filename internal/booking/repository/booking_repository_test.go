package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karkhana/internal/domain"
	"karkhana/internal/errors"
	"karkhana/internal/testutil"
)

func TestNewMySQLBookingRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLBookingRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func insertTestBooking(t *testing.T, db *sql.DB, repo *MySQLBookingRepository, status domain.BookingStatus) uint {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err)

	id, err := repo.Insert(context.Background(), tx, domain.Booking{
		Reference:    "ref-test-1",
		UserID:       42,
		MakerspaceID: 1,
		Makerspace:   "Banjara Workbench",
		Kind:         domain.KindMachine,
		Date:         time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Status:       status,
		PaymentKey:   "pay-key-test-1",
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	return id
}

func TestBookingRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLBookingRepository(db)
	id := insertTestBooking(t, db, repo, domain.BookingStatusPending)

	booking, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, booking.ID)
	assert.Equal(t, "ref-test-1", booking.Reference)
	assert.Equal(t, uint(42), booking.UserID)
	assert.Equal(t, "Banjara Workbench", booking.Makerspace)
	assert.Equal(t, domain.KindMachine, booking.Kind)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, "pay-key-test-1", booking.PaymentKey)
	assert.Nil(t, booking.GatewayRef)
}

func TestBookingRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLBookingRepository(db)

	booking, err := repo.FindByID(context.Background(), uint(9999))
	assert.Error(t, err)
	assert.Nil(t, booking)

	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, nfe)
}

func TestBookingRepository_TransitionStatus_CAS(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLBookingRepository(db)
	id := insertTestBooking(t, db, repo, domain.BookingStatusPending)

	err := repo.TransitionStatus(context.Background(), id, domain.BookingStatusPending, domain.BookingStatusProcessing)
	require.NoError(t, err)

	// A second transition from PENDING loses the compare-and-set.
	err = repo.TransitionStatus(context.Background(), id, domain.BookingStatusPending, domain.BookingStatusProcessing)
	_, ok := errors.IsConflictError(err)
	assert.True(t, ok)

	booking, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusProcessing, booking.Status)
}

func TestBookingRepository_UpdateTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLBookingRepository(db)
	id := insertTestBooking(t, db, repo, domain.BookingStatusPending)

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.UpdateTotals(context.Background(), tx, id, 1155, 1300))
	require.NoError(t, tx.Commit())

	booking, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1155.0, booking.LineTotal)
	assert.Equal(t, 1300.0, booking.GrandTotal)
}

func TestBookingRepository_SetGatewayRef(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLBookingRepository(db)
	id := insertTestBooking(t, db, repo, domain.BookingStatusPaid)

	require.NoError(t, repo.SetGatewayRef(context.Background(), id, "ch_12345"))

	booking, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, booking.GatewayRef)
	assert.Equal(t, "ch_12345", *booking.GatewayRef)
}

func TestBookingItemRepository_InsertAndFindByBookingID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	bookingRepo := NewMySQLBookingRepository(db)
	itemRepo := NewMySQLBookingItemRepository(db)
	bookingID := insertTestBooking(t, db, bookingRepo, domain.BookingStatusPending)

	token := "hold-token-1"
	tx, err := db.Begin()
	require.NoError(t, err)
	_, err = itemRepo.Insert(context.Background(), tx, domain.BookingItem{
		BookingID: bookingID,
		ListingID: "laser-cutter",
		Kind:      domain.KindMachine,
		Name:      "Laser Cutter",
		UnitPrice: 500,
		Quantity:  2,
		SlotStart: "10:00",
		SlotEnd:   "18:00",
		HoldToken: &token,
	})
	require.NoError(t, err)
	_, err = itemRepo.Insert(context.Background(), tx, domain.BookingItem{
		BookingID: bookingID,
		ListingID: "3d-printer",
		Kind:      domain.KindMachine,
		Name:      "3D Printer",
		UnitPrice: 155,
		Quantity:  1,
		SlotStart: "10:00",
		SlotEnd:   "18:00",
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	items, err := itemRepo.FindByBookingID(context.Background(), bookingID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "laser-cutter", items[0].ListingID)
	assert.Equal(t, 2, items[0].Quantity)
	require.NotNil(t, items[0].HoldToken)
	assert.Equal(t, "hold-token-1", *items[0].HoldToken)
	assert.Nil(t, items[1].HoldToken)
}
