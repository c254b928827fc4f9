package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/nail-salon/internal/db/dbtest"
	domain "github.com/BruksfildServices01/nail-salon/internal/domain/booking"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/infra/repository"
	"github.com/BruksfildServices01/nail-salon/internal/models"
)

func newBooking(date, hm, status string, deadline *time.Time) *models.Booking {
	return &models.Booking{
		ID:              uuid.NewString(),
		Date:            date,
		Time:            hm,
		Service:         "Manicura Gel",
		ClientName:      "Ana",
		ClientPhone:     "7875550000",
		Status:          status,
		PaymentDeadline: deadline,
	}
}

func TestBookingRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingGormRepository(dbtest.New(t))

	b := newBooking("2025-06-01", "10:00", "pending", nil)
	require.NoError(t, repo.CreateBooking(ctx, b))

	got, err := repo.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.ClientName)
	assert.Equal(t, "pending", got.Status)

	_, err = repo.GetBooking(ctx, "missing")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestBookingRepositoryRejectsSecondActiveBookingForSlot(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingGormRepository(dbtest.New(t))

	require.NoError(t, repo.CreateBooking(ctx, newBooking("2025-06-01", "10:00", "pending", nil)))

	err := repo.CreateBooking(ctx, newBooking("2025-06-01", "10:00", "pending", nil))
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	assert.True(t, httperr.IsKind(err, httperr.KindSlotUnavailable))
}

func TestBookingRepositoryListFilters(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingGormRepository(dbtest.New(t))

	a := newBooking("2025-06-02", "11:00", "confirmed", nil)
	b := newBooking("2025-06-01", "10:00", "pending", nil)
	c := newBooking("2025-06-03", "09:00", "cancelled", nil)
	c.ClientName = "Beatriz"
	for _, x := range []*models.Booking{a, b, c} {
		require.NoError(t, repo.CreateBooking(ctx, x))
	}

	all, err := repo.ListBookings(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"},
		[]string{all[0].Date, all[1].Date, all[2].Date})

	pending, err := repo.ListBookings(ctx, domain.ListFilter{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b.ID, pending[0].ID)

	ranged, err := repo.ListBookings(ctx, domain.ListFilter{From: "2025-06-02", To: "2025-06-03"})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	byName, err := repo.ListBookings(ctx, domain.ListFilter{Query: "beat"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, c.ID, byName[0].ID)

	byDate, err := repo.ListBookings(ctx, domain.ListFilter{Date: "2025-06-02"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, a.ID, byDate[0].ID)
}

func TestBookingRepositoryResolvePending(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingGormRepository(dbtest.New(t))

	b := newBooking("2025-06-01", "10:00", "pending", nil)
	require.NoError(t, repo.CreateBooking(ctx, b))

	method := "ath"
	b.Status = "confirmed"
	b.PaymentMethod = &method
	b.PaymentReference = "ATH-1"
	require.NoError(t, repo.ResolvePending(ctx, b))

	got, err := repo.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
	assert.Equal(t, "ath", *got.PaymentMethod)
	assert.Equal(t, "ATH-1", got.PaymentReference)

	// a second writer loses
	b.Status = "cancelled"
	err = repo.ResolvePending(ctx, b)
	assert.True(t, httperr.IsBusiness(err, "booking_not_pending"))
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	got, err = repo.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
}

func TestBookingRepositoryUpdatePriceAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingGormRepository(dbtest.New(t))

	b := newBooking("2025-06-01", "10:00", "confirmed", nil)
	require.NoError(t, repo.CreateBooking(ctx, b))

	total := int64(5500)
	notes := "diseño francés"
	b.TotalPrice = &total
	b.Notes = &notes
	require.NoError(t, repo.UpdatePrice(ctx, b))

	got, err := repo.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5500), *got.TotalPrice)
	assert.Equal(t, "diseño francés", *got.Notes)
	assert.Equal(t, "confirmed", got.Status)

	require.NoError(t, repo.DeleteBooking(ctx, b.ID))
	err = repo.DeleteBooking(ctx, b.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	err = repo.UpdatePrice(ctx, b)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestBookingRepositoryExpirePending(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingGormRepository(dbtest.New(t))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(10 * time.Minute)

	stale := newBooking("2025-06-02", "10:00", "pending", &past)
	fresh := newBooking("2025-06-02", "10:30", "pending", &future)
	confirmed := newBooking("2025-06-02", "11:00", "confirmed", nil)
	paidLate := newBooking("2025-06-02", "11:30", "pending", &past)
	for _, x := range []*models.Booking{stale, fresh, confirmed, paidLate} {
		require.NoError(t, repo.CreateBooking(ctx, x))
	}

	// payment lands after the deadline but before the sweep
	paidAt := now
	paidLate.Status = "confirmed"
	paidLate.ConfirmedAt = &paidAt
	require.NoError(t, repo.ResolvePending(ctx, paidLate))

	ids, err := repo.ExpirePending(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{stale.ID}, ids)

	got, err := repo.GetBooking(ctx, paidLate.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
	assert.Empty(t, got.CancelReason)

	got, err = repo.GetBooking(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, domain.ReasonExpired, got.CancelReason)
	assert.NotNil(t, got.CancelledAt)

	got, err = repo.GetBooking(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)

	ids, err = repo.ExpirePending(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBookingRepositoryActiveTimes(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingGormRepository(dbtest.New(t))

	for _, x := range []*models.Booking{
		newBooking("2025-06-01", "10:00", "pending", nil),
		newBooking("2025-06-01", "11:00", "confirmed", nil),
		newBooking("2025-06-01", "12:00", "cancelled", nil),
		newBooking("2025-06-05", "09:00", "confirmed", nil),
		newBooking("2025-07-01", "09:00", "confirmed", nil),
	} {
		require.NoError(t, repo.CreateBooking(ctx, x))
	}

	times, err := repo.ListActiveTimes(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"10:00", "11:00"}, times)

	byDate, err := repo.ListActiveTimesForPeriod(ctx, "2025-06-01", "2025-06-30")
	require.NoError(t, err)
	assert.Len(t, byDate, 2)
	assert.ElementsMatch(t, []string{"10:00", "11:00"}, byDate["2025-06-01"])
	assert.Equal(t, []string{"09:00"}, byDate["2025-06-05"])
}
