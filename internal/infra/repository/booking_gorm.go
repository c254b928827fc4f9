package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/nail-salon/internal/domain/booking"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Create / read
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.SlotUnavailable("slot_unavailable")
		}
		return httperr.Persistence(err)
	}
	return nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("booking_not_found")
		}
		return nil, httperr.Persistence(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).Model(&models.Booking{})

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where(map[string]any{"date": filter.Date})
	}
	if filter.From != "" {
		q = q.Where(`"date" >= ?`, filter.From)
	}
	if filter.To != "" {
		q = q.Where(`"date" <= ?`, filter.To)
	}
	if query := strings.ToLower(strings.TrimSpace(filter.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(client_name) LIKE ? OR client_phone LIKE ? OR LOWER(client_email) LIKE ?",
			like, like, like,
		)
	}

	var out []models.Booking
	if err := q.
		Order(`"date" ASC`).
		Order(`"time" ASC`).
		Find(&out).Error; err != nil {
		return nil, httperr.Persistence(err)
	}
	return out, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *BookingGormRepository) ResolvePending(
	ctx context.Context,
	b *models.Booking,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", b.ID, string(domain.StatusPending)).
		Updates(map[string]any{
			"status":            b.Status,
			"payment_deadline":  b.PaymentDeadline,
			"payment_method":    b.PaymentMethod,
			"payment_reference": b.PaymentReference,
			"confirmed_at":      b.ConfirmedAt,
			"cancelled_at":      b.CancelledAt,
			"cancel_reason":     b.CancelReason,
		})
	if res.Error != nil {
		return httperr.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.Conflict("booking_not_pending")
	}
	return nil
}

func (r *BookingGormRepository) UpdatePrice(
	ctx context.Context,
	b *models.Booking,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"total_price": b.TotalPrice,
			"notes":       b.Notes,
		})
	if res.Error != nil {
		return httperr.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("booking_not_found")
	}
	return nil
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id string,
) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Booking{})
	if res.Error != nil {
		return httperr.Persistence(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("booking_not_found")
	}
	return nil
}

// ExpirePending cancels pending bookings whose deadline has passed and returns
// the ids the statement itself changed, so a confirm landing concurrently is
// never reported as expired.
func (r *BookingGormRepository) ExpirePending(
	ctx context.Context,
	now time.Time,
) ([]string, error) {

	var expired []models.Booking
	err := r.db.WithContext(ctx).
		Model(&expired).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("status = ? AND payment_deadline IS NOT NULL AND payment_deadline < ?",
			string(domain.StatusPending), now).
		Updates(map[string]any{
			"status":        string(domain.StatusCancelled),
			"cancel_reason": domain.ReasonExpired,
			"cancelled_at":  now,
		}).Error
	if err != nil {
		return nil, httperr.Persistence(err)
	}

	ids := make([]string, 0, len(expired))
	for _, b := range expired {
		ids = append(ids, b.ID)
	}
	return ids, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveTimes(
	ctx context.Context,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(map[string]any{"date": date}).
		Where("status <> ?", string(domain.StatusCancelled)).
		Pluck("time", &times).Error; err != nil {
		return nil, httperr.Persistence(err)
	}
	return times, nil
}

func (r *BookingGormRepository) ListActiveTimesForPeriod(
	ctx context.Context,
	from string,
	to string,
) (map[string][]string, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Select("date", "time").
		Where(`"date" >= ? AND "date" <= ?`, from, to).
		Where("status <> ?", string(domain.StatusCancelled)).
		Find(&rows).Error; err != nil {
		return nil, httperr.Persistence(err)
	}

	out := make(map[string][]string)
	for _, b := range rows {
		out[b.Date] = append(out[b.Date], b.Time)
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
