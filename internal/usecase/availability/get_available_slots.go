package availability

import (
	"context"
	"sort"
	"time"

	bookingdomain "github.com/BruksfildServices01/nail-salon/internal/domain/booking"
	"github.com/BruksfildServices01/nail-salon/internal/domain/schedule"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/timezone"
)

// ScheduleReader is the read side of the schedule store.
type ScheduleReader interface {
	Day(ctx context.Context, date string) (schedule.DaySchedule, bool, error)
	Month(ctx context.Context, year int, month time.Month) ([]schedule.DaySchedule, error)
}

type BookingReader interface {
	ListActiveTimes(ctx context.Context, date string) ([]string, error)
	ListActiveTimesForPeriod(ctx context.Context, from, to string) (map[string][]string, error)
}

var _ BookingReader = (bookingdomain.Repository)(nil)

// GetAvailableSlots computes the times a client may book on a date: slots the
// admin left available on an open day, minus times held by non-cancelled
// bookings. Pending bookings past their deadline keep blocking until swept.
// Execute and ExecuteMonth ignore the clock; the Upcoming variants also drop
// what has already started.
type GetAvailableSlots struct {
	schedule ScheduleReader
	bookings BookingReader
	clock    timezone.Clock
}

func NewGetAvailableSlots(
	schedule ScheduleReader,
	bookings BookingReader,
	clock timezone.Clock,
) *GetAvailableSlots {
	return &GetAvailableSlots{
		schedule: schedule,
		bookings: bookings,
		clock:    clock,
	}
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	date string,
) ([]string, error) {

	if !schedule.IsDate(date) {
		return nil, httperr.Validation("invalid_date")
	}

	day, ok, err := uc.schedule.Day(ctx, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	taken, err := uc.bookings.ListActiveTimes(ctx, date)
	if err != nil {
		return nil, err
	}

	return free(day, taken), nil
}

// Upcoming is Execute without the times that are already past on the salon
// clock.
func (uc *GetAvailableSlots) Upcoming(
	ctx context.Context,
	date string,
) ([]string, error) {

	slots, err := uc.Execute(ctx, date)
	if err != nil {
		return nil, err
	}
	return notStarted(date, slots, uc.clock()), nil
}

// IsAvailable reports whether hm is offered on date.
func (uc *GetAvailableSlots) IsAvailable(
	ctx context.Context,
	date string,
	hm string,
) (bool, error) {

	slots, err := uc.Execute(ctx, date)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s == hm {
			return true, nil
		}
	}
	return false, nil
}

// ExecuteMonth lists the dates of a month that have a bookable slot.
func (uc *GetAvailableSlots) ExecuteMonth(
	ctx context.Context,
	year int,
	month time.Month,
) ([]string, error) {
	return uc.month(ctx, year, month, time.Time{})
}

// UpcomingMonth is ExecuteMonth judged against the salon clock.
func (uc *GetAvailableSlots) UpcomingMonth(
	ctx context.Context,
	year int,
	month time.Month,
) ([]string, error) {
	return uc.month(ctx, year, month, uc.clock())
}

// ===============================
// Helpers
// ===============================

// month filters against now unless it is zero.
func (uc *GetAvailableSlots) month(
	ctx context.Context,
	year int,
	month time.Month,
	now time.Time,
) ([]string, error) {

	days, err := uc.schedule.Month(ctx, year, month)
	if err != nil {
		return nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	taken, err := uc.bookings.ListActiveTimesForPeriod(
		ctx,
		first.Format(timezone.DateLayout),
		last.Format(timezone.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	out := []string{}
	for _, d := range days {
		slots := free(d, taken[d.Date])
		if !now.IsZero() {
			slots = notStarted(d.Date, slots, now)
		}
		if len(slots) > 0 {
			out = append(out, d.Date)
		}
	}
	return out, nil
}

func free(day schedule.DaySchedule, taken []string) []string {
	busy := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		busy[t] = struct{}{}
	}

	out := []string{}
	for _, hm := range day.BookableTimes() {
		if _, ok := busy[hm]; !ok {
			out = append(out, hm)
		}
	}

	// "HH:MM" sorts chronologically as text
	sort.Strings(out)
	return out
}

func notStarted(date string, slots []string, now time.Time) []string {
	today := now.Format(timezone.DateLayout)
	if date > today {
		return slots
	}
	if date < today {
		return []string{}
	}

	nowHM := now.Format(timezone.TimeLayout)
	out := []string{}
	for _, hm := range slots {
		if hm > nowHM {
			out = append(out, hm)
		}
	}
	return out
}
