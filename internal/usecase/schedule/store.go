package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	domain "github.com/BruksfildServices01/nail-salon/internal/domain/schedule"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
)

type Repository interface {
	LoadDays(ctx context.Context) ([]domain.DaySchedule, error)
	SaveDays(ctx context.Context, days []domain.DaySchedule) error
}

// Cache holds the last committed calendar for reads during a database outage.
type Cache interface {
	GetDays(ctx context.Context) ([]domain.DaySchedule, bool)
	SetDays(ctx context.Context, days []domain.DaySchedule) error
}

type noCache struct{}

func (noCache) GetDays(context.Context) ([]domain.DaySchedule, bool) { return nil, false }
func (noCache) SetDays(context.Context, []domain.DaySchedule) error { return nil }

// Store is the process-wide calendar state. Mutations are applied to a clone,
// persisted, and only then swapped in, so a failed write leaves the visible
// state untouched.
type Store struct {
	mu      sync.RWMutex
	current *domain.YearSchedule

	repo  Repository
	cache Cache
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewStore(
	repo Repository,
	cache Cache,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *Store {
	if cache == nil {
		cache = noCache{}
	}
	return &Store{
		repo:  repo,
		cache: cache,
		audit: audit,
		log:   log,
	}
}

// ===============================
// Reads
// ===============================

func (s *Store) Day(ctx context.Context, date string) (domain.DaySchedule, bool, error) {
	if !domain.IsDate(date) {
		return domain.DaySchedule{}, false, httperr.Validation("invalid_date")
	}
	ys, err := s.snapshot(ctx)
	if err != nil {
		return domain.DaySchedule{}, false, err
	}
	d, ok := ys.Day(date)
	return d, ok, nil
}

func (s *Store) Month(ctx context.Context, year int, month time.Month) ([]domain.DaySchedule, error) {
	if month < time.January || month > time.December {
		return nil, httperr.Validation("invalid_month")
	}
	ys, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ys.Month(year, month), nil
}

// snapshot returns the in-memory calendar, loading it on first use. When the
// database is down the cached copy is served without being adopted.
func (s *Store) snapshot(ctx context.Context) (*domain.YearSchedule, error) {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	if cur != nil {
		return cur, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ys, err := s.loadLocked(ctx)
	if err == nil {
		return ys, nil
	}

	if days, ok := s.cache.GetDays(ctx); ok {
		s.log.Warn().Err(err).Msg("schedule served from cache")
		return domain.FromDays(days), nil
	}
	return nil, err
}

func (s *Store) loadLocked(ctx context.Context) (*domain.YearSchedule, error) {
	if s.current != nil {
		return s.current, nil
	}
	days, err := s.repo.LoadDays(ctx)
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	s.current = domain.FromDays(days)

	// seed the cache so a restart during an outage can still serve reads
	if err := s.cache.SetDays(ctx, days); err != nil {
		s.log.Warn().Err(err).Msg("schedule cache write failed")
	}
	return s.current, nil
}

// ===============================
// Mutations
// ===============================

func (s *Store) GenerateDefault(ctx context.Context, year int) (int, error) {
	if year < 2000 || year > 2100 {
		return 0, httperr.Validation("invalid_year")
	}
	var n int
	err := s.apply(ctx, "schedule_generated", map[string]any{"year": year}, func(ys *domain.YearSchedule) error {
		n = ys.GenerateDefault(year)
		return nil
	})
	return n, err
}

func (s *Store) UpdateDayStatus(ctx context.Context, date string, isOpen bool) error {
	return s.apply(ctx, "schedule_day_status", map[string]any{"date": date, "is_open": isOpen}, func(ys *domain.YearSchedule) error {
		return ys.UpdateDayStatus(date, isOpen)
	})
}

func (s *Store) UpdateTimeSlot(ctx context.Context, date, hm string, available bool) error {
	meta := map[string]any{"date": date, "time": hm, "available": available}
	return s.apply(ctx, "schedule_slot", meta, func(ys *domain.YearSchedule) error {
		return ys.UpdateTimeSlot(date, hm, available)
	})
}

func (s *Store) UpdateMultipleDays(ctx context.Context, dates []string, isOpen bool) (domain.BulkResult, error) {
	var res domain.BulkResult
	err := s.apply(ctx, "schedule_days_bulk", map[string]any{"dates": dates, "is_open": isOpen}, func(ys *domain.YearSchedule) error {
		res = ys.UpdateMultipleDays(dates, isOpen)
		return nil
	})
	return res, err
}

func (s *Store) UpdateTimeSlotBulk(ctx context.Context, dates, times []string, available bool) (domain.BulkResult, error) {
	var res domain.BulkResult
	meta := map[string]any{"dates": dates, "times": times, "available": available}
	err := s.apply(ctx, "schedule_slots_bulk", meta, func(ys *domain.YearSchedule) error {
		var err error
		res, err = ys.UpdateTimeSlotBulk(dates, times, available)
		return err
	})
	return res, err
}

func (s *Store) ActivateDays(ctx context.Context, dates []string) (domain.BulkResult, error) {
	var res domain.BulkResult
	err := s.apply(ctx, "schedule_days_activated", map[string]any{"dates": dates}, func(ys *domain.YearSchedule) error {
		res = ys.ActivateDays(dates)
		return nil
	})
	return res, err
}

func (s *Store) apply(
	ctx context.Context,
	action string,
	meta map[string]any,
	op func(*domain.YearSchedule) error,
) error {

	s.mu.Lock()

	base, err := s.loadLocked(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	next := base.Clone()
	if err := op(next); err != nil {
		s.mu.Unlock()
		return err
	}

	days := next.Days()
	if err := s.repo.SaveDays(ctx, days); err != nil {
		s.mu.Unlock()
		s.log.Error().Err(err).Str("action", action).Msg("schedule save failed")
		return httperr.Persistence(err)
	}
	s.current = next
	s.mu.Unlock()

	if err := s.cache.SetDays(ctx, days); err != nil {
		s.log.Warn().Err(err).Msg("schedule cache write failed")
	}

	s.audit.Dispatch(audit.Event{
		Action:   action,
		Entity:   "schedule",
		Metadata: meta,
	})
	return nil
}
