package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/nail-salon/internal/audit"
	domain "github.com/BruksfildServices01/nail-salon/internal/domain/booking"
	"github.com/BruksfildServices01/nail-salon/internal/metrics"
	"github.com/BruksfildServices01/nail-salon/internal/timezone"
)

// ExpireStalePending cancels every pending booking whose payment window has
// closed.
type ExpireStalePending struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	clock   timezone.Clock
	log     zerolog.Logger
}

func NewExpireStalePending(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	clock timezone.Clock,
	log zerolog.Logger,
) *ExpireStalePending {
	return &ExpireStalePending{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
		clock:   clock,
		log:     log,
	}
}

func (uc *ExpireStalePending) Execute(ctx context.Context) (int, error) {
	ids, err := uc.repo.ExpirePending(ctx, uc.clock())
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	uc.metrics.BookingCancelled(domain.ReasonExpired, len(ids))
	for _, id := range ids {
		uc.audit.Dispatch(audit.Event{
			Action:   "booking_expired",
			Entity:   "booking",
			EntityID: id,
		})
	}
	uc.log.Info().Int("count", len(ids)).Msg("expired pending bookings")

	return len(ids), nil
}

// ======================================================
// Background sweep
// ======================================================

type Sweeper struct {
	expire   *ExpireStalePending
	interval time.Duration
	log      zerolog.Logger
}

func NewSweeper(expire *ExpireStalePending, interval time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{expire: expire, interval: interval, log: log}
}

// Run sweeps every interval until ctx is done. A non-positive interval
// disables it.
func (s *Sweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.expire.Execute(ctx); err != nil && ctx.Err() == nil {
				s.log.Error().Err(err).Msg("expiry sweep failed")
			}
		}
	}
}
