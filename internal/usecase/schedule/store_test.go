package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/nail-salon/internal/db/dbtest"
	domain "github.com/BruksfildServices01/nail-salon/internal/domain/schedule"
	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/infra/cache"
	"github.com/BruksfildServices01/nail-salon/internal/infra/repository"
	"github.com/BruksfildServices01/nail-salon/internal/usecase/schedule"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) LoadDays(ctx context.Context) ([]domain.DaySchedule, error) {
	args := m.Called(ctx)
	days, _ := args.Get(0).([]domain.DaySchedule)
	return days, args.Error(1)
}

func (m *mockRepo) SaveDays(ctx context.Context, days []domain.DaySchedule) error {
	return m.Called(ctx, days).Error(0)
}

func newStore(t *testing.T) *schedule.Store {
	t.Helper()
	repo := repository.NewScheduleGormRepository(dbtest.New(t))
	return schedule.NewStore(repo, nil, nil, zerolog.Nop())
}

func TestStoreScenarioCloseDay(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	n, err := s.GenerateDefault(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 365, n)

	day, ok, err := s.Day(ctx, "2025-06-15")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, day.IsOpen)
	assert.Len(t, day.BookableTimes(), 31)

	require.NoError(t, s.UpdateDayStatus(ctx, "2025-06-15", false))

	day, _, err = s.Day(ctx, "2025-06-15")
	require.NoError(t, err)
	assert.False(t, day.IsOpen)
	assert.Empty(t, day.BookableTimes())
}

func TestStoreErrors(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, _, err := s.Day(ctx, "15/06/2025")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	_, ok, err := s.Day(ctx, "2025-06-15")
	require.NoError(t, err)
	assert.False(t, ok)

	err = s.UpdateDayStatus(ctx, "2025-06-15", false)
	assert.True(t, httperr.IsBusiness(err, "date_not_found"))

	_, err = s.GenerateDefault(ctx, 1900)
	assert.True(t, httperr.IsBusiness(err, "invalid_year"))

	_, err = s.Month(ctx, 2025, 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_month"))
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewScheduleGormRepository(dbtest.New(t))

	first := schedule.NewStore(repo, nil, nil, zerolog.Nop())
	_, err := first.GenerateDefault(ctx, 2025)
	require.NoError(t, err)
	res, err := first.UpdateTimeSlotBulk(ctx,
		[]string{"2025-07-01", "2025-07-02"}, []string{"09:00", "09:30"}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Updated)

	second := schedule.NewStore(repo, nil, nil, zerolog.Nop())
	july, err := second.Month(ctx, 2025, time.July)
	require.NoError(t, err)
	require.Len(t, july, 31)
	assert.NotContains(t, july[0].BookableTimes(), "09:00")
	assert.NotContains(t, july[1].BookableTimes(), "09:30")
	assert.Contains(t, july[2].BookableTimes(), "09:00")
}

func TestStoreRollsBackOnSaveFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)

	ys := domain.New()
	ys.GenerateDefault(2025)
	repo.On("LoadDays", mock.Anything).Return(ys.Days(), nil).Once()
	repo.On("SaveDays", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

	s := schedule.NewStore(repo, nil, nil, zerolog.Nop())

	err := s.UpdateDayStatus(ctx, "2025-06-15", false)
	assert.True(t, httperr.IsKind(err, httperr.KindPersistence))

	day, ok, err := s.Day(ctx, "2025-06-15")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, day.IsOpen)
	assert.Len(t, day.BookableTimes(), 31)

	repo.On("SaveDays", mock.Anything, mock.Anything).Return(nil).Once()
	require.NoError(t, s.UpdateDayStatus(ctx, "2025-06-15", false))

	day, _, _ = s.Day(ctx, "2025-06-15")
	assert.False(t, day.IsOpen)
	repo.AssertExpectations(t)
}

func TestStoreFallsBackToCacheWhenDatabaseDown(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	c := cache.NewScheduleRedisCache(cache.NewRedisClient(mr.Addr(), "", 0), 0)

	healthy := schedule.NewStore(repository.NewScheduleGormRepository(dbtest.New(t)), c, nil, zerolog.Nop())
	_, err := healthy.GenerateDefault(ctx, 2025)
	require.NoError(t, err)

	repo := new(mockRepo)
	repo.On("LoadDays", mock.Anything).Return(nil, errors.New("db down"))
	s := schedule.NewStore(repo, c, nil, zerolog.Nop())

	day, ok, err := s.Day(ctx, "2025-03-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, day.IsOpen)

	// cached data is never used as the base for a write
	err = s.UpdateDayStatus(ctx, "2025-03-01", false)
	assert.True(t, httperr.IsKind(err, httperr.KindPersistence))
	repo.AssertNotCalled(t, "SaveDays", mock.Anything, mock.Anything)
}

func TestStoreReadSeedsCacheForLaterOutage(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	c := cache.NewScheduleRedisCache(cache.NewRedisClient(mr.Addr(), "", 0), 0)

	repo := repository.NewScheduleGormRepository(dbtest.New(t))
	ys := domain.New()
	ys.GenerateDefault(2025)
	require.NoError(t, repo.SaveDays(ctx, ys.Days()))

	// a process that only ever reads
	reader := schedule.NewStore(repo, c, nil, zerolog.Nop())
	_, ok, err := reader.Day(ctx, "2025-03-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("salon:schedule:days"))
	assert.Zero(t, mr.TTL("salon:schedule:days"))

	// restarted while the database is unreachable
	down := new(mockRepo)
	down.On("LoadDays", mock.Anything).Return(nil, errors.New("db down"))
	restarted := schedule.NewStore(down, c, nil, zerolog.Nop())

	day, ok, err := restarted.Day(ctx, "2025-03-01")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, day.IsOpen)
	assert.Len(t, day.BookableTimes(), 31)
}

func TestStoreReadFailsWithoutCache(t *testing.T) {
	repo := new(mockRepo)
	repo.On("LoadDays", mock.Anything).Return(nil, errors.New("db down"))
	s := schedule.NewStore(repo, nil, nil, zerolog.Nop())

	_, _, err := s.Day(context.Background(), "2025-03-01")
	assert.True(t, httperr.IsKind(err, httperr.KindPersistence))
}

func TestStoreActivateDays(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, err := s.GenerateDefault(ctx, 2025)
	require.NoError(t, err)

	require.NoError(t, s.UpdateTimeSlot(ctx, "2025-08-01", "10:00", false))
	require.NoError(t, s.UpdateDayStatus(ctx, "2025-08-01", false))
	require.NoError(t, s.UpdateDayStatus(ctx, "2025-08-01", true))

	day, _, _ := s.Day(ctx, "2025-08-01")
	assert.True(t, day.IsOpen)
	assert.Empty(t, day.BookableTimes())

	res, err := s.ActivateDays(ctx, []string{"2025-08-01", "2030-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, []string{"2030-01-01"}, res.Missing)

	day, _, _ = s.Day(ctx, "2025-08-01")
	assert.Len(t, day.BookableTimes(), 31)
}
