package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/nail-salon/internal/db/dbtest"
	"github.com/BruksfildServices01/nail-salon/internal/domain/schedule"
	"github.com/BruksfildServices01/nail-salon/internal/infra/repository"
	"github.com/BruksfildServices01/nail-salon/internal/models"
)

func TestScheduleRepositoryEmpty(t *testing.T) {
	repo := repository.NewScheduleGormRepository(dbtest.New(t))

	days, err := repo.LoadDays(context.Background())
	require.NoError(t, err)
	assert.Nil(t, days)
}

func TestScheduleRepositorySaveKeepsSingleRow(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := repository.NewScheduleGormRepository(db)

	ys := schedule.New()
	ys.GenerateDefault(2025)
	require.NoError(t, ys.UpdateDayStatus("2025-12-25", false))
	require.NoError(t, repo.SaveDays(ctx, ys.Days()))

	require.NoError(t, ys.UpdateTimeSlot("2025-06-01", "10:00", false))
	require.NoError(t, repo.SaveDays(ctx, ys.Days()))

	var n int64
	db.Model(&models.ScheduleSettings{}).Count(&n)
	assert.Equal(t, int64(1), n)

	days, err := repo.LoadDays(ctx)
	require.NoError(t, err)
	loaded := schedule.FromDays(days)
	assert.Equal(t, 365, loaded.Len())

	xmas, ok := loaded.Day("2025-12-25")
	require.True(t, ok)
	assert.False(t, xmas.IsOpen)

	june, _ := loaded.Day("2025-06-01")
	assert.NotContains(t, june.BookableTimes(), "10:00")
	assert.Contains(t, june.BookableTimes(), "10:30")
}
