package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/nail-salon/internal/httperr"
)

func generated(t *testing.T, year int) *YearSchedule {
	t.Helper()
	ys := New()
	ys.GenerateDefault(year)
	return ys
}

func TestSlotTimesGrid(t *testing.T) {
	times := SlotTimes()

	require.Len(t, times, 31)
	assert.Equal(t, "06:00", times[0])
	assert.Equal(t, "06:30", times[1])
	assert.Equal(t, "21:00", times[len(times)-1])
}

func TestIsSlotTime(t *testing.T) {
	assert.True(t, IsSlotTime("06:00"))
	assert.True(t, IsSlotTime("13:30"))
	assert.True(t, IsSlotTime("21:00"))
	assert.False(t, IsSlotTime("05:30"))
	assert.False(t, IsSlotTime("21:30"))
	assert.False(t, IsSlotTime("10:15"))
	assert.False(t, IsSlotTime("9:00"))
	assert.False(t, IsSlotTime("noon"))
}

func TestGenerateDefault(t *testing.T) {
	tests := []struct {
		year int
		days int
	}{
		{2025, 365},
		{2024, 366},
	}

	for _, tt := range tests {
		ys := New()
		assert.Equal(t, tt.days, ys.GenerateDefault(tt.year))
		assert.Equal(t, tt.days, ys.Len())

		for _, d := range ys.Days() {
			assert.True(t, d.IsOpen, d.Date)
			assert.Len(t, d.TimeSlots, 31)
			for _, s := range d.TimeSlots {
				assert.True(t, s.Available)
			}
		}
	}
}

func TestGenerateDefaultResetsOnlyThatYear(t *testing.T) {
	ys := generated(t, 2025)
	ys.GenerateDefault(2026)
	require.NoError(t, ys.UpdateDayStatus("2025-03-01", false))
	require.NoError(t, ys.UpdateDayStatus("2026-03-01", false))

	ys.GenerateDefault(2025)

	d25, _ := ys.Day("2025-03-01")
	d26, _ := ys.Day("2026-03-01")
	assert.True(t, d25.IsOpen)
	assert.False(t, d26.IsOpen)
	assert.Equal(t, 365+365, ys.Len())
}

func TestCloseDayCascadesToSlots(t *testing.T) {
	ys := generated(t, 2025)

	require.NoError(t, ys.UpdateDayStatus("2025-06-15", false))

	d, ok := ys.Day("2025-06-15")
	require.True(t, ok)
	assert.False(t, d.IsOpen)
	for _, s := range d.TimeSlots {
		assert.False(t, s.Available)
	}
	assert.Empty(t, d.BookableTimes())
}

func TestOpenDayDoesNotReenableSlots(t *testing.T) {
	ys := generated(t, 2025)
	require.NoError(t, ys.UpdateTimeSlot("2025-06-15", "10:00", false))
	require.NoError(t, ys.UpdateDayStatus("2025-06-15", false))

	require.NoError(t, ys.UpdateDayStatus("2025-06-15", true))

	d, _ := ys.Day("2025-06-15")
	assert.True(t, d.IsOpen)
	assert.Empty(t, d.BookableTimes(), "closing wiped slot flags and opening must not restore them")

	ys.ActivateDays([]string{"2025-06-15"})
	d, _ = ys.Day("2025-06-15")
	assert.Len(t, d.BookableTimes(), 31)
}

func TestClosedDayHidesAvailableSlots(t *testing.T) {
	d := DaySchedule{Date: "2025-06-15", IsOpen: false, TimeSlots: []TimeSlot{{Time: "10:00", Available: true}}}
	assert.Empty(t, d.BookableTimes())
}

func TestUpdateTimeSlotRoundTrip(t *testing.T) {
	ys := generated(t, 2025)
	before, _ := ys.Day("2025-06-15")

	require.NoError(t, ys.UpdateTimeSlot("2025-06-15", "10:00", false))
	mid, _ := ys.Day("2025-06-15")
	assert.NotContains(t, mid.BookableTimes(), "10:00")

	require.NoError(t, ys.UpdateTimeSlot("2025-06-15", "10:00", true))
	after, _ := ys.Day("2025-06-15")
	assert.Equal(t, before, after)
}

func TestUpdateTimeSlotErrors(t *testing.T) {
	ys := generated(t, 2025)

	err := ys.UpdateTimeSlot("2030-01-01", "10:00", false)
	assert.True(t, httperr.IsBusiness(err, "date_not_found"))

	err = ys.UpdateTimeSlot("2025-06-15", "10:15", false)
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))

	err = ys.UpdateDayStatus("2030-01-01", false)
	kind, _ := httperr.KindOf(err)
	assert.Equal(t, httperr.KindNotFound, kind)
}

func TestUpdateMultipleDays(t *testing.T) {
	ys := generated(t, 2025)

	res := ys.UpdateMultipleDays([]string{"2025-12-24", "2025-12-25", "2031-01-01"}, false)

	assert.Equal(t, 2, res.Updated)
	assert.Equal(t, []string{"2031-01-01"}, res.Missing)
	for _, date := range []string{"2025-12-24", "2025-12-25"} {
		d, _ := ys.Day(date)
		assert.False(t, d.IsOpen)
	}
	d, _ := ys.Day("2025-12-26")
	assert.True(t, d.IsOpen)
}

func TestUpdateTimeSlotBulkTouchesOnlyCrossProduct(t *testing.T) {
	ys := generated(t, 2025)
	dates := []string{"2025-07-01", "2025-07-02"}
	for _, date := range dates {
		for _, hm := range SlotTimes() {
			require.NoError(t, ys.UpdateTimeSlot(date, hm, false))
		}
	}
	require.NoError(t, ys.UpdateTimeSlot("2025-07-01", "15:00", true))

	res, err := ys.UpdateTimeSlotBulk(dates, []string{"09:00", "09:30"}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Updated)

	d1, _ := ys.Day("2025-07-01")
	d2, _ := ys.Day("2025-07-02")
	assert.Equal(t, []string{"09:00", "09:30", "15:00"}, d1.BookableTimes())
	assert.Equal(t, []string{"09:00", "09:30"}, d2.BookableTimes())
}

func TestUpdateTimeSlotBulkRejectsOffGridTime(t *testing.T) {
	ys := generated(t, 2025)

	_, err := ys.UpdateTimeSlotBulk([]string{"2025-07-01"}, []string{"09:00", "09:10"}, false)

	assert.True(t, httperr.IsBusiness(err, "invalid_time"))
	d, _ := ys.Day("2025-07-01")
	assert.Contains(t, d.BookableTimes(), "09:00")
}

func TestCloneIsIndependent(t *testing.T) {
	ys := generated(t, 2025)
	c := ys.Clone()

	require.NoError(t, c.UpdateDayStatus("2025-06-15", false))

	orig, _ := ys.Day("2025-06-15")
	assert.True(t, orig.IsOpen)
	assert.True(t, orig.TimeSlots[0].Available)
}

func TestDayReturnsCopy(t *testing.T) {
	ys := generated(t, 2025)
	d, _ := ys.Day("2025-06-15")
	d.TimeSlots[0].Available = false

	again, _ := ys.Day("2025-06-15")
	assert.True(t, again.TimeSlots[0].Available)
}

func TestMonth(t *testing.T) {
	ys := generated(t, 2025)

	feb := ys.Month(2025, time.February)

	require.Len(t, feb, 28)
	assert.Equal(t, "2025-02-01", feb[0].Date)
	assert.Equal(t, "2025-02-28", feb[27].Date)
	assert.Empty(t, ys.Month(2027, time.February))
}

func TestFromDaysRoundTrip(t *testing.T) {
	ys := generated(t, 2025)
	require.NoError(t, ys.UpdateDayStatus("2025-01-01", false))

	back := FromDays(ys.Days())

	assert.Equal(t, ys.Days(), back.Days())
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2025-06-15"))
	assert.False(t, IsDate("2025-6-15"))
	assert.False(t, IsDate("2025-02-30"))
	assert.False(t, IsDate(""))
}
