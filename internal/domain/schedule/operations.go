package schedule

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/nail-salon/internal/httperr"
)

// BulkResult reports which dates a bulk operation touched.
type BulkResult struct {
	Updated int      `json:"updated"`
	Missing []string `json:"missing"`
}

// GenerateDefault replaces every day of year with an open day whose slots are
// all available. Days of other years are kept.
func (ys *YearSchedule) GenerateDefault(year int) int {
	prefix := fmt.Sprintf("%04d-", year)
	for k := range ys.days {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			delete(ys.days, k)
		}
	}

	n := 0
	for d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
		day := newDay(d.Format("2006-01-02"))
		ys.days[day.Date] = &day
		n++
	}
	return n
}

// UpdateDayStatus opens or closes one date. Closing marks every slot
// unavailable; opening leaves slot flags as they were.
func (ys *YearSchedule) UpdateDayStatus(date string, isOpen bool) error {
	d, ok := ys.days[date]
	if !ok {
		return httperr.NotFound("date_not_found")
	}
	setDayStatus(d, isOpen)
	return nil
}

func setDayStatus(d *DaySchedule, isOpen bool) {
	d.IsOpen = isOpen
	if !isOpen {
		for i := range d.TimeSlots {
			d.TimeSlots[i].Available = false
		}
	}
}

func (ys *YearSchedule) UpdateTimeSlot(date, hm string, available bool) error {
	if !IsSlotTime(hm) {
		return httperr.Validation("invalid_time")
	}
	d, ok := ys.days[date]
	if !ok {
		return httperr.NotFound("date_not_found")
	}
	i := d.slotIndex(hm)
	if i < 0 {
		return httperr.Validation("invalid_time")
	}
	d.TimeSlots[i].Available = available
	return nil
}

// UpdateMultipleDays applies UpdateDayStatus to each date. Unknown dates are
// reported, not fatal.
func (ys *YearSchedule) UpdateMultipleDays(dates []string, isOpen bool) BulkResult {
	res := BulkResult{Missing: []string{}}
	for _, date := range dates {
		d, ok := ys.days[date]
		if !ok {
			res.Missing = append(res.Missing, date)
			continue
		}
		setDayStatus(d, isOpen)
		res.Updated++
	}
	return res
}

// UpdateTimeSlotBulk sets availability on the cross product dates x times.
func (ys *YearSchedule) UpdateTimeSlotBulk(dates, times []string, available bool) (BulkResult, error) {
	for _, hm := range times {
		if !IsSlotTime(hm) {
			return BulkResult{}, httperr.Validation("invalid_time")
		}
	}

	res := BulkResult{Missing: []string{}}
	for _, date := range dates {
		d, ok := ys.days[date]
		if !ok {
			res.Missing = append(res.Missing, date)
			continue
		}
		for _, hm := range times {
			if i := d.slotIndex(hm); i >= 0 {
				d.TimeSlots[i].Available = available
			}
		}
		res.Updated++
	}
	return res, nil
}

// ActivateDays opens each date and re-enables all of its slots.
func (ys *YearSchedule) ActivateDays(dates []string) BulkResult {
	res := BulkResult{Missing: []string{}}
	for _, date := range dates {
		d, ok := ys.days[date]
		if !ok {
			res.Missing = append(res.Missing, date)
			continue
		}
		d.IsOpen = true
		for i := range d.TimeSlots {
			d.TimeSlots[i].Available = true
		}
		res.Updated++
	}
	return res
}
