// Package schedule holds the salon calendar: per-date open/closed status and
// the fixed grid of 30-minute slots each date carries.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/BruksfildServices01/nail-salon/internal/timezone"
)

const (
	FirstSlotMinute = 6 * 60
	LastSlotMinute  = 21 * 60
	SlotMinutes     = 30
)

type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type DaySchedule struct {
	Date      string     `json:"date"`
	IsOpen    bool       `json:"isOpen"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

// BookableTimes lists the slot times a client may pick, honoring the
// closed-day override.
func (d DaySchedule) BookableTimes() []string {
	if !d.IsOpen {
		return nil
	}
	out := make([]string, 0, len(d.TimeSlots))
	for _, s := range d.TimeSlots {
		if s.Available {
			out = append(out, s.Time)
		}
	}
	return out
}

func (d DaySchedule) slotIndex(hm string) int {
	for i, s := range d.TimeSlots {
		if s.Time == hm {
			return i
		}
	}
	return -1
}

// SlotTimes is the ordered slot grid for every day.
func SlotTimes() []string {
	out := make([]string, 0, (LastSlotMinute-FirstSlotMinute)/SlotMinutes+1)
	for m := FirstSlotMinute; m <= LastSlotMinute; m += SlotMinutes {
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out
}

// IsSlotTime reports whether hm is on the slot grid.
func IsSlotTime(hm string) bool {
	t, err := time.Parse(timezone.TimeLayout, hm)
	if err != nil || t.Format(timezone.TimeLayout) != hm {
		return false
	}
	m := t.Hour()*60 + t.Minute()
	return m >= FirstSlotMinute && m <= LastSlotMinute && (m-FirstSlotMinute)%SlotMinutes == 0
}

// IsDate reports whether s is a canonical "YYYY-MM-DD" date.
func IsDate(s string) bool {
	t, err := time.Parse(timezone.DateLayout, s)
	return err == nil && t.Format(timezone.DateLayout) == s
}

func newDay(date string) DaySchedule {
	times := SlotTimes()
	slots := make([]TimeSlot, len(times))
	for i, hm := range times {
		slots[i] = TimeSlot{Time: hm, Available: true}
	}
	return DaySchedule{Date: date, IsOpen: true, TimeSlots: slots}
}

// YearSchedule is the whole calendar keyed by date. It may span several years.
type YearSchedule struct {
	days map[string]*DaySchedule
}

func New() *YearSchedule {
	return &YearSchedule{days: map[string]*DaySchedule{}}
}

// FromDays builds a calendar from a persisted list. Later duplicates win.
func FromDays(days []DaySchedule) *YearSchedule {
	ys := New()
	for i := range days {
		d := days[i]
		d.TimeSlots = append([]TimeSlot(nil), d.TimeSlots...)
		ys.days[d.Date] = &d
	}
	return ys
}

// Days returns a copy of every day in date order.
func (ys *YearSchedule) Days() []DaySchedule {
	out := make([]DaySchedule, 0, len(ys.days))
	for _, d := range ys.days {
		out = append(out, copyDay(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (ys *YearSchedule) Len() int {
	return len(ys.days)
}

func (ys *YearSchedule) Clone() *YearSchedule {
	c := New()
	for k, d := range ys.days {
		cp := copyDay(d)
		c.days[k] = &cp
	}
	return c
}

func copyDay(d *DaySchedule) DaySchedule {
	cp := *d
	cp.TimeSlots = append([]TimeSlot(nil), d.TimeSlots...)
	return cp
}

// Day returns a copy of the schedule for date.
func (ys *YearSchedule) Day(date string) (DaySchedule, bool) {
	d, ok := ys.days[date]
	if !ok {
		return DaySchedule{}, false
	}
	return copyDay(d), true
}

// Month returns the configured days of one month in date order.
func (ys *YearSchedule) Month(year int, month time.Month) []DaySchedule {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	out := []DaySchedule{}
	for k, d := range ys.days {
		if len(k) == len(timezone.DateLayout) && k[:len(prefix)] == prefix {
			out = append(out, copyDay(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
