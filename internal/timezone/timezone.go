package timezone

import "time"

const DefaultTimezone = "America/Puerto_Rico"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Clock returns the current instant. Use cases take one so tests can move time.
type Clock func() time.Time

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SystemClock returns a Clock that reads the wall clock in tz.
func SystemClock(tz string) Clock {
	loc := Location(tz)
	return func() time.Time { return time.Now().In(loc) }
}

// ParseDateTime parses a "YYYY-MM-DD" + "HH:MM" pair in loc.
func ParseDateTime(date, hm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+hm, loc)
}
