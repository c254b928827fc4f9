package models

import (
	"time"

	"gorm.io/datatypes"
)

// ScheduleSettings is a single row holding the JSON-encoded calendar.
type ScheduleSettings struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	YearSchedule datatypes.JSON `json:"year_schedule"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
