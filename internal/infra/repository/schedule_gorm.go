package repository

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nail-salon/internal/domain/schedule"
	"github.com/BruksfildServices01/nail-salon/internal/models"
)

// ScheduleGormRepository persists the calendar in the single schedule_settings row.
type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// LoadDays returns the stored calendar, or nil when nothing was saved yet.
func (r *ScheduleGormRepository) LoadDays(ctx context.Context) ([]schedule.DaySchedule, error) {
	var row models.ScheduleSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(row.YearSchedule) == 0 {
		return nil, nil
	}

	var days []schedule.DaySchedule
	if err := json.Unmarshal(row.YearSchedule, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *ScheduleGormRepository) SaveDays(ctx context.Context, days []schedule.DaySchedule) error {
	payload, err := json.Marshal(days)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.ScheduleSettings
		err := tx.Order("id ASC").First(&row).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row.YearSchedule = datatypes.JSON(payload)
		return tx.Save(&row).Error
	})
}
