package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nail-salon/internal/models"
)

// Logger is the synchronous sink behind Dispatcher.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	row := models.AuditLog{
		Actor:    models.AuditActorSystem,
		AdminID:  ev.AdminID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
	}
	if ev.AdminID != nil {
		row.Actor = models.AuditActorAdmin
	}

	if ev.Metadata != nil {
		b, err := json.Marshal(ev.Metadata)
		if err != nil {
			return fmt.Errorf("audit metadata for %s: %w", ev.Action, err)
		}
		row.Metadata = datatypes.JSON(b)
	}

	return l.db.WithContext(ctx).Create(&row).Error
}
