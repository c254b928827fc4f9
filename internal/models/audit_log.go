package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AuditActorAdmin  = "admin"
	AuditActorSystem = "system"
)

// AuditLog is append-only. Metadata is whatever the emitting use case chose
// to record about the change.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Actor    string         `gorm:"size:16;not null;index" json:"actor"`
	AdminID  *uint          `gorm:"index" json:"admin_id,omitempty"`
	Action   string         `gorm:"size:50;not null;index" json:"action"`
	Entity   string         `gorm:"size:50;index:idx_audit_entity" json:"entity"`
	EntityID string         `gorm:"size:64;index:idx_audit_entity" json:"entity_id"`
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
