package models

import "time"

type WhatsAppSettings struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	AdminPhone     string `gorm:"size:20" json:"admin_phone"`
	Enabled        bool   `json:"enabled"`
	ClientTemplate string `gorm:"type:text" json:"client_template"`
	AdminTemplate  string `gorm:"type:text" json:"admin_template"`

	UpdatedAt time.Time `json:"updated_at"`
}
