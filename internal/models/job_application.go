package models

import "time"

type JobApplication struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:100;not null" json:"name"`
	Email      string `gorm:"size:100" json:"email"`
	Phone      string `gorm:"size:20;not null" json:"phone"`
	Position   string `gorm:"size:100" json:"position"`
	Experience string `gorm:"type:text" json:"experience"`
	Message    string `gorm:"type:text" json:"message"`
	Status     string `gorm:"size:20;default:'new'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
