package models

import "time"

type GalleryImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"size:150" json:"title"`
	ImageURL  string `gorm:"size:500;not null" json:"image_url"`
	ObjectKey string `gorm:"size:200;not null" json:"-"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
	IsActive  bool   `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
