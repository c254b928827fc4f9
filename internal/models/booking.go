package models

import "time"

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Date     string    `gorm:"size:10;not null;index" json:"date"`
	Time     string    `gorm:"size:5;not null" json:"time"`
	StartsAt time.Time `json:"starts_at"`

	Service string `gorm:"size:100;not null" json:"service"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientEmail string `gorm:"size:100" json:"client_email"`
	ClientPhone string `gorm:"size:20;not null" json:"client_phone"`

	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	PaymentDeadline  *time.Time `json:"payment_deadline"`
	PaymentMethod    *string    `gorm:"size:20" json:"payment_method"`
	PaymentReference string     `gorm:"size:100" json:"payment_reference,omitempty"`

	DepositAmount int64   `json:"deposit_amount"`
	TotalPrice    *int64  `json:"total_price"`
	Notes         *string `gorm:"type:text" json:"notes"`

	CancelReason string     `gorm:"size:30" json:"cancel_reason,omitempty"`
	ConfirmedAt  *time.Time `json:"confirmed_at"`
	CancelledAt  *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
