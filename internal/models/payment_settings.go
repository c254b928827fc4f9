package models

import "time"

type PaymentSettings struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	ATHBusinessName    string `gorm:"size:100" json:"ath_business_name"`
	ATHPublicToken     string `gorm:"size:200" json:"ath_public_token"`
	DepositCents       int64  `json:"deposit_cents"`
	MercadoPagoEnabled bool   `json:"mercadopago_enabled"`

	UpdatedAt time.Time `json:"updated_at"`
}
