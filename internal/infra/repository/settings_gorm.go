package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/nail-salon/internal/httperr"
	"github.com/BruksfildServices01/nail-salon/internal/models"
)

const (
	DefaultClientTemplate = "Hola {name}, tu cita de {service} el {date} a las {time} está confirmada. Código: {id}"
	DefaultAdminTemplate  = "Nueva cita confirmada: {name}, {service}, {date} {time} (código {id})"
)

// SettingsGormRepository serves the single-row settings tables. A missing row
// reads as defaults; the first save creates it.
type SettingsGormRepository struct {
	db             *gorm.DB
	defaultDeposit int64
}

func NewSettingsGormRepository(db *gorm.DB, defaultDeposit int64) *SettingsGormRepository {
	return &SettingsGormRepository{db: db, defaultDeposit: defaultDeposit}
}

// --------------------------------------------------
// Payment settings
// --------------------------------------------------

func (r *SettingsGormRepository) GetPaymentSettings(ctx context.Context) (*models.PaymentSettings, error) {
	var s models.PaymentSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.PaymentSettings{DepositCents: r.defaultDeposit}, nil
	}
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	return &s, nil
}

func (r *SettingsGormRepository) SavePaymentSettings(ctx context.Context, s *models.PaymentSettings) error {
	var current models.PaymentSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&current).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.Persistence(err)
	}
	s.ID = current.ID

	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return httperr.Persistence(err)
	}
	return nil
}

// DepositCents is the deposit charged on new bookings.
func (r *SettingsGormRepository) DepositCents(ctx context.Context) int64 {
	s, err := r.GetPaymentSettings(ctx)
	if err != nil || s.DepositCents <= 0 {
		return r.defaultDeposit
	}
	return s.DepositCents
}

// --------------------------------------------------
// WhatsApp settings
// --------------------------------------------------

func (r *SettingsGormRepository) GetWhatsAppSettings(ctx context.Context) (*models.WhatsAppSettings, error) {
	var s models.WhatsAppSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.WhatsAppSettings{
			Enabled:        true,
			ClientTemplate: DefaultClientTemplate,
			AdminTemplate:  DefaultAdminTemplate,
		}, nil
	}
	if err != nil {
		return nil, httperr.Persistence(err)
	}
	if s.ClientTemplate == "" {
		s.ClientTemplate = DefaultClientTemplate
	}
	if s.AdminTemplate == "" {
		s.AdminTemplate = DefaultAdminTemplate
	}
	return &s, nil
}

func (r *SettingsGormRepository) SaveWhatsAppSettings(ctx context.Context, s *models.WhatsAppSettings) error {
	var current models.WhatsAppSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&current).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.Persistence(err)
	}
	s.ID = current.ID

	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return httperr.Persistence(err)
	}
	return nil
}
