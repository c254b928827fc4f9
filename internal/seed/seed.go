package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/nail-salon/internal/models"
)

type servicesFile struct {
	Services []struct {
		Name     string `yaml:"name"`
		Category string `yaml:"category"`
	} `yaml:"services"`
}

// ParseServices reads the catalog file format.
func ParseServices(data []byte) ([]models.Service, error) {
	var f servicesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	out := make([]models.Service, 0, len(f.Services))
	for i, s := range f.Services {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("service %d: empty name", i)
		}
		if !models.IsServiceCategory(s.Category) {
			return nil, fmt.Errorf("service %q: unknown category %q", name, s.Category)
		}
		out = append(out, models.Service{Name: name, Category: s.Category, IsActive: true})
	}
	return out, nil
}

// Services loads the catalog from path when the services table is empty. A
// missing file is not an error.
func Services(ctx context.Context, db *gorm.DB, path string, log zerolog.Logger) (int, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&models.Service{}).Count(&n).Error; err != nil {
		return 0, err
	}
	if n > 0 || path == "" {
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("services seed file not found")
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	services, err := ParseServices(data)
	if err != nil {
		return 0, err
	}
	if len(services) == 0 {
		return 0, nil
	}

	if err := db.WithContext(ctx).Create(&services).Error; err != nil {
		return 0, err
	}
	log.Info().Int("count", len(services)).Msg("services seeded")
	return len(services), nil
}

// Admin creates the bootstrap admin account if no admin with that email exists.
func Admin(ctx context.Context, db *gorm.DB, email, password string, log zerolog.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var existing models.AdminUser
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.AdminUser{Name: "Admin", Email: email, PasswordHash: string(hash)}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("bootstrap admin created")
	return nil
}
