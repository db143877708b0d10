package config

import (
	"goldtrack/internal/adapters/persistence/models"
	"goldtrack/internal/pkg/password"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
	log *zap.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config, log *zap.Logger) *Seeder {
	return &Seeder{db: db, cfg: cfg, log: log}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	s.log.Info("running database seeders")

	if err := s.seedAdminUser(); err != nil {
		s.log.Warn("admin seeder skipped", zap.Error(err))
	}

	return nil
}

// seedAdminUser creates the sign-in account that owns the admin email.
// The employee profile is not seeded: the account creates it through the API
// and is promoted because of its email.
// This is for development/testing only.
func (s *Seeder) seedAdminUser() error {
	if s.cfg.Seed.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", s.cfg.Business.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash(s.cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	email := s.cfg.Business.AdminEmail
	admin := &models.User{
		ID:       uuid.NewString(),
		Username: "admin",
		Email:    &email,
		Password: hashedPassword,
		IsActive: true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	s.log.Info("admin user created", zap.String("username", admin.Username), zap.String("email", email))
	return nil
}
