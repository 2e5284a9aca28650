package database

import (
	"fmt"

	"go-hospital-management/config"
	"go-hospital-management/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresConnection(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("Successfully connected to PostgreSQL database")

	return db, nil
}

// Migrate keeps the schema in sync with the entity definitions.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.PatientProfile{},
		&entity.DoctorProfile{},
		&entity.HospitalProfile{},
		&entity.BedRequest{},
		&entity.AuditLog{},
	); err != nil {
		return err
	}

	// Partial unique index enforcing at most one pending request per
	// patient. AutoMigrate cannot express the WHERE clause.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bed_requests_patient_pending
		 ON bed_requests (patient_id) WHERE status = 'pending'`,
	).Error
}
