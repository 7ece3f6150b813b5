package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rmdantas/agenda-api/internal/config"
	"github.com/rmdantas/agenda-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Provider{},
		&models.WorkingHours{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// One active appointment per provider slot, enforced even when two
	// inserts race past the transactional conflict check.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
		 ON appointments (provider_id, start_time)
		 WHERE cancelled = false`,
	).Error; err != nil {
		log.Fatalf("failed to create slot index: %v", err)
	}

	return db
}
