package db

import (
	"fmt"

	types "github.com/yungbote/cemse-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.Models()...)
}

// EnsureBusinessPlanIndexes adds the postgres-only indexes gorm tags cannot express.
func EnsureBusinessPlanIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_business_plan_owner_updated
		ON business_plan (owner_id, updated_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_business_plan_owner_updated: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if s.driver != DriverPostgres {
		return nil
	}
	if err := EnsureBusinessPlanIndexes(s.db); err != nil {
		s.log.Error("Business plan index migration failed", "error", err)
		return err
	}
	return nil
}
