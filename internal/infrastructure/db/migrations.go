package db

import (
	"github.com/augustpm/backend/internal/domain"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// AutoMigrate all models
	err := db.AutoMigrate(
		&domain.Task{},
		&domain.HistoryEntry{},
	)
	if err != nil {
		return err
	}

	return createCustomIndexes(db)
}

func createCustomIndexes(db *gorm.DB) error {
	// History is read per task in change order; changed_at ties are broken
	// by the autoincrement id.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_task_history_task_changed
		ON task_history (task_id, changed_at, id)
	`).Error; err != nil {
		return err
	}

	// Board listing is by state, most critical and most recent first.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tasks_state_priority
		ON tasks (state, priority, updated_at)
	`).Error; err != nil {
		return err
	}

	return nil
}
