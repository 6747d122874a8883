package database

import (
	"fmt"

	"github.com/yukikurage/scrum-board-api/internal/logging"
	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by the board's list filters.
// Single column indexes come from the model tags.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// sprint board columns: ?sprint=&status=
		{"tasks", "idx_tasks_sprint_status", "sprint_id, status"},
		// personal boards: ?assigned=&status=
		{"tasks", "idx_tasks_assigned_status", "assigned_id, status"},
		{"tasks", "idx_tasks_sort_order", "sort_order"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			logging.Logger.Debugf("index %s already exists, skipping", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logging.Logger.Infof("created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase creates or updates the schema and its indexes.
func MigrateDatabase(db *gorm.DB) error {
	logging.Logger.Info("running database migrations")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	logging.Logger.Info("database migrations completed")
	return nil
}
