package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// compositeIndexes back the report and access queries.
// Single-column indexes are declared on the models.
var compositeIndexes = []struct {
	table   string
	name    string
	columns string
}{
	{"tasks", "idx_tasks_project_status", "project_id, status"},
	{"tasks", "idx_tasks_assignee_status", "assigned_to, status"},
	{"notifications", "idx_notifications_user_read", "user_id, is_read"},
	{"comments", "idx_comments_task_created", "task_id, created_at"},
}

// AddIndexes creates the composite indexes that do not exist yet.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}
