package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  state TEXT NOT NULL DEFAULT 'created',
  start_time TEXT,
  end_time TEXT,
  duration REAL NOT NULL DEFAULT 0,
  issue_key TEXT,
  created_date TEXT NOT NULL,
  sync_required INTEGER NOT NULL DEFAULT 0,
  synced INTEGER NOT NULL DEFAULT 0,
  notes TEXT,
  worklog_id TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_created_date ON tasks (created_date)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  name VARCHAR(255) NOT NULL,
  state VARCHAR(16) NOT NULL DEFAULT 'created',
  start_time VARCHAR(40) NULL,
  end_time VARCHAR(40) NULL,
  duration DOUBLE NOT NULL DEFAULT 0,
  issue_key VARCHAR(64) NULL,
  created_date VARCHAR(40) NOT NULL,
  sync_required TINYINT(1) NOT NULL DEFAULT 0,
  synced TINYINT(1) NOT NULL DEFAULT 0,
  notes TEXT NULL,
  worklog_id VARCHAR(64) NULL,
  INDEX idx_tasks_created_date (created_date)
)`,
}

// Migrate creates the tasks table for the connection's driver when missing.
func Migrate(db *sqlx.DB) error {
	statements := sqliteSchema
	if db.DriverName() == "mysql" {
		statements = mysqlSchema
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("migrate tasks schema: %w", err)
		}
	}

	return nil
}
