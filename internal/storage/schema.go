package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			total_xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			layout TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS skills (
			skill TEXT PRIMARY KEY,
			xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_date DATETIME NOT NULL,
			xp_gained INTEGER NOT NULL,
			task_id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS templates (
			name TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			skill TEXT NOT NULL,
			is_habit INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			done INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			skill TEXT NOT NULL,
			is_habit INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			streak INTEGER NOT NULL DEFAULT 0,
			last_completed DATETIME,
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			position INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS quest_categories (
			id TEXT PRIMARY KEY,
			quest_id TEXT NOT NULL,
			title TEXT NOT NULL,
			position INTEGER NOT NULL,
			FOREIGN KEY(quest_id) REFERENCES quests(id)
		);`,
		`CREATE TABLE IF NOT EXISTS quest_tasks (
			id TEXT PRIMARY KEY,
			category_id TEXT NOT NULL,
			name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			difficulty TEXT NOT NULL,
			skill TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			FOREIGN KEY(category_id) REFERENCES quest_categories(id)
		);`,
		`CREATE TABLE IF NOT EXISTS pending_bonus (
			key TEXT PRIMARY KEY,
			quest_id TEXT NOT NULL,
			amount INTEGER NOT NULL,
			task_id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS awarded_bonuses (
			quest_id TEXT PRIMARY KEY,
			amount INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quest_categories_quest_id ON quest_categories(quest_id);`,
		`CREATE INDEX IF NOT EXISTS idx_quest_tasks_category_id ON quest_tasks(category_id);`,
		`CREATE INDEX IF NOT EXISTS idx_history_task_id ON history(task_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
