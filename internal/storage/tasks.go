package storage

import (
	"context"
	"database/sql"
	"fmt"

	"xpeak/internal/engine"
)

func loadTasks(ctx context.Context, q dbtx) ([]engine.Task, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, title, difficulty, skill, is_habit, completed, streak, last_completed, created_at
		FROM tasks
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("tasks list: %w", err)
	}
	defer rows.Close()

	var out []engine.Task
	for rows.Next() {
		var t engine.Task
		var diff, skill string
		var isHabit, completed int
		var lastCompleted sql.NullTime
		if err := rows.Scan(&t.ID, &t.Title, &diff, &skill, &isHabit, &completed, &t.Streak, &lastCompleted, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("task scan: %w", err)
		}
		t.Difficulty = engine.Difficulty(diff)
		t.Skill = engine.Skill(skill)
		t.IsHabit = isHabit != 0
		t.Completed = completed != 0
		if lastCompleted.Valid {
			v := lastCompleted.Time
			t.LastCompleted = &v
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task rows: %w", err)
	}
	return out, nil
}

func saveTasks(ctx context.Context, tx *sql.Tx, tasks []engine.Task) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("tasks clear: %w", err)
	}
	for _, t := range tasks {
		var last any
		if t.LastCompleted != nil {
			last = *t.LastCompleted
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, title, difficulty, skill, is_habit, completed, streak, last_completed, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.ID, t.Title, string(t.Difficulty), string(t.Skill), boolToInt(t.IsHabit), boolToInt(t.Completed), t.Streak, last, t.CreatedAt); err != nil {
			return fmt.Errorf("task insert: %w", err)
		}
	}
	return nil
}
