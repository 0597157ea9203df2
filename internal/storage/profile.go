package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"xpeak/internal/engine"
)

func loadProfile(ctx context.Context, q dbtx) (engine.UserProfile, error) {
	p := engine.UserProfile{Skills: map[engine.Skill]engine.SkillProgress{}}

	row := q.QueryRowContext(ctx, `SELECT name, total_xp, level, layout FROM profile WHERE key = ?`, ProfileKey)
	if err := row.Scan(&p.Name, &p.TotalXP, &p.Level, &p.Layout); err != nil {
		if err != sql.ErrNoRows {
			return p, fmt.Errorf("profile get: %w", err)
		}
	}

	rows, err := q.QueryContext(ctx, `SELECT skill, xp, level FROM skills`)
	if err != nil {
		return p, fmt.Errorf("skills list: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var skill string
		var sp engine.SkillProgress
		if err := rows.Scan(&skill, &sp.XP, &sp.Level); err != nil {
			return p, fmt.Errorf("skill scan: %w", err)
		}
		p.Skills[engine.Skill(skill)] = sp
	}
	if err := rows.Err(); err != nil {
		return p, fmt.Errorf("skills rows: %w", err)
	}

	history, err := loadHistory(ctx, q)
	if err != nil {
		return p, err
	}
	p.History = history

	templates, err := loadTemplates(ctx, q)
	if err != nil {
		return p, err
	}
	p.Templates = templates

	goals, err := loadGoals(ctx, q)
	if err != nil {
		return p, err
	}
	p.Goals = goals

	return p, nil
}

func loadHistory(ctx context.Context, q dbtx) ([]engine.HistoryEntry, error) {
	// Rows are inserted in slice order (newest first), so ascending id
	// reproduces that order.
	rows, err := q.QueryContext(ctx, `SELECT entry_date, xp_gained, task_id FROM history ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	defer rows.Close()

	var out []engine.HistoryEntry
	for rows.Next() {
		var e engine.HistoryEntry
		if err := rows.Scan(&e.Date, &e.XPGained, &e.TaskID); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}
	return out, nil
}

func loadTemplates(ctx context.Context, q dbtx) ([]engine.TaskTemplate, error) {
	rows, err := q.QueryContext(ctx, `SELECT name, title, difficulty, skill, is_habit FROM templates ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("templates list: %w", err)
	}
	defer rows.Close()

	var out []engine.TaskTemplate
	for rows.Next() {
		var t engine.TaskTemplate
		var diff, skill string
		var isHabit int
		if err := rows.Scan(&t.Name, &t.Title, &diff, &skill, &isHabit); err != nil {
			return nil, fmt.Errorf("template scan: %w", err)
		}
		t.Difficulty = engine.Difficulty(diff)
		t.Skill = engine.Skill(skill)
		t.IsHabit = isHabit != 0
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("template rows: %w", err)
	}
	return out, nil
}

func loadGoals(ctx context.Context, q dbtx) ([]engine.Goal, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, text, done, created_at FROM goals ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("goals list: %w", err)
	}
	defer rows.Close()

	var out []engine.Goal
	for rows.Next() {
		var g engine.Goal
		var done int
		var created time.Time
		if err := rows.Scan(&g.ID, &g.Text, &done, &created); err != nil {
			return nil, fmt.Errorf("goal scan: %w", err)
		}
		g.Done = done != 0
		g.CreatedAt = created
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("goal rows: %w", err)
	}
	return out, nil
}

func saveProfile(ctx context.Context, tx *sql.Tx, p engine.UserProfile) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO profile (key, name, total_xp, level, layout) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET name = excluded.name, total_xp = excluded.total_xp,
			level = excluded.level, layout = excluded.layout
	`, ProfileKey, p.Name, p.TotalXP, p.Level, p.Layout); err != nil {
		return fmt.Errorf("profile upsert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM skills`); err != nil {
		return fmt.Errorf("skills clear: %w", err)
	}
	for skill, sp := range p.Skills {
		if _, err := tx.ExecContext(ctx, `INSERT INTO skills (skill, xp, level) VALUES (?, ?, ?)`,
			string(skill), sp.XP, sp.Level); err != nil {
			return fmt.Errorf("skill insert: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("history clear: %w", err)
	}
	for _, e := range p.History {
		if _, err := tx.ExecContext(ctx, `INSERT INTO history (entry_date, xp_gained, task_id) VALUES (?, ?, ?)`,
			e.Date, e.XPGained, e.TaskID); err != nil {
			return fmt.Errorf("history insert: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM templates`); err != nil {
		return fmt.Errorf("templates clear: %w", err)
	}
	for _, t := range p.Templates {
		if _, err := tx.ExecContext(ctx, `INSERT INTO templates (name, title, difficulty, skill, is_habit) VALUES (?, ?, ?, ?, ?)`,
			t.Name, t.Title, string(t.Difficulty), string(t.Skill), boolToInt(t.IsHabit)); err != nil {
			return fmt.Errorf("template insert: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM goals`); err != nil {
		return fmt.Errorf("goals clear: %w", err)
	}
	for _, g := range p.Goals {
		if _, err := tx.ExecContext(ctx, `INSERT INTO goals (id, text, done, created_at) VALUES (?, ?, ?, ?)`,
			g.ID, g.Text, boolToInt(g.Done), g.CreatedAt); err != nil {
			return fmt.Errorf("goal insert: %w", err)
		}
	}

	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
