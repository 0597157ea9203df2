package storage

import (
	"context"
	"database/sql"
	"fmt"

	"xpeak/internal/engine"
)

func loadQuests(ctx context.Context, q dbtx) ([]engine.MainQuest, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, title FROM quests ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("quests list: %w", err)
	}
	defer rows.Close()

	var quests []engine.MainQuest
	for rows.Next() {
		var mq engine.MainQuest
		if err := rows.Scan(&mq.ID, &mq.Title); err != nil {
			return nil, fmt.Errorf("quest scan: %w", err)
		}
		quests = append(quests, mq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest rows: %w", err)
	}

	for i := range quests {
		cats, err := loadCategories(ctx, q, quests[i].ID)
		if err != nil {
			return nil, err
		}
		quests[i].Categories = cats
	}
	return quests, nil
}

func loadCategories(ctx context.Context, q dbtx, questID string) ([]engine.QuestCategory, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, title FROM quest_categories WHERE quest_id = ? ORDER BY position ASC`, questID)
	if err != nil {
		return nil, fmt.Errorf("categories list: %w", err)
	}
	defer rows.Close()

	var cats []engine.QuestCategory
	for rows.Next() {
		var c engine.QuestCategory
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			return nil, fmt.Errorf("category scan: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category rows: %w", err)
	}

	for i := range cats {
		tasks, err := loadQuestTasks(ctx, q, cats[i].ID)
		if err != nil {
			return nil, err
		}
		cats[i].Tasks = tasks
	}
	return cats, nil
}

func loadQuestTasks(ctx context.Context, q dbtx, categoryID string) ([]engine.QuestTask, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, status, difficulty, skill, description
		FROM quest_tasks
		WHERE category_id = ?
		ORDER BY position ASC
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("quest tasks list: %w", err)
	}
	defer rows.Close()

	var tasks []engine.QuestTask
	for rows.Next() {
		var t engine.QuestTask
		var status, diff, skill string
		if err := rows.Scan(&t.ID, &t.Name, &status, &diff, &skill, &t.Description); err != nil {
			return nil, fmt.Errorf("quest task scan: %w", err)
		}
		t.Status = engine.Status(status)
		t.Difficulty = engine.Difficulty(diff)
		t.Skill = engine.Skill(skill)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest task rows: %w", err)
	}
	return tasks, nil
}

func saveQuests(ctx context.Context, tx *sql.Tx, quests []engine.MainQuest) error {
	for _, stmt := range []string{`DELETE FROM quest_tasks`, `DELETE FROM quest_categories`, `DELETE FROM quests`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("quests clear: %w", err)
		}
	}

	for qi, mq := range quests {
		if _, err := tx.ExecContext(ctx, `INSERT INTO quests (id, title, position) VALUES (?, ?, ?)`,
			mq.ID, mq.Title, qi); err != nil {
			return fmt.Errorf("quest insert: %w", err)
		}
		for ci, c := range mq.Categories {
			if _, err := tx.ExecContext(ctx, `INSERT INTO quest_categories (id, quest_id, title, position) VALUES (?, ?, ?, ?)`,
				c.ID, mq.ID, c.Title, ci); err != nil {
				return fmt.Errorf("category insert: %w", err)
			}
			for ti, t := range c.Tasks {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO quest_tasks (id, category_id, name, status, difficulty, skill, description, position)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				`, t.ID, c.ID, t.Name, string(t.Status), string(t.Difficulty), string(t.Skill), t.Description, ti); err != nil {
					return fmt.Errorf("quest task insert: %w", err)
				}
			}
		}
	}
	return nil
}

func loadPendingBonus(ctx context.Context, q dbtx) (*engine.PendingBonus, error) {
	row := q.QueryRowContext(ctx, `SELECT quest_id, amount, task_id FROM pending_bonus WHERE key = ?`, ProfileKey)
	var p engine.PendingBonus
	if err := row.Scan(&p.QuestID, &p.Amount, &p.TaskID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("pending bonus get: %w", err)
	}
	return &p, nil
}

func savePendingBonus(ctx context.Context, tx *sql.Tx, p *engine.PendingBonus) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM pending_bonus`); err != nil {
		return fmt.Errorf("pending bonus clear: %w", err)
	}
	if p == nil {
		return nil
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO pending_bonus (key, quest_id, amount, task_id) VALUES (?, ?, ?, ?)`,
		ProfileKey, p.QuestID, p.Amount, p.TaskID); err != nil {
		return fmt.Errorf("pending bonus insert: %w", err)
	}
	return nil
}

func loadAwardedBonuses(ctx context.Context, q dbtx) (map[string]int, error) {
	rows, err := q.QueryContext(ctx, `SELECT quest_id, amount FROM awarded_bonuses`)
	if err != nil {
		return nil, fmt.Errorf("awarded bonuses list: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var questID string
		var amount int
		if err := rows.Scan(&questID, &amount); err != nil {
			return nil, fmt.Errorf("awarded bonus scan: %w", err)
		}
		out[questID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("awarded bonus rows: %w", err)
	}
	return out, nil
}

func saveAwardedBonuses(ctx context.Context, tx *sql.Tx, awarded map[string]int) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM awarded_bonuses`); err != nil {
		return fmt.Errorf("awarded bonuses clear: %w", err)
	}
	for questID, amount := range awarded {
		if _, err := tx.ExecContext(ctx, `INSERT INTO awarded_bonuses (quest_id, amount) VALUES (?, ?)`,
			questID, amount); err != nil {
			return fmt.Errorf("awarded bonus insert: %w", err)
		}
	}
	return nil
}
