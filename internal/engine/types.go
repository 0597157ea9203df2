package engine

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyEpic   Difficulty = "epic"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic:
		return true
	default:
		return false
	}
}

// DefaultDifficulty is used when user or collaborator input is missing/invalid.
const DefaultDifficulty Difficulty = DifficultyMedium

type Skill string

const (
	SkillMind   Skill = "mind"
	SkillBody   Skill = "body"
	SkillCraft  Skill = "craft"
	SkillWork   Skill = "work"
	SkillSocial Skill = "social"

	// SkillDefault is the neutral category. Tasks tagged with it still earn
	// total XP but never touch any per-skill entry.
	SkillDefault Skill = "default"
)

func (s Skill) IsValid() bool {
	switch s {
	case SkillMind, SkillBody, SkillCraft, SkillWork, SkillSocial, SkillDefault:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"

	// StatusInProgress is accepted on input but the cascade treats it the
	// same as pending.
	StatusInProgress Status = "in-progress"
)

// Task is a flat, standalone task. Only flat tasks carry habit/streak state.
type Task struct {
	ID            string
	Title         string
	Difficulty    Difficulty
	Skill         Skill
	IsHabit       bool
	Completed     bool
	Streak        int
	LastCompleted *time.Time
	CreatedAt     time.Time
}

// QuestTask belongs to a category inside a quest. Completion is independent
// per task; streak never applies here.
type QuestTask struct {
	ID          string
	Name        string
	Status      Status
	Difficulty  Difficulty
	Skill       Skill
	Description string
}

func (t QuestTask) Completed() bool { return t.Status == StatusCompleted }

// asFlat maps a quest task into the flat Task shape so the XP calculator can
// evaluate it. Streak is fixed at 0.
func (t QuestTask) asFlat() Task {
	return Task{
		ID:         t.ID,
		Title:      t.Name,
		Difficulty: t.Difficulty,
		Skill:      t.Skill,
	}
}

type QuestCategory struct {
	ID    string
	Title string
	Tasks []QuestTask
}

// Complete reports whether every task in the category is completed.
// A category with zero tasks is never complete. Always derived by scanning;
// a cached flag is exactly what reintroduces double-bonus bugs.
func (c QuestCategory) Complete() bool {
	if len(c.Tasks) == 0 {
		return false
	}
	for i := range c.Tasks {
		if !c.Tasks[i].Completed() {
			return false
		}
	}
	return true
}

type MainQuest struct {
	ID         string
	Title      string
	Categories []QuestCategory
}

// Complete reports whether every category is complete. A quest with zero
// categories is never complete.
func (q MainQuest) Complete() bool {
	if len(q.Categories) == 0 {
		return false
	}
	for i := range q.Categories {
		if !q.Categories[i].Complete() {
			return false
		}
	}
	return true
}

type SkillProgress struct {
	XP    int
	Level int
}

// HistoryEntry records one XP-granting event. Newest entries sit at the front
// of the profile history.
type HistoryEntry struct {
	Date     time.Time
	XPGained int
	TaskID   string
}

type TaskTemplate struct {
	Name       string
	Title      string
	Difficulty Difficulty
	Skill      Skill
	IsHabit    bool
}

type Goal struct {
	ID        string
	Text      string
	Done      bool
	CreatedAt time.Time
}

type UserProfile struct {
	Name      string
	TotalXP   int
	Level     int
	Skills    map[Skill]SkillProgress
	History   []HistoryEntry
	Templates []TaskTemplate
	Goals     []Goal
	Layout    string
}

// PendingBonus is the deferred quest-completion bonus awaiting the user's
// explicit confirmation. TaskID is the toggle that pushed the quest over
// the line.
type PendingBonus struct {
	QuestID string
	Amount  int
	TaskID  string
}
