package engine

import "time"

type AddTaskInput struct {
	Title      string
	Difficulty Difficulty
	Skill      Skill
	IsHabit    bool
}

// AddTask creates a flat task and returns its id. Invalid difficulty/skill
// fall back to the defaults rather than failing.
func (s *State) AddTask(in AddTaskInput, now time.Time) string {
	if !in.Difficulty.IsValid() {
		in.Difficulty = DefaultDifficulty
	}
	if !in.Skill.IsValid() {
		in.Skill = SkillDefault
	}
	t := Task{
		ID:         NewID(),
		Title:      in.Title,
		Difficulty: in.Difficulty,
		Skill:      in.Skill,
		IsHabit:    in.IsHabit,
		CreatedAt:  now,
	}
	s.Tasks = append(s.Tasks, t)
	return t.ID
}

// DeleteTask removes a flat task. XP it already earned stays earned and its
// history entry remains, the same orphan policy as breakdown replacement.
func (s *State) DeleteTask(taskID string) bool {
	for i := range s.Tasks {
		if s.Tasks[i].ID == taskID {
			s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleTask flips a flat task between pending and completed.
//
// Completing a habit first advances its streak (consecutive calendar days),
// then awards XP computed against the advanced streak. Uncompleting reverses
// the exact XP its history entry recorded, so a complete/uncomplete cycle
// returns the ledger to its prior values even if the streak math has moved.
func (s *State) ToggleTask(taskID string, now time.Time) ToggleResult {
	res := ToggleResult{LevelBefore: s.Profile.Level, LevelAfter: s.Profile.Level}

	t := s.task(taskID)
	if t == nil {
		return res
	}
	res.Found = true
	res.Completing = !t.Completed

	if res.Completing {
		if t.IsHabit {
			t.Streak = advanceStreak(t.Streak, t.LastCompleted, now)
		}
		completedAt := now
		t.LastCompleted = &completedAt
		t.Completed = true

		xp := CalculateXP(*t).Total
		s.appendHistory(now, xp, t.ID)
		s.addSkillXP(t.Skill, xp)
		s.addXP(xp)
		res.XPDelta = xp
	} else {
		xp := CalculateXP(*t).Total
		if entry, ok := s.removeHistory(t.ID); ok {
			xp = entry.XPGained
		}
		t.Completed = false
		if t.IsHabit && t.Streak > 0 {
			t.Streak--
		}
		s.addSkillXP(t.Skill, -xp)
		s.addXP(-xp)
		res.XPDelta = -xp
	}

	res.LevelAfter = s.Profile.Level
	res.LevelUp = res.LevelAfter > res.LevelBefore
	return res
}

// advanceStreak returns the streak after a completion at now. A completion
// the day after the last one extends the run; a same-day completion counts
// as extending too (that only happens after an uncomplete stepped it back);
// anything older starts over at 1.
func advanceStreak(streak int, last *time.Time, now time.Time) int {
	if last == nil {
		return 1
	}
	lastDay := midnight(*last)
	today := midnight(now)
	switch {
	case lastDay.Equal(today), lastDay.Equal(today.AddDate(0, 0, -1)):
		return streak + 1
	default:
		return 1
	}
}

// SaveTemplate stores a reusable flat-task template under name, replacing an
// existing template with the same name.
func (s *State) SaveTemplate(tpl TaskTemplate) {
	if !tpl.Difficulty.IsValid() {
		tpl.Difficulty = DefaultDifficulty
	}
	if !tpl.Skill.IsValid() {
		tpl.Skill = SkillDefault
	}
	for i := range s.Profile.Templates {
		if s.Profile.Templates[i].Name == tpl.Name {
			s.Profile.Templates[i] = tpl
			return
		}
	}
	s.Profile.Templates = append(s.Profile.Templates, tpl)
}

// ApplyTemplate instantiates the named template as a new flat task and
// returns its id, or "" when no such template exists.
func (s *State) ApplyTemplate(name string, now time.Time) string {
	for _, tpl := range s.Profile.Templates {
		if tpl.Name == name {
			return s.AddTask(AddTaskInput{
				Title:      tpl.Title,
				Difficulty: tpl.Difficulty,
				Skill:      tpl.Skill,
				IsHabit:    tpl.IsHabit,
			}, now)
		}
	}
	return ""
}

// AddGoal records a personal goal on the profile.
func (s *State) AddGoal(text string, now time.Time) string {
	g := Goal{ID: NewID(), Text: text, CreatedAt: now}
	s.Profile.Goals = append(s.Profile.Goals, g)
	return g.ID
}

// ToggleGoal flips a goal's done flag. Goals are profile bookkeeping only;
// no XP changes hands.
func (s *State) ToggleGoal(goalID string) bool {
	for i := range s.Profile.Goals {
		if s.Profile.Goals[i].ID == goalID {
			s.Profile.Goals[i].Done = !s.Profile.Goals[i].Done
			return true
		}
	}
	return false
}
