package engine

import "time"

// midnight truncates t to its local midnight boundary.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NormalizeHabits runs the daily habit check over every flat habit task and
// reports whether anything changed.
//
// Two independent, individually idempotent rules:
//   - a habit marked completed whose last completion normalizes to a date
//     strictly before today loses its completed flag (daily reset); the
//     streak itself is untouched by this rule;
//   - a habit whose last completion normalizes to strictly before yesterday
//     has a nonzero streak reset to zero (a day was missed).
//
// Running the pass again on already-normalized tasks changes nothing, so the
// caller may invoke it on every clock tick.
func (s *State) NormalizeHabits(now time.Time) bool {
	today := midnight(now)
	yesterday := today.AddDate(0, 0, -1)

	changed := false
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if !t.IsHabit || t.LastCompleted == nil {
			continue
		}
		lastDay := midnight(*t.LastCompleted)

		if t.Completed && lastDay.Before(today) {
			t.Completed = false
			changed = true
		}
		if t.Streak != 0 && lastDay.Before(yesterday) {
			t.Streak = 0
			changed = true
		}
	}
	return changed
}
