package engine

import "math"

const (
	// TaskBaseXP is the base XP unit scaled by difficulty multipliers.
	TaskBaseXP = 10

	// StreakMultStep is the per-consecutive-day bump to the habit streak
	// multiplier.
	StreakMultStep = 0.1

	// StreakMultCap bounds the habit streak multiplier so long streaks do
	// not produce runaway rewards.
	StreakMultCap = 2.0
)

// difficultyMultiplier is monotonically increasing across the tiers, so
// Easy < Medium < Hard < Epic always holds for the resulting XP.
func difficultyMultiplier(d Difficulty) float64 {
	switch d {
	case DifficultyEasy:
		return 1.0
	case DifficultyMedium:
		return 2.5
	case DifficultyHard:
		return 5.0
	case DifficultyEpic:
		return 10.0
	default:
		return difficultyMultiplier(DefaultDifficulty)
	}
}

type XPBreakdown struct {
	Base           int
	DifficultyMult float64
	StreakMult     float64
	Bonus          int
}

type XPResult struct {
	Total     int
	Breakdown XPBreakdown
}

// CalculateXP computes the XP magnitude for completing a task. Pure and
// deterministic: the same task always yields the same total, which is used
// for both the forward (complete) and reverse (uncomplete, negated) delta.
//
// Habit tasks get a streak multiplier that grows with consecutive-day
// completions up to StreakMultCap; a broken streak (Streak == 0) is back at
// the base multiplier. Quest tasks are evaluated through the same path with
// streak fixed at 0.
func CalculateXP(t Task) XPResult {
	diffMult := difficultyMultiplier(t.Difficulty)

	streakMult := 1.0
	if t.IsHabit && t.Streak > 0 {
		streakMult = 1.0 + StreakMultStep*float64(t.Streak)
		if streakMult > StreakMultCap {
			streakMult = StreakMultCap
		}
	}

	total := int(math.Round(TaskBaseXP * diffMult * streakMult))

	return XPResult{
		Total: total,
		Breakdown: XPBreakdown{
			Base:           TaskBaseXP,
			DifficultyMult: diffMult,
			StreakMult:     streakMult,
			Bonus:          0,
		},
	}
}

// questTaskXP is the award magnitude for a quest task.
func questTaskXP(t QuestTask) int {
	return CalculateXP(t.asFlat()).Total
}
