package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateXP_Deterministic(t *testing.T) {
	task := Task{Title: "Write report", Difficulty: DifficultyHard, Skill: SkillWork}
	a := CalculateXP(task)
	b := CalculateXP(task)
	assert.Equal(t, a, b)
}

func TestCalculateXP_DifficultyTiers(t *testing.T) {
	cases := []struct {
		diff Difficulty
		want int
	}{
		{DifficultyEasy, 10},
		{DifficultyMedium, 25},
		{DifficultyHard, 50},
		{DifficultyEpic, 100},
	}
	for _, tc := range cases {
		t.Run(string(tc.diff), func(t *testing.T) {
			res := CalculateXP(Task{Difficulty: tc.diff})
			assert.Equal(t, tc.want, res.Total)
			assert.Equal(t, TaskBaseXP, res.Breakdown.Base)
			assert.Equal(t, 1.0, res.Breakdown.StreakMult)
		})
	}
}

func TestCalculateXP_TiersStrictlyIncrease(t *testing.T) {
	order := []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic}
	prev := 0
	for _, d := range order {
		total := CalculateXP(Task{Difficulty: d}).Total
		assert.Greater(t, total, prev)
		prev = total
	}
}

func TestCalculateXP_UnknownDifficultyFallsBack(t *testing.T) {
	got := CalculateXP(Task{Difficulty: Difficulty("brutal")})
	want := CalculateXP(Task{Difficulty: DefaultDifficulty})
	assert.Equal(t, want.Total, got.Total)
}

func TestCalculateXP_StreakMultiplier(t *testing.T) {
	base := Task{Difficulty: DifficultyMedium, IsHabit: true}

	cases := []struct {
		streak int
		want   int
	}{
		{0, 25},
		{1, 28}, // 25 * 1.1
		{3, 33}, // 25 * 1.3, rounded
		{10, 50},
		{25, 50}, // capped at 2.0
	}
	for _, tc := range cases {
		task := base
		task.Streak = tc.streak
		res := CalculateXP(task)
		assert.Equal(t, tc.want, res.Total, "streak %d", tc.streak)
	}
}

func TestCalculateXP_StreakIgnoredForNonHabits(t *testing.T) {
	task := Task{Difficulty: DifficultyMedium, IsHabit: false, Streak: 9}
	res := CalculateXP(task)
	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 1.0, res.Breakdown.StreakMult)
}

func TestQuestTaskXPMatchesFlatPath(t *testing.T) {
	qt := QuestTask{Name: "Step", Difficulty: DifficultyEpic, Skill: SkillCraft}
	assert.Equal(t, 100, questTaskXP(qt))
}
