package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBreakdown_Valid(t *testing.T) {
	data := []byte(`[
		{"title": "Research", "tasks": [
			{"name": "Survey options", "difficulty": "easy", "skillCategory": "mind"},
			{"name": "Pick a stack", "difficulty": "Hard", "skillCategory": "work", "description": "write it down"}
		]},
		{"title": "Build", "tasks": [
			{"name": "Prototype"}
		]}
	]`)

	cats, err := ParseBreakdown(data)
	require.NoError(t, err)
	require.Len(t, cats, 2)

	assert.Equal(t, "Research", cats[0].Title)
	assert.NotEmpty(t, cats[0].ID)
	require.Len(t, cats[0].Tasks, 2)
	assert.Equal(t, DifficultyEasy, cats[0].Tasks[0].Difficulty)
	assert.Equal(t, SkillMind, cats[0].Tasks[0].Skill)
	assert.Equal(t, DifficultyHard, cats[0].Tasks[1].Difficulty, "difficulty is case insensitive")
	assert.Equal(t, "write it down", cats[0].Tasks[1].Description)

	for _, c := range cats {
		for _, task := range c.Tasks {
			assert.Equal(t, StatusPending, task.Status)
			assert.NotEmpty(t, task.ID)
		}
	}
}

func TestParseBreakdown_EmptyListIsValid(t *testing.T) {
	cats, err := ParseBreakdown([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestParseBreakdown_MalformedJSON(t *testing.T) {
	_, err := ParseBreakdown([]byte(`{not json`))
	assert.Error(t, err)
}

func TestValidateBreakdown_RejectsWholeBatch(t *testing.T) {
	groups := []BreakdownGroup{
		{Title: "Good", Tasks: []BreakdownGroupTask{{Name: "Fine"}}},
		{Title: "  ", Tasks: []BreakdownGroupTask{{Name: "Unreachable"}}},
	}
	cats, err := ValidateBreakdown(groups)
	assert.Nil(t, cats)

	var bdErr BreakdownError
	require.ErrorAs(t, err, &bdErr)
	assert.Equal(t, 1, bdErr.Group)
	assert.Equal(t, -1, bdErr.Task)
}

func TestValidateBreakdown_RejectsUnnamedTask(t *testing.T) {
	groups := []BreakdownGroup{
		{Title: "Phase", Tasks: []BreakdownGroupTask{{Name: "ok"}, {Name: ""}}},
	}
	_, err := ValidateBreakdown(groups)
	var bdErr BreakdownError
	require.ErrorAs(t, err, &bdErr)
	assert.Equal(t, 0, bdErr.Group)
	assert.Equal(t, 1, bdErr.Task)
}

func TestValidateBreakdown_DefaultsInvalidFields(t *testing.T) {
	groups := []BreakdownGroup{
		{Title: "Phase", Tasks: []BreakdownGroupTask{
			{Name: "Mystery", Difficulty: "impossible", Skill: "charisma"},
		}},
	}
	cats, err := ValidateBreakdown(groups)
	require.NoError(t, err)
	assert.Equal(t, DefaultDifficulty, cats[0].Tasks[0].Difficulty)
	assert.Equal(t, SkillDefault, cats[0].Tasks[0].Skill)
}
