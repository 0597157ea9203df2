package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// buildQuest makes a quest with the given number of categories, each holding
// tasksPerCat medium/default tasks, all pending.
func buildQuest(id string, numCats, tasksPerCat int) MainQuest {
	q := MainQuest{ID: id, Title: "Quest " + id}
	for c := 0; c < numCats; c++ {
		cat := QuestCategory{ID: NewID(), Title: "Phase"}
		for t := 0; t < tasksPerCat; t++ {
			cat.Tasks = append(cat.Tasks, QuestTask{
				ID:         NewID(),
				Name:       "Task",
				Status:     StatusPending,
				Difficulty: DifficultyMedium,
				Skill:      SkillDefault,
			})
		}
		q.Categories = append(q.Categories, cat)
	}
	return q
}

func completeAll(q *MainQuest) {
	for ci := range q.Categories {
		for ti := range q.Categories[ci].Tasks {
			q.Categories[ci].Tasks[ti].Status = StatusCompleted
		}
	}
}

func countHistory(st *State, id string) int {
	n := 0
	for _, e := range st.Profile.History {
		if e.TaskID == id {
			n++
		}
	}
	return n
}

func TestToggleQuestTask_BaseAward(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 2, 2)}
	taskID := st.Quests[0].Categories[0].Tasks[0].ID

	res := st.ToggleQuestTask("q1", taskID, testNow)
	require.True(t, res.Found)
	assert.True(t, res.Completing)
	assert.Equal(t, 25, res.XPDelta)
	assert.Equal(t, 0, res.SectionBonus)
	assert.False(t, res.PendingCreated)
	assert.Equal(t, 25, st.Profile.TotalXP)
	assert.Equal(t, 1, countHistory(st, taskID))
}

func TestToggleQuestTask_SectionBonusOnLastTask(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 2, 2)}
	cat := &st.Quests[0].Categories[0]
	cat.Tasks[0].Status = StatusCompleted

	res := st.ToggleQuestTask("q1", cat.Tasks[1].ID, testNow)
	require.True(t, res.Found)
	assert.Equal(t, SectionBonusXP, res.SectionBonus)
	assert.Equal(t, 25+SectionBonusXP, res.XPDelta)
	assert.False(t, res.PendingCreated, "quest still has a pending category")

	// The section bonus is folded into the task's single history entry.
	assert.Equal(t, 1, countHistory(st, cat.Tasks[1].ID))
	assert.Equal(t, 45, st.Profile.History[0].XPGained)
}

func TestToggleQuestTask_ConfirmationGate(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 3, 1)}
	q := &st.Quests[0]
	q.Categories[0].Tasks[0].Status = StatusCompleted
	q.Categories[1].Tasks[0].Status = StatusCompleted
	lastID := q.Categories[2].Tasks[0].ID

	res := st.ToggleQuestTask("q1", lastID, testNow)
	require.True(t, res.Found)
	assert.True(t, res.PendingCreated)

	// Base + section applied, quest bonus deferred.
	assert.Equal(t, 45, res.XPDelta)
	assert.Equal(t, 45, st.Profile.TotalXP)

	require.NotNil(t, st.Pending)
	assert.Equal(t, "q1", st.Pending.QuestID)
	assert.Equal(t, 120, st.Pending.Amount)
	assert.Equal(t, lastID, st.Pending.TaskID)
	assert.Empty(t, st.AwardedQuestBonus)

	confirm := st.ConfirmQuestBonus(true, testNow)
	require.True(t, confirm.Found)
	assert.True(t, confirm.Accepted)
	assert.Equal(t, 120, confirm.XPDelta)
	assert.Equal(t, 165, st.Profile.TotalXP)
	assert.Nil(t, st.Pending)
	assert.Equal(t, 120, st.AwardedQuestBonus["q1"])
	assert.Equal(t, 1, countHistory(st, "q1"))
}

func TestConfirmQuestBonus_Decline(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 1, 1)}
	st.ToggleQuestTask("q1", st.Quests[0].Categories[0].Tasks[0].ID, testNow)
	require.NotNil(t, st.Pending)
	xpBefore := st.Profile.TotalXP

	res := st.ConfirmQuestBonus(false, testNow)
	require.True(t, res.Found)
	assert.False(t, res.Accepted)
	assert.Equal(t, xpBefore, st.Profile.TotalXP)
	assert.Nil(t, st.Pending)
	assert.Empty(t, st.AwardedQuestBonus)
	assert.True(t, st.Quests[0].Complete(), "quest stays complete, just uncelebrated")
}

func TestConfirmQuestBonus_NoPending(t *testing.T) {
	st := NewState()
	res := st.ConfirmQuestBonus(true, testNow)
	assert.False(t, res.Found)
	assert.Equal(t, 0, st.Profile.TotalXP)
}

func TestToggleQuestTask_RoundTripSymmetry(t *testing.T) {
	st := NewState()
	st.Profile.TotalXP = 500
	st.Profile.Level = CalculateLevel(500)
	st.addSkillXP(SkillMind, 80)
	st.Quests = []MainQuest{buildQuest("q1", 2, 2)}
	q := &st.Quests[0]
	q.Categories[0].Tasks[0].Skill = SkillMind
	taskID := q.Categories[0].Tasks[0].ID

	xpBefore := st.Profile.TotalXP
	mindBefore := st.Profile.Skills[SkillMind]

	st.ToggleQuestTask("q1", taskID, testNow)
	assert.Equal(t, 1, countHistory(st, taskID))

	st.ToggleQuestTask("q1", taskID, testNow)
	assert.Equal(t, 0, countHistory(st, taskID))
	assert.Equal(t, xpBefore, st.Profile.TotalXP)
	assert.Equal(t, mindBefore, st.Profile.Skills[SkillMind])

	// Complete again: exactly one entry, never two.
	st.ToggleQuestTask("q1", taskID, testNow)
	assert.Equal(t, 1, countHistory(st, taskID))
}

func TestToggleQuestTask_UncompleteRevokesSectionAndQuestBonus(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 1, 2)}
	q := &st.Quests[0]
	completeAll(q)
	st.AwardedQuestBonus["q1"] = 80
	st.Profile.TotalXP = 150
	st.Profile.Level = CalculateLevel(150)
	taskID := q.Categories[0].Tasks[0].ID

	res := st.ToggleQuestTask("q1", taskID, testNow)
	require.True(t, res.Found)
	assert.False(t, res.Completing)
	assert.Equal(t, -SectionBonusXP, res.SectionBonus)
	assert.Equal(t, 80, res.QuestRevoked)
	assert.Equal(t, -25-SectionBonusXP-80, res.XPDelta)
	assert.Equal(t, 25, st.Profile.TotalXP)
	assert.Empty(t, st.AwardedQuestBonus)
}

func TestToggleQuestTask_UncompleteClearsUnpaidPending(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 1, 1)}
	taskID := st.Quests[0].Categories[0].Tasks[0].ID

	st.ToggleQuestTask("q1", taskID, testNow)
	require.NotNil(t, st.Pending)

	res := st.ToggleQuestTask("q1", taskID, testNow)
	assert.Equal(t, 0, res.QuestRevoked, "never-paid bonus has nothing to revoke")
	assert.Nil(t, st.Pending)
	assert.Equal(t, 0, st.Profile.TotalXP)
}

func TestToggleQuestTask_MissingIDsAreNoOps(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 1, 1)}

	res := st.ToggleQuestTask("nope", "whatever", testNow)
	assert.False(t, res.Found)
	res = st.ToggleQuestTask("q1", "whatever", testNow)
	assert.False(t, res.Found)
	assert.Equal(t, 0, st.Profile.TotalXP)
	assert.Empty(t, st.Profile.History)
}

func TestClampTotalXPAtZero(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 2, 2)}
	q := &st.Quests[0]
	q.Categories[0].Tasks[0].Status = StatusCompleted
	// Ledger is behind what the toggle will subtract.
	st.Profile.TotalXP = 5

	res := st.ToggleQuestTask("q1", q.Categories[0].Tasks[0].ID, testNow)
	assert.False(t, res.Completing)
	assert.Equal(t, 0, st.Profile.TotalXP)
	assert.Equal(t, 0, st.Profile.Level)
}

func TestDeleteQuestTask_RetroactiveSectionBonus(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 2, 2)}
	q := &st.Quests[0]
	q.Categories[0].Tasks[0].Status = StatusCompleted
	pendingID := q.Categories[0].Tasks[1].ID

	res := st.DeleteQuestTask("q1", pendingID, testNow)
	require.True(t, res.Found)
	assert.Equal(t, SectionBonusXP, res.SectionBonus)
	assert.Equal(t, 0, res.QuestBonus, "other category still pending")
	assert.Equal(t, SectionBonusXP, st.Profile.TotalXP)
	assert.Len(t, q.Categories[0].Tasks, 1)
}

func TestDeleteQuestTask_RetroactiveQuestBonusBypassesGate(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 2, 2)}
	q := &st.Quests[0]
	completeAll(q)
	q.Categories[1].Tasks[1].Status = StatusPending
	pendingID := q.Categories[1].Tasks[1].ID

	res := st.DeleteQuestTask("q1", pendingID, testNow)
	require.True(t, res.Found)
	assert.Equal(t, SectionBonusXP, res.SectionBonus)
	assert.Equal(t, 80, res.QuestBonus)
	assert.Equal(t, SectionBonusXP+80, res.XPDelta)
	assert.Nil(t, st.Pending, "deletion-triggered completion needs no confirmation")
	assert.Equal(t, 80, st.AwardedQuestBonus["q1"])
	assert.Equal(t, 1, countHistory(st, "q1"))
}

func TestDeleteQuestTask_KeepsEarnedXP(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 1, 2)}
	taskID := st.Quests[0].Categories[0].Tasks[0].ID

	st.ToggleQuestTask("q1", taskID, testNow)
	xpAfterComplete := st.Profile.TotalXP

	res := st.DeleteQuestTask("q1", taskID, testNow)
	require.True(t, res.Found)
	// Remaining task is still pending, so no predicates flipped.
	assert.Equal(t, 0, res.XPDelta)
	assert.Equal(t, xpAfterComplete, st.Profile.TotalXP)
	assert.Equal(t, 1, countHistory(st, taskID), "orphaned entry stays")
}

func TestDeleteCategory_CompletesQuest(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 3, 1)}
	q := &st.Quests[0]
	q.Categories[0].Tasks[0].Status = StatusCompleted
	q.Categories[1].Tasks[0].Status = StatusCompleted
	danglingCatID := q.Categories[2].ID

	res := st.DeleteCategory("q1", danglingCatID, testNow)
	require.True(t, res.Found)
	// Two categories remain, both complete.
	assert.Equal(t, 80, res.QuestBonus)
	assert.Equal(t, 80, st.AwardedQuestBonus["q1"])
	assert.Nil(t, st.Pending)
}

func TestAddQuestTask_RevokesBrokenPredicates(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 3, 1)}
	q := &st.Quests[0]
	completeAll(q)
	st.AwardedQuestBonus["q1"] = 120
	st.Profile.TotalXP = 300
	st.Profile.Level = CalculateLevel(300)
	catID := q.Categories[1].ID

	res := st.AddQuestTask("q1", catID, QuestTask{Name: "New step"}, testNow)
	require.True(t, res.Found)
	assert.Equal(t, -SectionBonusXP, res.SectionBonus)
	assert.Equal(t, -120, res.QuestBonus)
	assert.Equal(t, -140, res.XPDelta)
	assert.Equal(t, 160, st.Profile.TotalXP)
	assert.Empty(t, st.AwardedQuestBonus)

	// The inserted task is normalized: pending, defaulted fields, fresh id.
	added := q.Categories[1].Tasks[len(q.Categories[1].Tasks)-1]
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, StatusPending, added.Status)
	assert.Equal(t, DefaultDifficulty, added.Difficulty)
	assert.Equal(t, SkillDefault, added.Skill)
}

func TestAddQuestTask_ForcesPendingStatus(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 1, 1)}
	q := &st.Quests[0]
	completeAll(q)
	st.AwardedQuestBonus["q1"] = 80
	st.Profile.TotalXP = 125
	st.Profile.Level = CalculateLevel(125)
	catID := q.Categories[0].ID

	// A caller-supplied completed status must not smuggle in a completed
	// task with no history entry behind it.
	res := st.AddQuestTask("q1", catID, QuestTask{Name: "Sneaky", Status: StatusCompleted}, testNow)
	require.True(t, res.Found)

	added := q.Categories[0].Tasks[1]
	assert.Equal(t, StatusPending, added.Status)
	assert.False(t, q.Categories[0].Complete())
	assert.Equal(t, -SectionBonusXP, res.SectionBonus)
	assert.Equal(t, -80, res.QuestBonus)
	assert.Equal(t, 25, st.Profile.TotalXP)
}

func TestAddQuestTask_IncompleteCategoryNoRevocation(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 2, 2)}
	catID := st.Quests[0].Categories[0].ID

	res := st.AddQuestTask("q1", catID, QuestTask{Name: "Extra"}, testNow)
	require.True(t, res.Found)
	assert.Equal(t, 0, res.XPDelta)
}

func TestAddCategory_RevokesQuestBonus(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 2, 1)}
	q := &st.Quests[0]
	completeAll(q)
	st.AwardedQuestBonus["q1"] = 80
	st.Profile.TotalXP = 130
	st.Profile.Level = CalculateLevel(130)

	res := st.AddCategory("q1", QuestCategory{Title: "New phase"}, testNow)
	require.True(t, res.Found)
	assert.Equal(t, -80, res.QuestBonus)
	assert.Equal(t, 50, st.Profile.TotalXP)
	assert.Empty(t, st.AwardedQuestBonus)
	assert.False(t, q.Complete(), "empty new category breaks the predicate")
}

func TestReplaceQuestCategories_FullReset(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 1, 1)}
	oldTaskID := st.Quests[0].Categories[0].Tasks[0].ID

	st.ToggleQuestTask("q1", oldTaskID, testNow)
	require.NotNil(t, st.Pending)
	xpBefore := st.Profile.TotalXP

	replacement := []QuestCategory{
		{Title: "Redo", Tasks: []QuestTask{{Name: "Step 1", Difficulty: DifficultyEasy, Skill: SkillDefault}}},
	}
	ok := st.ReplaceQuestCategories("q1", replacement)
	require.True(t, ok)

	assert.Nil(t, st.Pending)
	assert.Empty(t, st.AwardedQuestBonus)
	assert.Equal(t, xpBefore, st.Profile.TotalXP, "no bonus recomputation on replacement")
	assert.Equal(t, 1, countHistory(st, oldTaskID), "orphaned history persists")
	assert.False(t, st.Quests[0].Complete())
	assert.NotEmpty(t, st.Quests[0].Categories[0].ID)
	assert.NotEmpty(t, st.Quests[0].Categories[0].Tasks[0].ID)
}

func TestReplaceQuestCategories_EmptyListAndMissingQuest(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 2, 2)}

	assert.False(t, st.ReplaceQuestCategories("nope", nil))
	assert.True(t, st.ReplaceQuestCategories("q1", nil))
	assert.Empty(t, st.Quests[0].Categories)
	assert.False(t, st.Quests[0].Complete())
}

func TestDerivedPredicatesAreIdempotent(t *testing.T) {
	q := buildQuest("q1", 2, 2)
	cat := q.Categories[0]
	assert.Equal(t, cat.Complete(), cat.Complete())
	assert.Equal(t, q.Complete(), q.Complete())

	completeAll(&q)
	assert.True(t, q.Categories[0].Complete())
	assert.True(t, q.Categories[0].Complete())
	assert.True(t, q.Complete())
}

func TestEmptyStructuresAreNeverComplete(t *testing.T) {
	assert.False(t, QuestCategory{ID: "c", Title: "empty"}.Complete())
	assert.False(t, MainQuest{ID: "q", Title: "empty"}.Complete())
}

func TestDeclineThenEditRearmsConfirmation(t *testing.T) {
	st := NewState()
	st.Quests = []MainQuest{buildQuest("q1", 1, 1)}
	q := &st.Quests[0]
	taskID := q.Categories[0].Tasks[0].ID

	st.ToggleQuestTask("q1", taskID, testNow)
	st.ConfirmQuestBonus(false, testNow)
	require.Nil(t, st.Pending)

	// A structural edit that re-fires the completion transition can route
	// the quest back through the confirmation flow.
	res := st.AddQuestTask("q1", q.Categories[0].ID, QuestTask{Name: "One more"}, testNow)
	require.True(t, res.Found)
	assert.Equal(t, -SectionBonusXP, res.SectionBonus)
	assert.Equal(t, 0, res.QuestBonus, "declined bonus was never paid")

	newID := q.Categories[0].Tasks[1].ID
	toggle := st.ToggleQuestTask("q1", newID, testNow)
	assert.True(t, toggle.PendingCreated)
	require.NotNil(t, st.Pending)
	assert.Equal(t, 80, st.Pending.Amount)
}
