package engine

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// State is the single snapshot every operation reduces over. Operations take
// a *State and mutate it in place; each exported operation is one atomic
// action from the caller's perspective and reports what it did through its
// result struct. Missing ids are silent no-ops.
type State struct {
	Profile UserProfile
	Tasks   []Task
	Quests  []MainQuest

	// Pending is the quest bonus awaiting confirmation, nil when none.
	Pending *PendingBonus

	// AwardedQuestBonus records quest bonuses actually paid out, keyed by
	// quest id. A declined confirmation leaves the quest complete but
	// unpaid; revocation paths subtract only what this map says was paid.
	AwardedQuestBonus map[string]int
}

func NewState() *State {
	return &State{
		Profile: UserProfile{
			Skills: map[Skill]SkillProgress{},
		},
		AwardedQuestBonus: map[string]int{},
	}
}

func (s *State) quest(questID string) *MainQuest {
	for i := range s.Quests {
		if s.Quests[i].ID == questID {
			return &s.Quests[i]
		}
	}
	return nil
}

// findQuestTask locates a quest task anywhere under the given quest.
func (q *MainQuest) findTask(taskID string) (cat *QuestCategory, task *QuestTask) {
	for ci := range q.Categories {
		for ti := range q.Categories[ci].Tasks {
			if q.Categories[ci].Tasks[ti].ID == taskID {
				return &q.Categories[ci], &q.Categories[ci].Tasks[ti]
			}
		}
	}
	return nil, nil
}

func (q *MainQuest) category(categoryID string) *QuestCategory {
	for i := range q.Categories {
		if q.Categories[i].ID == categoryID {
			return &q.Categories[i]
		}
	}
	return nil
}

func (s *State) task(taskID string) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == taskID {
			return &s.Tasks[i]
		}
	}
	return nil
}

// addXP applies a total-XP delta with clamping and recomputes the level.
// Level is never stored independently of this recomputation.
func (s *State) addXP(delta int) {
	s.Profile.TotalXP += delta
	if s.Profile.TotalXP < 0 {
		s.Profile.TotalXP = 0
	}
	s.Profile.Level = CalculateLevel(s.Profile.TotalXP)
}

// addSkillXP applies a per-skill delta, independently clamped. The neutral
// default skill never gets an entry.
func (s *State) addSkillXP(skill Skill, delta int) {
	if skill == SkillDefault || !skill.IsValid() || delta == 0 {
		return
	}
	if s.Profile.Skills == nil {
		s.Profile.Skills = map[Skill]SkillProgress{}
	}
	sp := s.Profile.Skills[skill]
	sp.XP += delta
	if sp.XP < 0 {
		sp.XP = 0
	}
	sp.Level = CalculateLevel(sp.XP)
	s.Profile.Skills[skill] = sp
}

// appendHistory prepends one entry; history runs newest first.
func (s *State) appendHistory(now time.Time, xp int, taskID string) {
	entry := HistoryEntry{Date: now, XPGained: xp, TaskID: taskID}
	s.Profile.History = append([]HistoryEntry{entry}, s.Profile.History...)
}

// removeHistory removes the most recent entry for taskID and returns it.
// Only one entry goes, so legitimate repeated complete/uncomplete cycles
// never lose unrelated history.
func (s *State) removeHistory(taskID string) (HistoryEntry, bool) {
	for i := range s.Profile.History {
		if s.Profile.History[i].TaskID == taskID {
			entry := s.Profile.History[i]
			s.Profile.History = append(s.Profile.History[:i], s.Profile.History[i+1:]...)
			return entry, true
		}
	}
	return HistoryEntry{}, false
}

// NewID returns a random 12-byte hex id for tasks, categories and quests.
func NewID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
