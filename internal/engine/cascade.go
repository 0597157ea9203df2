package engine

import "time"

// ToggleResult reports what a quest-task toggle did. Found is false when the
// quest or task id no longer exists, in which case nothing changed.
type ToggleResult struct {
	Found      bool
	Completing bool

	// XPDelta is the net applied delta: base task XP plus any immediate
	// section/quest adjustment. The deferred quest bonus is never in here.
	XPDelta      int
	SectionBonus int
	QuestRevoked int

	// PendingCreated is set when this toggle completed the quest and the
	// quest bonus now awaits confirmation.
	PendingCreated bool

	LevelBefore int
	LevelAfter  int
	LevelUp     bool
}

// ToggleQuestTask flips one quest task between pending and completed and
// cascades the derived category/quest completion consequences.
//
// Completing the last pending task of a category pays the section bonus
// immediately. Completing the last pending task of the quest does NOT pay the
// quest bonus; it parks it in the pending-confirmation state instead, so a
// user still iterating on a near-complete quest cannot trip a large award by
// accident. Uncompleting is symmetric except that quest-bonus revocation is
// immediate and unconditional on confirmation.
func (s *State) ToggleQuestTask(questID, taskID string, now time.Time) ToggleResult {
	res := ToggleResult{LevelBefore: s.Profile.Level, LevelAfter: s.Profile.Level}

	q := s.quest(questID)
	if q == nil {
		return res
	}
	cat, task := q.findTask(taskID)
	if task == nil {
		return res
	}

	res.Found = true
	res.Completing = !task.Completed()

	base := questTaskXP(*task)
	catCompleteBefore := cat.Complete()
	questCompleteBefore := q.Complete()

	if res.Completing {
		task.Status = StatusCompleted
	} else {
		task.Status = StatusPending
	}

	delta := base
	if !res.Completing {
		delta = -base
	}

	if res.Completing && cat.Complete() {
		res.SectionBonus = SectionBonusXP
		delta += SectionBonusXP
	}
	if !res.Completing && catCompleteBefore {
		res.SectionBonus = -SectionBonusXP
		delta -= SectionBonusXP
	}

	if res.Completing && q.Complete() {
		s.Pending = &PendingBonus{
			QuestID: q.ID,
			Amount:  QuestBonusAmount(len(q.Categories)),
			TaskID:  task.ID,
		}
		res.PendingCreated = true
	}
	if !res.Completing && questCompleteBefore {
		res.QuestRevoked = s.revokeQuestBonus(q.ID)
		delta -= res.QuestRevoked
	}

	if res.Completing {
		s.appendHistory(now, delta, task.ID)
	} else {
		s.removeHistory(task.ID)
	}

	skillDelta := base
	if !res.Completing {
		skillDelta = -base
	}
	s.addSkillXP(task.Skill, skillDelta)
	s.addXP(delta)

	res.XPDelta = delta
	res.LevelAfter = s.Profile.Level
	res.LevelUp = res.LevelAfter > res.LevelBefore
	return res
}

// revokeQuestBonus takes back a previously paid quest bonus: subtracts
// nothing itself but reports the paid amount, forgets the payment, drops the
// quest-keyed history entry, and clears a pending confirmation for the quest.
// A quest that completed but was never confirmed (declined) has nothing to
// take back.
func (s *State) revokeQuestBonus(questID string) int {
	if s.Pending != nil && s.Pending.QuestID == questID {
		s.Pending = nil
	}
	paid, ok := s.AwardedQuestBonus[questID]
	if !ok {
		return 0
	}
	delete(s.AwardedQuestBonus, questID)
	s.removeHistory(questID)
	return paid
}

type ConfirmResult struct {
	Found    bool
	Accepted bool
	QuestID  string
	XPDelta  int

	LevelBefore int
	LevelAfter  int
	LevelUp     bool
}

// ConfirmQuestBonus resolves the pending quest bonus. Accepting applies the
// deferred amount as an independent delta keyed by the quest id. Declining
// changes no XP; the quest stays complete uncelebrated, and a later
// structural edit can put it back through the confirmation flow.
func (s *State) ConfirmQuestBonus(accept bool, now time.Time) ConfirmResult {
	res := ConfirmResult{LevelBefore: s.Profile.Level, LevelAfter: s.Profile.Level}
	if s.Pending == nil {
		return res
	}

	res.Found = true
	res.QuestID = s.Pending.QuestID
	pending := *s.Pending
	s.Pending = nil

	if !accept {
		return res
	}

	res.Accepted = true
	res.XPDelta = pending.Amount
	s.AwardedQuestBonus[pending.QuestID] = pending.Amount
	s.appendHistory(now, pending.Amount, pending.QuestID)
	s.addXP(pending.Amount)

	res.LevelAfter = s.Profile.Level
	res.LevelUp = res.LevelAfter > res.LevelBefore
	return res
}

// EditResult reports the bonus fallout of a structural edit (add/delete of a
// quest task or category).
type EditResult struct {
	Found bool

	// XPDelta is the net applied delta from bonuses awarded or revoked by
	// the edit.
	XPDelta      int
	SectionBonus int
	QuestBonus   int

	LevelBefore int
	LevelAfter  int
}

// DeleteQuestTask removes a quest task. Deletion is a structural edit, not a
// toggle, yet it can flip derived predicates: deleting the one remaining
// pending task of a category makes the category newly complete, and the
// section bonus pays immediately. A deletion that completes the whole quest
// pays the quest bonus immediately as well; the confirmation gate exists for
// the "still editing" ambiguity of toggles, and a deletion has none.
//
// XP already earned by a deleted completed task stays earned; its history
// entry remains, same as the orphaned entries after a breakdown replacement.
func (s *State) DeleteQuestTask(questID, taskID string, now time.Time) EditResult {
	res := EditResult{LevelBefore: s.Profile.Level, LevelAfter: s.Profile.Level}

	q := s.quest(questID)
	if q == nil {
		return res
	}
	cat, task := q.findTask(taskID)
	if task == nil {
		return res
	}
	res.Found = true

	catCompleteBefore := cat.Complete()
	questCompleteBefore := q.Complete()

	for i := range cat.Tasks {
		if cat.Tasks[i].ID == taskID {
			cat.Tasks = append(cat.Tasks[:i], cat.Tasks[i+1:]...)
			break
		}
	}

	delta := 0

	switch {
	case !catCompleteBefore && cat.Complete():
		res.SectionBonus = SectionBonusXP
		delta += SectionBonusXP
		s.appendHistory(now, SectionBonusXP, cat.ID)
	case catCompleteBefore && !cat.Complete():
		// Deleting the last task left the category empty, which breaks
		// the derived predicate; the bonus it had paid goes back.
		res.SectionBonus = -SectionBonusXP
		delta -= SectionBonusXP
		s.removeHistory(cat.ID)
	}

	switch {
	case !questCompleteBefore && q.Complete():
		if s.Pending != nil && s.Pending.QuestID == q.ID {
			s.Pending = nil
		}
		bonus := QuestBonusAmount(len(q.Categories))
		res.QuestBonus = bonus
		delta += bonus
		s.AwardedQuestBonus[q.ID] = bonus
		s.appendHistory(now, bonus, q.ID)
	case questCompleteBefore && !q.Complete():
		paid := s.revokeQuestBonus(q.ID)
		res.QuestBonus = -paid
		delta -= paid
	}

	s.addXP(delta)
	res.XPDelta = delta
	res.LevelAfter = s.Profile.Level
	return res
}

// DeleteCategory removes a category. Only the quest-level predicate needs a
// before/after comparison; the category's own state leaves with it.
func (s *State) DeleteCategory(questID, categoryID string, now time.Time) EditResult {
	res := EditResult{LevelBefore: s.Profile.Level, LevelAfter: s.Profile.Level}

	q := s.quest(questID)
	if q == nil || q.category(categoryID) == nil {
		return res
	}
	res.Found = true

	questCompleteBefore := q.Complete()

	for i := range q.Categories {
		if q.Categories[i].ID == categoryID {
			q.Categories = append(q.Categories[:i], q.Categories[i+1:]...)
			break
		}
	}

	delta := 0
	switch {
	case !questCompleteBefore && q.Complete():
		if s.Pending != nil && s.Pending.QuestID == q.ID {
			s.Pending = nil
		}
		bonus := QuestBonusAmount(len(q.Categories))
		res.QuestBonus = bonus
		delta += bonus
		s.AwardedQuestBonus[q.ID] = bonus
		s.appendHistory(now, bonus, q.ID)
	case questCompleteBefore && !q.Complete():
		paid := s.revokeQuestBonus(q.ID)
		res.QuestBonus = -paid
		delta -= paid
	}

	s.addXP(delta)
	res.XPDelta = delta
	res.LevelAfter = s.Profile.Level
	return res
}

// AddQuestTask inserts a new (pending) task into a category. The mirror-image
// rule to completion: an insertion that breaks a previously-satisfied derived
// predicate immediately reverses the bonus that predicate had paid out.
func (s *State) AddQuestTask(questID, categoryID string, t QuestTask, now time.Time) EditResult {
	res := EditResult{LevelBefore: s.Profile.Level, LevelAfter: s.Profile.Level}

	q := s.quest(questID)
	if q == nil {
		return res
	}
	cat := q.category(categoryID)
	if cat == nil {
		return res
	}
	res.Found = true

	catCompleteBefore := cat.Complete()
	questCompleteBefore := q.Complete()

	if t.ID == "" {
		t.ID = NewID()
	}
	// Insertions always start pending; a pre-completed task would have no
	// history entry and could dodge the revocation pass.
	t.Status = StatusPending
	if !t.Difficulty.IsValid() {
		t.Difficulty = DefaultDifficulty
	}
	if !t.Skill.IsValid() {
		t.Skill = SkillDefault
	}
	cat.Tasks = append(cat.Tasks, t)

	delta := 0
	if catCompleteBefore && !cat.Complete() {
		res.SectionBonus = -SectionBonusXP
		delta -= SectionBonusXP
		s.removeHistory(cat.ID)
	}
	if questCompleteBefore && !q.Complete() {
		paid := s.revokeQuestBonus(q.ID)
		res.QuestBonus = -paid
		delta -= paid
	}

	s.addXP(delta)
	res.XPDelta = delta
	res.LevelAfter = s.Profile.Level
	return res
}

// AddCategory appends a category to a quest. A new category (typically empty)
// immediately breaks the quest-complete predicate, so a previously paid quest
// bonus goes back.
func (s *State) AddCategory(questID string, c QuestCategory, now time.Time) EditResult {
	res := EditResult{LevelBefore: s.Profile.Level, LevelAfter: s.Profile.Level}

	q := s.quest(questID)
	if q == nil {
		return res
	}
	res.Found = true

	questCompleteBefore := q.Complete()

	if c.ID == "" {
		c.ID = NewID()
	}
	for i := range c.Tasks {
		if c.Tasks[i].ID == "" {
			c.Tasks[i].ID = NewID()
		}
	}
	q.Categories = append(q.Categories, c)

	delta := 0
	if questCompleteBefore && !q.Complete() {
		paid := s.revokeQuestBonus(q.ID)
		res.QuestBonus = -paid
		delta -= paid
	}

	s.addXP(delta)
	res.XPDelta = delta
	res.LevelAfter = s.Profile.Level
	return res
}

// ReplaceQuestCategories wholesale-replaces a quest's categories, as the
// breakdown collaborator does. This is a full reset of the quest's completion
// surface: no bonus recomputation against the previous structure, prior
// completion state discarded, pending and paid bonus records for the quest
// cleared. History entries tied to discarded quest-task ids stay behind as an
// audit trail.
func (s *State) ReplaceQuestCategories(questID string, cats []QuestCategory) bool {
	q := s.quest(questID)
	if q == nil {
		return false
	}

	for i := range cats {
		if cats[i].ID == "" {
			cats[i].ID = NewID()
		}
		for j := range cats[i].Tasks {
			if cats[i].Tasks[j].ID == "" {
				cats[i].Tasks[j].ID = NewID()
			}
		}
	}

	q.Categories = cats
	if s.Pending != nil && s.Pending.QuestID == questID {
		s.Pending = nil
	}
	delete(s.AwardedQuestBonus, questID)
	return true
}

// CreateQuest adds an empty quest and returns its id.
func (s *State) CreateQuest(title string) string {
	q := MainQuest{ID: NewID(), Title: title}
	s.Quests = append(s.Quests, q)
	return q.ID
}

// DeleteQuest removes a quest outright. Earned XP stays; orphaned history
// entries persist, matching the breakdown-replacement policy.
func (s *State) DeleteQuest(questID string) bool {
	for i := range s.Quests {
		if s.Quests[i].ID == questID {
			s.Quests = append(s.Quests[:i], s.Quests[i+1:]...)
			if s.Pending != nil && s.Pending.QuestID == questID {
				s.Pending = nil
			}
			delete(s.AwardedQuestBonus, questID)
			return true
		}
	}
	return false
}
