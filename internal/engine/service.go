package engine

import (
	"context"
	"time"
)

// StateStore is the persistence collaborator: it supplies the current
// snapshot and accepts the replacement snapshot after every mutation. How
// snapshots reach durable storage is its business, not the engine's.
type StateStore interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, st *State) error
}

// Service runs reducer operations against the stored snapshot: load, reduce,
// save. Every exported method is one atomic user action. The transient popup
// map rides along for UI feedback and is never persisted.
type Service struct {
	store  StateStore
	clock  Clock
	popups *Popups
}

func NewService(store StateStore, clock Clock) *Service {
	if clock == nil {
		clock = RealClock{}
	}
	return &Service{store: store, clock: clock, popups: NewPopups()}
}

func (s *Service) Popups() *Popups { return s.popups }
func (s *Service) Now() time.Time  { return s.clock.Now() }

// Snapshot returns the current state for read-only surfaces (status, board).
func (s *Service) Snapshot(ctx context.Context) (*State, error) {
	return s.store.Load(ctx)
}

func (s *Service) mutate(ctx context.Context, fn func(st *State, now time.Time)) error {
	st, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	fn(st, s.clock.Now())
	return s.store.Save(ctx, st)
}

func (s *Service) AddTask(ctx context.Context, in AddTaskInput) (id string, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		id = st.AddTask(in, now)
	})
	return id, err
}

func (s *Service) DeleteTask(ctx context.Context, taskID string) (found bool, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		found = st.DeleteTask(taskID)
	})
	return found, err
}

func (s *Service) ToggleTask(ctx context.Context, taskID string) (res ToggleResult, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		res = st.ToggleTask(taskID, now)
		s.popups.Add(taskID, res.XPDelta, now)
	})
	return res, err
}

func (s *Service) ToggleQuestTask(ctx context.Context, questID, taskID string) (res ToggleResult, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		res = st.ToggleQuestTask(questID, taskID, now)
		s.popups.Add(taskID, res.XPDelta, now)
	})
	return res, err
}

func (s *Service) ConfirmQuestBonus(ctx context.Context, accept bool) (res ConfirmResult, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		res = st.ConfirmQuestBonus(accept, now)
		s.popups.Add(res.QuestID, res.XPDelta, now)
	})
	return res, err
}

func (s *Service) CreateQuest(ctx context.Context, title string) (id string, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		id = st.CreateQuest(title)
	})
	return id, err
}

func (s *Service) DeleteQuest(ctx context.Context, questID string) (found bool, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		found = st.DeleteQuest(questID)
	})
	return found, err
}

func (s *Service) AddCategory(ctx context.Context, questID string, c QuestCategory) (res EditResult, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		res = st.AddCategory(questID, c, now)
		s.popups.Add(questID, res.XPDelta, now)
	})
	return res, err
}

func (s *Service) DeleteCategory(ctx context.Context, questID, categoryID string) (res EditResult, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		res = st.DeleteCategory(questID, categoryID, now)
		s.popups.Add(questID, res.XPDelta, now)
	})
	return res, err
}

func (s *Service) AddQuestTask(ctx context.Context, questID, categoryID string, t QuestTask) (res EditResult, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		res = st.AddQuestTask(questID, categoryID, t, now)
		s.popups.Add(categoryID, res.XPDelta, now)
	})
	return res, err
}

func (s *Service) DeleteQuestTask(ctx context.Context, questID, taskID string) (res EditResult, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		res = st.DeleteQuestTask(questID, taskID, now)
		s.popups.Add(questID, res.XPDelta, now)
	})
	return res, err
}

// ApplyBreakdown validates a collaborator batch and, when valid, wholesale-
// replaces the quest's categories. Invalid input applies nothing.
func (s *Service) ApplyBreakdown(ctx context.Context, questID string, groups []BreakdownGroup) (found bool, err error) {
	cats, err := ValidateBreakdown(groups)
	if err != nil {
		return false, err
	}
	return s.ReplaceQuestCategories(ctx, questID, cats)
}

func (s *Service) ReplaceQuestCategories(ctx context.Context, questID string, cats []QuestCategory) (found bool, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		found = st.ReplaceQuestCategories(questID, cats)
	})
	return found, err
}

func (s *Service) SaveTemplate(ctx context.Context, tpl TaskTemplate) error {
	return s.mutate(ctx, func(st *State, now time.Time) {
		st.SaveTemplate(tpl)
	})
}

func (s *Service) ApplyTemplate(ctx context.Context, name string) (id string, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		id = st.ApplyTemplate(name, now)
	})
	return id, err
}

func (s *Service) AddGoal(ctx context.Context, text string) (id string, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		id = st.AddGoal(text, now)
	})
	return id, err
}

func (s *Service) ToggleGoal(ctx context.Context, goalID string) (found bool, err error) {
	err = s.mutate(ctx, func(st *State, now time.Time) {
		found = st.ToggleGoal(goalID)
	})
	return found, err
}

// NormalizeHabits runs one streak-clock pass. It saves only when a task
// actually changed, so redundant ticks stay side-effect free.
func (s *Service) NormalizeHabits(ctx context.Context) (changed bool, err error) {
	st, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	if !st.NormalizeHabits(s.clock.Now()) {
		return false, nil
	}
	return true, s.store.Save(ctx, st)
}
