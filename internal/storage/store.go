package storage

import (
	"context"
	"database/sql"

	"xpeak/internal/engine"
)

// ProfileKey identifies the single local profile row.
const ProfileKey = "main_user"

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store persists whole engine snapshots. The engine never touches the
// database itself: the service loads a snapshot, reduces, and hands the
// replacement snapshot back here.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Load(ctx context.Context) (*engine.State, error) {
	st := engine.NewState()

	profile, err := loadProfile(ctx, s.db)
	if err != nil {
		return nil, err
	}
	st.Profile = profile

	tasks, err := loadTasks(ctx, s.db)
	if err != nil {
		return nil, err
	}
	st.Tasks = tasks

	quests, err := loadQuests(ctx, s.db)
	if err != nil {
		return nil, err
	}
	st.Quests = quests

	pending, err := loadPendingBonus(ctx, s.db)
	if err != nil {
		return nil, err
	}
	st.Pending = pending

	awarded, err := loadAwardedBonuses(ctx, s.db)
	if err != nil {
		return nil, err
	}
	st.AwardedQuestBonus = awarded

	return st, nil
}

// Save replaces the stored snapshot atomically.
func (s *Store) Save(ctx context.Context, st *engine.State) error {
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := saveProfile(ctx, tx, st.Profile); err != nil {
			return err
		}
		if err := saveTasks(ctx, tx, st.Tasks); err != nil {
			return err
		}
		if err := saveQuests(ctx, tx, st.Quests); err != nil {
			return err
		}
		if err := savePendingBonus(ctx, tx, st.Pending); err != nil {
			return err
		}
		return saveAwardedBonuses(ctx, tx, st.AwardedQuestBonus)
	})
}
