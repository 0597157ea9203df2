package root

import (
	"context"
	"fmt"

	"xpeak/internal/config"
	"xpeak/internal/engine"
	"xpeak/internal/storage"
)

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.Load(path)
}

func openService(ctx context.Context) (*engine.Service, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, nil, err
		}
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	svc := engine.NewService(storage.NewStore(db), engine.RealClock{})

	// Catch up on the daily habit reset before any command runs; the pass
	// is idempotent, so doing it on every invocation is safe.
	if _, err := svc.NormalizeHabits(ctx); err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("normalize habits: %w", err)
	}

	return svc, cfg, cleanup, nil
}
