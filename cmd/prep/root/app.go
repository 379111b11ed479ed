package root

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/config"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/engine"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/i18n"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/logging"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

// app bundles what a command needs. history is nil for the file backend.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	svc     *engine.Service
	bundle  *i18n.Bundle
	history *storage.DocumentRepo
}

var errNoHistory = errors.New("history is only kept by the sqlite store")

func (a *app) lang() kit.Language { return a.svc.Language() }

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagStore != "" {
		cfg.Store.Backend = flagStore
	}
	if flagDB != "" {
		cfg.Store.Path = flagDB
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config) (engine.Store, *storage.DocumentRepo, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		path := cfg.Store.Path
		if path == "" {
			p, err := storage.DefaultFilePath()
			if err != nil {
				return nil, nil, nil, err
			}
			path = p
		}
		fs, err := storage.NewFileStore(path)
		if err != nil {
			return nil, nil, nil, err
		}
		return fs, nil, func() {}, nil
	default:
		path, err := storage.ResolveDBPath(cfg.Store.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		db, err := storage.Open(ctx, path)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := storage.NewDocumentRepo(db).WithHistoryLimit(cfg.Store.HistoryLimit)
		return repo, repo, func() { _ = db.Close() }, nil
	}
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	bundle, err := i18n.Default()
	if err != nil {
		return nil, nil, err
	}

	store, history, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	svc, err := engine.NewService(ctx, engine.ServiceDeps{
		Store:            store,
		Logger:           logger,
		Localizer:        bundle.Translator,
		ExpiringSoonDays: cfg.Alerts.ExpiringSoonDays,
	})
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	cleanup := func() {
		closeStore()
		_ = logger.Sync()
	}
	return &app{cfg: cfg, logger: logger, svc: svc, bundle: bundle, history: history}, cleanup, nil
}
