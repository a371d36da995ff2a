package bot

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/m3rciful/ledgerbot/dialog"
	"github.com/m3rciful/ledgerbot/ledger"
	"github.com/m3rciful/ledgerbot/ledger/snapshot"

	"github.com/m3rciful/ledgerbot/core/bootstrap"
	"github.com/m3rciful/ledgerbot/core/database"
)

// App owns the application components for the lifetime of the process.
type App struct {
	cfg    *Config
	store  *ledger.Store
	engine *dialog.Engine
	cron   *cron.Cron
}

// Bootstrap initializes the logger, opens the configured snapshot backend,
// loads the ledger, and builds the conversation engine.
func Bootstrap(cfg *Config) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options[*ledger.Store]{
		Config: cfg.CoreConfig(),
		OpenStorage: func() (*ledger.Store, error) {
			return openStore(cfg)
		},
	})
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:    cfg,
		store:  res.Storage,
		engine: dialog.NewEngine(res.Storage, cfg.Ledger.PageSize),
		cron:   cron.New(),
	}, nil
}

func openStore(cfg *Config) (*ledger.Store, error) {
	snap, err := openSnapshotter(cfg)
	if err != nil {
		return nil, err
	}
	store, err := ledger.Open(context.Background(), snap)
	if err != nil {
		_ = snap.Close()
		return nil, err
	}
	return store, nil
}

func openSnapshotter(cfg *Config) (ledger.Snapshotter, error) {
	switch cfg.Ledger.Backend {
	case BackendJSON:
		return snapshot.NewJSONFile(cfg.Ledger.File)
	case BackendSQLite, BackendPostgres:
		if err := database.RunMigrations(cfg.Database, snapshot.Migrations, snapshot.MigrationsDir); err != nil {
			return nil, err
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		return snapshot.NewSQL(db), nil
	}
	return nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
}
