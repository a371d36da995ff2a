// Package bot wires the ledger, the conversation engine, and the Telegram
// runtime together: configuration, bootstrap, command registration, and the
// session sweep schedule.
package bot

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/ledgerbot/core/config"
	"github.com/m3rciful/ledgerbot/core/database"
)

// Snapshot backends accepted in LedgerConfig.Backend.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// LedgerConfig selects the snapshot backend and tunes the dialogue layer.
type LedgerConfig struct {
	Backend           string `yaml:"backend" envconfig:"LEDGER_BACKEND"`
	File              string `yaml:"file" envconfig:"LEDGER_FILE"`
	PageSize          int    `yaml:"page_size" envconfig:"LEDGER_PAGE_SIZE"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes" envconfig:"LEDGER_SESSION_TTL_MINUTES"`
	SweepSchedule     string `yaml:"sweep_schedule" envconfig:"LEDGER_SWEEP_SCHEDULE"`
}

// Config is the application configuration: the core bot settings plus the
// database and ledger sections.
type Config struct {
	Core     coreconfig.Config `yaml:",inline"`
	Database database.Config   `yaml:"database"`
	Ledger   LedgerConfig      `yaml:"ledger"`
}

// CoreConfig exposes the embedded core configuration for the shared runner.
func (c *Config) CoreConfig() *coreconfig.Config { return &c.Core }

// LoadConfig reads the YAML file, applies environment overrides, and
// validates both the core and the ledger sections.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalizeLedger(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalizeLedger(cfg *Config) error {
	lc := &cfg.Ledger

	backend := strings.ToLower(strings.TrimSpace(lc.Backend))
	if backend == "" {
		backend = BackendJSON
	}
	switch backend {
	case BackendJSON:
		if strings.TrimSpace(lc.File) == "" {
			lc.File = "data/ledger.json"
		}
	case BackendSQLite:
		cfg.Database.Driver = database.DriverSQLite
		if strings.TrimSpace(cfg.Database.Path) == "" {
			return fmt.Errorf("database.path is required when ledger.backend is 'sqlite'")
		}
	case BackendPostgres:
		cfg.Database.Driver = database.DriverPostgres
	default:
		return fmt.Errorf("invalid ledger.backend %q; allowed: json, sqlite, postgres", lc.Backend)
	}
	lc.Backend = backend

	if lc.PageSize <= 0 {
		lc.PageSize = 5
	}
	if lc.SessionTTLMinutes <= 0 {
		lc.SessionTTLMinutes = 30
	}
	if strings.TrimSpace(lc.SweepSchedule) == "" {
		lc.SweepSchedule = "@every 5m"
	}
	return nil
}
