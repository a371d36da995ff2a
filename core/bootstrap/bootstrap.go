// Package bootstrap runs the generic startup pipeline shared between bots:
// logger initialization followed by storage opening.
package bootstrap

import (
	"fmt"

	coreconfig "github.com/m3rciful/ledgerbot/core/config"
	"github.com/m3rciful/ledgerbot/core/logger"
)

// Options control the bootstrap pipeline. The storage type is supplied by the
// application; the pipeline only sequences initialization and wraps errors.
type Options[S any] struct {
	Config *coreconfig.Config

	LoggerInit  func(*coreconfig.Config) error
	OpenStorage func() (S, error)
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result[S any] struct {
	Storage S
}

// Run initializes the logger and opens the application storage.
func Run[S any](opts Options[S]) (*Result[S], error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	var res Result[S]
	if opts.OpenStorage != nil {
		storage, err := opts.OpenStorage()
		if err != nil {
			return nil, fmt.Errorf("bootstrap: storage initialization failed: %w", err)
		}
		res.Storage = storage
	}

	return &res, nil
}
