package commands

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"filebak/internal/config"
	"filebak/internal/errors"
	"filebak/internal/paths"
	"filebak/internal/runner"
)

// buildRunner validates the loaded configuration and assembles a Runner
// from it. Configuration problems are reported together, eagerly.
func buildRunner(logger *slog.Logger) (*runner.Runner, error) {
	if configLoadErr != nil {
		if stderrors.Is(configLoadErr, fs.ErrNotExist) {
			return nil, errors.NewSystemError(
				fmt.Errorf("%w: %v", errors.ErrNotFound, configLoadErr),
				"Run: filebak init")
		}
		return nil, errors.NewConfigError(configLoadErr)
	}
	cfg := loadedConfig
	if cfg == nil {
		return nil, errors.NewConfigError(errors.ErrInvalidConfig)
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return nil, errors.NewUserError(
			errors.ErrInvalidConfig,
			"Fix config.yaml: "+strings.Join(msgs, "; "))
	}
	if len(cfg.Sources) == 0 {
		return nil, errors.NewUserError(runner.ErrNoSources,
			"Declare at least one source in config.yaml")
	}

	r := runner.New(
		runner.WithLogger(logger),
		runner.WithParallel(cfg.Parallel),
	)
	if err := r.SetDestination(paths.ExpandHome(cfg.Destination)); err != nil {
		return nil, err
	}
	if err := r.SetInterval(cfg.IntervalMinutes); err != nil {
		return nil, err
	}
	for _, src := range cfg.Sources {
		sel, err := src.Selector()
		if err != nil {
			return nil, err
		}
		if err := r.Register(paths.ExpandHome(src.Root), sel); err != nil {
			return nil, err
		}
	}

	return r, nil
}
