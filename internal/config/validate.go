package config

import (
	"github.com/mrz1836/spectree/internal/constants"
	"github.com/mrz1836/spectree/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - Render slow threshold must not be negative
//   - Run dir must not be empty
//   - Watch interval must be at least the minimum poll interval
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	// Validate Render config
	if err := validateRenderConfig(&cfg.Render); err != nil {
		return err
	}

	// Validate Run config
	if err := validateRunConfig(&cfg.Run); err != nil {
		return err
	}

	// Validate Watch config
	if err := validateWatchConfig(&cfg.Watch); err != nil {
		return err
	}

	return nil
}

// validateRenderConfig checks rendering-specific configuration values.
func validateRenderConfig(cfg *RenderConfig) error {
	if cfg.SlowThreshold < 0 {
		return errors.Wrapf(errors.ErrInvalidSlowThreshold,
			"render.slow_threshold must not be negative, got %g", cfg.SlowThreshold)
	}

	return nil
}

// validateRunConfig checks run-data configuration values.
func validateRunConfig(cfg *RunConfig) error {
	if cfg.Dir == "" {
		return errors.Wrap(errors.ErrEmptyValue,
			"run.dir must not be empty")
	}

	return nil
}

// validateWatchConfig checks watch-mode configuration values.
func validateWatchConfig(cfg *WatchConfig) error {
	if cfg.Interval < constants.MinWatchInterval {
		return errors.Wrapf(errors.ErrWatchIntervalTooShort,
			"watch.interval must be at least %s, got %s",
			constants.MinWatchInterval, cfg.Interval)
	}

	return nil
}
