package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/spectree/internal/constants"
	spectreeerrors "github.com/mrz1836/spectree/internal/errors"
)

// TestValidate_NilConfig tests that nil config returns error
func TestValidate_NilConfig(t *testing.T) {
	t.Parallel()

	err := Validate(nil)

	require.Error(t, err)
	require.ErrorIs(t, err, spectreeerrors.ErrConfigNil)
}

// TestValidate_DefaultConfig tests that default config is valid
func TestValidate_DefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	err := Validate(cfg)

	require.NoError(t, err)
}

// TestValidate_MinimumBoundaryValues tests minimum valid values
func TestValidate_MinimumBoundaryValues(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Render: RenderConfig{
			SlowThreshold: 0,
		},
		Run: RunConfig{
			Dir: ".",
		},
		Watch: WatchConfig{
			Interval: constants.MinWatchInterval,
		},
	}

	err := Validate(cfg)

	require.NoError(t, err)
}

// TestValidateRenderConfig_NegativeSlowThreshold tests negative threshold is invalid
func TestValidateRenderConfig_NegativeSlowThreshold(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Render.SlowThreshold = -0.5

	err := Validate(cfg)

	require.Error(t, err)
	require.ErrorIs(t, err, spectreeerrors.ErrInvalidSlowThreshold)
	assert.Contains(t, err.Error(), "render.slow_threshold must not be negative")
}

// TestValidateRenderConfig_ZeroSlowThreshold tests a zero threshold is valid.
// Zero flags every test with a positive duration as slow, which is a
// legitimate way to surface all timings.
func TestValidateRenderConfig_ZeroSlowThreshold(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Render.SlowThreshold = 0

	err := Validate(cfg)

	require.NoError(t, err)
}

// TestValidateRunConfig_EmptyDir tests empty run dir is invalid
func TestValidateRunConfig_EmptyDir(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Run.Dir = ""

	err := Validate(cfg)

	require.Error(t, err)
	require.ErrorIs(t, err, spectreeerrors.ErrEmptyValue)
	assert.Contains(t, err.Error(), "run.dir must not be empty")
}

// TestValidateWatchConfig_IntervalTooShort tests sub-minimum interval is invalid
func TestValidateWatchConfig_IntervalTooShort(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Watch.Interval = 50 * time.Millisecond

	err := Validate(cfg)

	require.Error(t, err)
	require.ErrorIs(t, err, spectreeerrors.ErrWatchIntervalTooShort)
	assert.Contains(t, err.Error(), "watch.interval must be at least")
}

// TestValidateWatchConfig_ZeroInterval tests zero interval is invalid
func TestValidateWatchConfig_ZeroInterval(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Watch.Interval = 0

	err := Validate(cfg)

	require.Error(t, err)
	require.ErrorIs(t, err, spectreeerrors.ErrWatchIntervalTooShort)
}

// TestValidateWatchConfig_ExactMinimumInterval tests the boundary is inclusive
func TestValidateWatchConfig_ExactMinimumInterval(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Watch.Interval = constants.MinWatchInterval

	err := Validate(cfg)

	require.NoError(t, err)
}
