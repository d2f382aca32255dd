package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/spectree/internal/constants"
	"github.com/mrz1836/spectree/internal/domain"
	spectreeerrors "github.com/mrz1836/spectree/internal/errors"
)

// writeRunDir materializes a run directory with the given artifacts.
func writeRunDir(t *testing.T, chains, events string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.ChainsFileName), []byte(chains), 0o600))
	if events != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, constants.EventsFileName), []byte(events), 0o600))
	}
	return dir
}

func TestLoadRun(t *testing.T) {
	dir := writeRunDir(t, sampleChainsJSON,
		`{"id":"tests/test_auth.py::describe_login::it_works","phase":"call","passed":true,"duration":0.012}`+"\n")

	run, err := LoadRun(context.Background(), dir, 0.5)
	require.NoError(t, err)

	assert.Equal(t, "run-20260825-101500", run.ID)
	assert.Equal(t, dir, run.Dir)

	tree := run.Tree()
	require.Len(t, tree.Roots, 1)
	assert.Equal(t, "tests/test_auth.py", tree.Roots[0].Name)
	assert.Equal(t, 1, tree.TotalTests())
	assert.Equal(t, 1, tree.TotalPassed())
	assert.InDelta(t, 0.5, tree.SlowThreshold, 1e-9)

	leaf := tree.Find("tests/test_auth.py::describe_login::it_works")
	require.NotNil(t, leaf)
	require.NotNil(t, leaf.Result)
	assert.Equal(t, domain.OutcomePassed, leaf.Result.Outcome)
	assert.Equal(t, []string{"db"}, leaf.Result.Fixtures, "builtin fixtures are filtered at build time")
}

func TestLoadRun_NoEventsYet(t *testing.T) {
	dir := writeRunDir(t, sampleChainsJSON, "")

	run, err := LoadRun(context.Background(), dir, 0.5)
	require.NoError(t, err)

	assert.Equal(t, 1, run.Tree().TotalTests())
	assert.Equal(t, 0, run.Tree().TotalPassed(), "tests stay pending without events")
}

func TestLoadRun_MissingDirectory(t *testing.T) {
	_, err := LoadRun(context.Background(), filepath.Join(t.TempDir(), "nope"), 0.5)
	require.ErrorIs(t, err, spectreeerrors.ErrRunNotFound)
}

func TestLoadRun_MissingChains(t *testing.T) {
	_, err := LoadRun(context.Background(), t.TempDir(), 0.5)
	require.ErrorIs(t, err, spectreeerrors.ErrChainsNotFound)
}

func TestLoadRun_GeneratesRunID(t *testing.T) {
	dir := writeRunDir(t, `{"chains": []}`, "")

	run, err := LoadRun(context.Background(), dir, 0.5)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID, "a missing run id gets a generated fallback")
}

func TestRun_Refresh(t *testing.T) {
	dir := writeRunDir(t, sampleChainsJSON, "")

	run, err := LoadRun(context.Background(), dir, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0, run.Tree().TotalPassed())

	appendEvents(t, filepath.Join(dir, constants.EventsFileName),
		`{"id":"tests/test_auth.py::describe_login::it_works","phase":"call","passed":true,"duration":0.012}`+"\n")

	applied, err := run.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.Equal(t, 1, run.Tree().TotalPassed())

	applied, err = run.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, applied, "no new events on the second refresh")
}

func TestRun_ChainsChanged(t *testing.T) {
	dir := writeRunDir(t, sampleChainsJSON, "")

	run, err := LoadRun(context.Background(), dir, 0.5)
	require.NoError(t, err)
	assert.False(t, run.ChainsChanged())

	// Rewrite the snapshot with a bumped mtime; same-second writes would
	// otherwise make this flaky.
	chainsPath := filepath.Join(dir, constants.ChainsFileName)
	require.NoError(t, os.WriteFile(chainsPath, []byte(sampleChainsJSON), 0o600))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(chainsPath, future, future))

	assert.True(t, run.ChainsChanged())
}
