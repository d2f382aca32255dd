package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	spectreeerrors "github.com/mrz1836/spectree/internal/errors"
)

const sampleChainsJSON = `{
  "run_id": "run-20260825-101500",
  "created": "2026-08-25T10:15:00Z",
  "schema_version": "1.0",
  "chains": [
    [
      {"id": "session", "name": "session", "path": ".", "collect": true},
      {"id": "tests/test_auth.py", "name": "tests/test_auth.py", "path": "tests/test_auth.py", "collect": true, "location": true},
      {"id": "tests/test_auth.py::describe_login", "name": "describe_login", "path": "tests/test_auth.py", "collect": true, "location": true, "block_type": "DescribeBlock", "function": {"doc": "Login behaviours."}},
      {"id": "tests/test_auth.py::describe_login::it_works", "name": "it_works", "function": {"doc": "Happy path.", "fixtures": ["request", "db"]}}
    ]
  ]
}`

// writeChains drops a chains snapshot into a temp run directory and
// returns its path.
func writeChains(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chains.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadChains(t *testing.T) {
	file, err := LoadChains(writeChains(t, sampleChainsJSON))
	require.NoError(t, err)

	assert.Equal(t, "run-20260825-101500", file.RunID)
	assert.Equal(t, "1.0", file.SchemaVersion)
	assert.Equal(t, 2026, file.Created.Year())
	require.Len(t, file.Chains, 1)
	assert.Len(t, file.Chains[0], 4)
}

func TestLoadChains_MissingFile(t *testing.T) {
	_, err := LoadChains(filepath.Join(t.TempDir(), "chains.json"))
	require.ErrorIs(t, err, spectreeerrors.ErrChainsNotFound)
}

func TestLoadChains_Corrupted(t *testing.T) {
	_, err := LoadChains(writeChains(t, `{"run_id": "x", "chains": [`))
	require.ErrorIs(t, err, spectreeerrors.ErrChainsCorrupted)
}

func TestLoadChains_SchemaVersion(t *testing.T) {
	t.Run("mismatch is rejected", func(t *testing.T) {
		_, err := LoadChains(writeChains(t, `{"schema_version": "9.9", "chains": []}`))
		require.ErrorIs(t, err, spectreeerrors.ErrUnsupportedSchemaVersion)
	})

	t.Run("absent version is accepted", func(t *testing.T) {
		file, err := LoadChains(writeChains(t, `{"run_id": "x", "chains": []}`))
		require.NoError(t, err)
		assert.Empty(t, file.SchemaVersion)
	})
}

func TestChainElement_Capabilities(t *testing.T) {
	t.Run("absent optionals report absence", func(t *testing.T) {
		el := chainElement{rec: ElementRecord{ID: "x", Name: "x"}}

		_, hasPath := el.Path()
		assert.False(t, hasPath)
		_, hasDoc := el.Doc()
		assert.False(t, hasDoc)
		_, hasFn := el.Function()
		assert.False(t, hasFn)
		assert.False(t, el.Collects())
		assert.False(t, el.HasLocation())
		assert.Empty(t, el.BlockType())
	})

	t.Run("present optionals pass through", func(t *testing.T) {
		path := "tests/test_auth.py"
		doc := "A docstring."
		el := chainElement{rec: ElementRecord{
			ID:        "d1",
			Name:      "describe_login",
			Path:      &path,
			Collect:   true,
			Location:  true,
			BlockType: "DescribeBlock",
			Doc:       &doc,
			Function:  &FunctionRecord{Doc: "fn doc", Fixtures: []string{"db"}},
		}}

		gotPath, hasPath := el.Path()
		require.True(t, hasPath)
		assert.Equal(t, path, gotPath)

		gotDoc, hasDoc := el.Doc()
		require.True(t, hasDoc)
		assert.Equal(t, doc, gotDoc)

		fn, hasFn := el.Function()
		require.True(t, hasFn)
		assert.Equal(t, "fn doc", fn.Doc)
		assert.Equal(t, []string{"db"}, fn.Fixtures)

		assert.True(t, el.Collects())
		assert.True(t, el.HasLocation())
		assert.Equal(t, "DescribeBlock", el.BlockType())
	})

	t.Run("empty path pointer still counts as present", func(t *testing.T) {
		empty := ""
		el := chainElement{rec: ElementRecord{ID: "x", Name: "x", Path: &empty}}

		gotPath, hasPath := el.Path()
		assert.True(t, hasPath)
		assert.Empty(t, gotPath)
	})
}

func TestChainsFile_Elements(t *testing.T) {
	file, err := LoadChains(writeChains(t, sampleChainsJSON))
	require.NoError(t, err)

	chains := file.Elements()
	require.Len(t, chains, 1)
	require.Len(t, chains[0], 4)
	assert.Equal(t, "session", chains[0][0].ID())
	assert.Equal(t, "it_works", chains[0][3].Name())
}
