package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/spectree/internal/constants"
)

// sampleChains is a two-test collection snapshot shared by command tests.
const sampleChains = `{
  "run_id": "run-123",
  "created": "2026-02-10T12:00:00Z",
  "schema_version": "1.0",
  "chains": [
    [
      {"id": "tests/test_auth.py", "name": "test_auth.py", "path": "tests/test_auth.py", "collect": true, "location": true},
      {"id": "tests/test_auth.py::describe_login", "name": "describe_login", "path": "tests/test_auth.py", "collect": true, "location": true, "block_type": "DescribeBlock"},
      {"id": "tests/test_auth.py::describe_login::it_accepts_valid_credentials", "name": "it_accepts_valid_credentials", "function": {}}
    ],
    [
      {"id": "tests/test_auth.py", "name": "test_auth.py", "path": "tests/test_auth.py", "collect": true, "location": true},
      {"id": "tests/test_auth.py::describe_login", "name": "describe_login", "path": "tests/test_auth.py", "collect": true, "location": true, "block_type": "DescribeBlock"},
      {"id": "tests/test_auth.py::describe_login::it_rejects_bad_passwords", "name": "it_rejects_bad_passwords", "function": {}}
    ]
  ]
}`

// sampleEvents holds one passing and one failing call event for the
// sample chains.
const sampleEvents = `{"id": "tests/test_auth.py::describe_login::it_accepts_valid_credentials", "phase": "call", "passed": true, "duration": 0.01}
{"id": "tests/test_auth.py::describe_login::it_rejects_bad_passwords", "phase": "call", "failed": true, "duration": 0.02, "longrepr": "AssertionError: wrong hash"}
`

// writeSampleRun creates a run directory holding the sample snapshot and
// event log, returning its path.
func writeSampleRun(t *testing.T) string {
	t.Helper()
	return writeRun(t, sampleChains, sampleEvents)
}

// writeRun creates a run directory with the given artifact contents. An
// empty events string skips the event log, like a run that has not
// started executing yet.
func writeRun(t *testing.T, chains, events string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.ChainsFileName), []byte(chains), 0o600))
	if events != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, constants.EventsFileName), []byte(events), 0o600))
	}
	return dir
}
