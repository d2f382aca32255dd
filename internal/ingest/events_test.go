package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/spectree/internal/domain"
)

// appendEvents appends raw content to the event log at path.
func appendEvents(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestEventReader_Next(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	appendEvents(t, path,
		`{"id":"t1","phase":"call","passed":true,"duration":0.01}`+"\n"+
			`{"id":"t2","phase":"call","failed":true,"duration":0.02,"longrepr":"boom"}`+"\n")

	reader := NewEventReader(path)
	events, err := reader.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "t1", events[0].NodeID)
	assert.Equal(t, domain.PhaseCall, events[0].Phase)
	assert.True(t, events[0].Passed)
	assert.InDelta(t, 0.01, events[0].Duration, 1e-9)

	assert.Equal(t, "t2", events[1].NodeID)
	assert.True(t, events[1].Failed)
	assert.Equal(t, "boom", events[1].Longrepr)
}

func TestEventReader_RemembersOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	appendEvents(t, path, `{"id":"t1","phase":"call","passed":true}`+"\n")

	reader := NewEventReader(path)
	events, err := reader.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)

	appendEvents(t, path, `{"id":"t2","phase":"call","failed":true}`+"\n")
	events, err = reader.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1, "only newly appended events are returned")
	assert.Equal(t, "t2", events[0].NodeID)

	events, err = reader.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events, "nothing new, nothing returned")
}

func TestEventReader_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	appendEvents(t, path,
		`{"id":"t1","phase":"call","passed":true}`+"\n"+
			"not json at all\n"+
			"\n"+
			`{"id":"t2","phase":"call","skipped":true}`+"\n")

	events, err := NewEventReader(path).Next(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "t1", events[0].NodeID)
	assert.Equal(t, "t2", events[1].NodeID)
}

func TestEventReader_LeavesPartialLineForNextPoll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	appendEvents(t, path, `{"id":"t1","phase":`)

	reader := NewEventReader(path)
	events, err := reader.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events, "a line still being written is not consumed")

	appendEvents(t, path, `"call","passed":true}`+"\n")
	events, err = reader.Next(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "t1", events[0].NodeID)
	assert.True(t, events[0].Passed)
}

func TestEventReader_MissingFile(t *testing.T) {
	reader := NewEventReader(filepath.Join(t.TempDir(), "events.jsonl"))
	events, err := reader.Next(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventReader_SectionsDecode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	appendEvents(t, path,
		`{"id":"t1","phase":"call","failed":true,"sections":[{"label":"Captured stdout call","text":"oops\n"}],"xfail":false}`+"\n")

	events, err := NewEventReader(path).Next(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Len(t, events[0].Sections, 1)
	assert.Equal(t, "Captured stdout call", events[0].Sections[0].Label)
	assert.Equal(t, "oops\n", events[0].Sections[0].Text)
}
