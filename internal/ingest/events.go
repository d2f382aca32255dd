package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/mrz1836/spectree/internal/collector"
	spectreeerrors "github.com/mrz1836/spectree/internal/errors"
)

// EventReader incrementally decodes result events from an append-only
// events.jsonl file. It remembers the byte offset of the last fully
// decoded line, so polling callers only ever see new events.
//
// Lines that fail to decode are skipped with a debug log entry; a
// trailing line without a newline is treated as mid-write and left for
// the next call. An EventReader is not safe for concurrent use.
type EventReader struct {
	path   string
	offset int64
}

// NewEventReader returns a reader positioned at the start of path.
// The file does not need to exist yet.
func NewEventReader(path string) *EventReader {
	return &EventReader{path: path}
}

// Next returns the events appended since the previous call. A missing
// file is not an error: execution may simply not have started.
func (r *EventReader) Next(ctx context.Context) ([]collector.Event, error) {
	log := zerolog.Ctx(ctx).With().Str("component", "ingest").Logger()

	f, err := os.Open(r.path) //nolint:gosec // Path comes from the run-dir flag
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, spectreeerrors.Wrap(err, "open events log")
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Seek(r.offset, io.SeekStart); err != nil {
		return nil, spectreeerrors.Wrap(err, "seek events log")
	}

	reader := bufio.NewReader(f)
	var events []collector.Event
	for {
		line, readErr := reader.ReadBytes('\n')
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				// Partial trailing bytes belong to a line still being
				// written; leave the offset before them.
				break
			}
			return events, spectreeerrors.Wrap(readErr, "read events log")
		}
		r.offset += int64(len(line))

		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}

		var ev collector.Event
		if decodeErr := json.Unmarshal(trimmed, &ev); decodeErr != nil {
			log.Debug().
				Err(spectreeerrors.ErrEventMalformed).
				Int64("offset", r.offset).
				Msg("skipping undecodable event line")
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}
