package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/spectree/internal/collector"
	"github.com/mrz1836/spectree/internal/constants"
	"github.com/mrz1836/spectree/internal/domain"
	spectreeerrors "github.com/mrz1836/spectree/internal/errors"
)

// Run binds the artifacts of one run directory to a collector: the tree
// built from the chains snapshot plus an event reader positioned behind
// every event applied so far.
type Run struct {
	// ID identifies the run. Taken from the snapshot, or generated when
	// the producer did not stamp one.
	ID string

	// Created is the snapshot timestamp.
	Created time.Time

	// Dir is the run directory the artifacts were loaded from.
	Dir string

	collector   *collector.Collector
	events      *EventReader
	chainsStamp time.Time
}

// LoadRun loads the chains snapshot from dir, builds the tree and
// applies every event currently present in the event log. The returned
// Run can be refreshed later to pick up newly appended events.
func LoadRun(ctx context.Context, dir string, slowThreshold float64) (*Run, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", spectreeerrors.ErrRunNotFound, dir)
		}
		return nil, spectreeerrors.Wrap(err, "stat run directory")
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", spectreeerrors.ErrRunNotFound, dir)
	}

	chainsPath := filepath.Join(dir, constants.ChainsFileName)
	file, err := LoadChains(chainsPath)
	if err != nil {
		return nil, err
	}

	c := collector.New(slowThreshold)
	c.Build(file.Elements())

	run := &Run{
		ID:        file.RunID,
		Created:   file.Created,
		Dir:       dir,
		collector: c,
		events:    NewEventReader(filepath.Join(dir, constants.EventsFileName)),
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
		zerolog.Ctx(ctx).Debug().
			Str("run_id", run.ID).
			Msg("snapshot carries no run id, generated one")
	}
	if stamp, statErr := os.Stat(chainsPath); statErr == nil {
		run.chainsStamp = stamp.ModTime()
	}

	if _, err := run.Refresh(ctx); err != nil {
		return nil, err
	}
	return run, nil
}

// Refresh applies events appended since the last call and returns how
// many were applied.
func (r *Run) Refresh(ctx context.Context) (int, error) {
	events, err := r.events.Next(ctx)
	for _, ev := range events {
		r.collector.Update(ev)
	}
	if err != nil {
		return len(events), err
	}
	return len(events), nil
}

// Tree exposes the reconstructed hierarchy.
func (r *Run) Tree() *domain.Tree {
	return r.collector.Tree()
}

// ChainsChanged reports whether the chains snapshot has been rewritten
// since this Run was loaded, which means a new collection session
// replaced the run in place and the caller should reload.
func (r *Run) ChainsChanged() bool {
	info, err := os.Stat(filepath.Join(r.Dir, constants.ChainsFileName))
	if err != nil {
		return false
	}
	return info.ModTime().After(r.chainsStamp)
}
