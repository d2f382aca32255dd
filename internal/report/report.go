// Package report renders run artifacts from a result tree: a standalone
// HTML page, a Markdown summary and a JSON export.
//
// All three renderers take an io.Writer so callers decide where artifacts
// land; the report command writes them to files concurrently. Failure text
// and captured output pass through the sensitive-data filter before they
// are embedded, so reports can be attached to tickets and CI runs without
// leaking credentials that leaked into test output first.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/mrz1836/spectree/internal/clock"
)

// Meta identifies one rendered report: the run it covers, a fresh report
// id and the generation timestamp. The same Meta is shared across the
// artifacts of one report command so they can be correlated later.
type Meta struct {
	// RunID is the id of the run the report covers.
	RunID string

	// ReportID uniquely identifies this rendering of the run. A run can
	// be reported many times; each rendering gets its own id.
	ReportID string

	// GeneratedAt is the wall-clock time the report was produced.
	GeneratedAt time.Time
}

// NewMeta stamps report metadata for the given run.
func NewMeta(runID string, clk clock.Clock) Meta {
	return Meta{
		RunID:       runID,
		ReportID:    uuid.NewString(),
		GeneratedAt: clk.Now(),
	}
}
