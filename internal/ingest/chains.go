// Package ingest loads run artifacts from a run directory: the chains
// snapshot written once at collection time and the append-only result
// event log written during execution.
//
// The package owns all wire formats; the collector never sees JSON.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/mrz1836/spectree/internal/collector"
	"github.com/mrz1836/spectree/internal/constants"
	spectreeerrors "github.com/mrz1836/spectree/internal/errors"
)

// FunctionRecord is the wire form of a function association.
type FunctionRecord struct {
	// Doc is the function's docstring.
	Doc string `json:"doc,omitempty"`

	// Fixtures lists declared dependency names in declaration order.
	Fixtures []string `json:"fixtures,omitempty"`
}

// ElementRecord is the wire form of one chain element. The optional
// fields model the capability subset the producing adapter observed;
// pointer fields distinguish "absent" from "present but zero".
type ElementRecord struct {
	// ID is the stable node identifier.
	ID string `json:"id"`

	// Name is the raw collected name.
	Name string `json:"name"`

	// Path is the element's path attribute, when it has one.
	Path *string `json:"path,omitempty"`

	// Collect marks the grouping capability.
	Collect bool `json:"collect,omitempty"`

	// Location marks the presence of location info.
	Location bool `json:"location,omitempty"`

	// BlockType is the runtime type name observed by the adapter.
	BlockType string `json:"block_type,omitempty"`

	// Doc is the element's own docstring, when it has one.
	Doc *string `json:"doc,omitempty"`

	// Function is the function association, when the element has one.
	Function *FunctionRecord `json:"function,omitempty"`
}

// chainElement adapts an ElementRecord to the collector's Element
// capability interface.
type chainElement struct {
	rec ElementRecord
}

func (e chainElement) ID() string   { return e.rec.ID }
func (e chainElement) Name() string { return e.rec.Name }

func (e chainElement) Path() (string, bool) {
	if e.rec.Path == nil {
		return "", false
	}
	return *e.rec.Path, true
}

func (e chainElement) Collects() bool    { return e.rec.Collect }
func (e chainElement) HasLocation() bool { return e.rec.Location }
func (e chainElement) BlockType() string { return e.rec.BlockType }

func (e chainElement) Doc() (string, bool) {
	if e.rec.Doc == nil {
		return "", false
	}
	return *e.rec.Doc, true
}

func (e chainElement) Function() (collector.FunctionInfo, bool) {
	if e.rec.Function == nil {
		return collector.FunctionInfo{}, false
	}
	return collector.FunctionInfo{
		Doc:      e.rec.Function.Doc,
		Fixtures: e.rec.Function.Fixtures,
	}, true
}

// ChainsFile is the decoded chains.json document.
type ChainsFile struct {
	// RunID identifies the run, as stamped by the producer.
	RunID string `json:"run_id"`

	// Created is when the snapshot was written.
	Created time.Time `json:"created"`

	// SchemaVersion is the snapshot schema version. Empty is accepted
	// for producers predating the field.
	SchemaVersion string `json:"schema_version,omitempty"`

	// Chains holds one element sequence per discovered test, outermost
	// ancestor first, the test itself last.
	Chains [][]ElementRecord `json:"chains"`
}

// Elements converts the decoded chains into the collector's input shape.
func (f *ChainsFile) Elements() [][]collector.Element {
	chains := make([][]collector.Element, 0, len(f.Chains))
	for _, chain := range f.Chains {
		elements := make([]collector.Element, 0, len(chain))
		for _, rec := range chain {
			elements = append(elements, chainElement{rec: rec})
		}
		chains = append(chains, elements)
	}
	return chains
}

// LoadChains reads and decodes a chains snapshot. A missing file maps
// to ErrChainsNotFound, an undecodable one to ErrChainsCorrupted, and a
// schema version mismatch to ErrUnsupportedSchemaVersion.
func LoadChains(path string) (*ChainsFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the run-dir flag
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", spectreeerrors.ErrChainsNotFound, path)
		}
		return nil, spectreeerrors.Wrap(err, "read chains file")
	}

	var file ChainsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", spectreeerrors.ErrChainsCorrupted, err)
	}

	if file.SchemaVersion != "" && file.SchemaVersion != constants.ChainsSchemaVersion {
		return nil, fmt.Errorf("%w: %s", spectreeerrors.ErrUnsupportedSchemaVersion, file.SchemaVersion)
	}

	return &file, nil
}
