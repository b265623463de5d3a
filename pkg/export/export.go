// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package export

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/NVIDIA/varsnap/pkg/errors"
	"github.com/NVIDIA/varsnap/pkg/header"
	"github.com/NVIDIA/varsnap/pkg/session"
)

// Layout selects the CSV table shape.
type Layout string

const (
	// LayoutSplit writes one table per tracked variable, the shape the
	// original per-variable plotting workflow expects.
	LayoutSplit Layout = "split"
	// LayoutCombined writes one shared table with an iteration column
	// plus one column block per variable.
	LayoutCombined Layout = "combined"
)

// IsUnknown reports whether the layout is not one of the supported set.
func (l Layout) IsUnknown() bool {
	switch l {
	case LayoutSplit, LayoutCombined:
		return false
	default:
		return true
	}
}

// SupportedLayouts returns the list of all supported layout names.
func SupportedLayouts() []string {
	return []string{string(LayoutSplit), string(LayoutCombined)}
}

const (
	// splitSuffix is appended to each variable name for split-layout
	// files.
	splitSuffix = "_varsnap.csv"
	// combinedName is the single file written by the combined layout.
	combinedName = "varsnap.csv"
)

// View is the read-only session surface the exporter consumes.
// *session.Session satisfies it.
type View interface {
	Names() []string
	Series(name string) (session.Series, bool)
}

// File describes one written output file.
type File struct {
	Path string `json:"path" yaml:"path"`
	Rows int    `json:"rows" yaml:"rows"`
}

// Failure records one output that could not be written.
type Failure struct {
	Path string `json:"path" yaml:"path"`
	Err  error  `json:"-" yaml:"-"`
	Msg  string `json:"error" yaml:"error"`
}

// Result reports what an export produced.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Layout   Layout    `json:"layout" yaml:"layout"`
	Files    []File    `json:"files" yaml:"files"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Exporter serializes a session's series to CSV files under Dir.
// Export reads session state without mutating it and is idempotent:
// exporting the same state twice produces byte-identical files.
type Exporter struct {
	// Layout selects split or combined output. Defaults to split.
	Layout Layout

	// Dir is the destination directory, created if absent.
	// Defaults to the current directory.
	Dir string

	// Version is stamped into the result metadata.
	Version string
}

// Export writes every series to CSV. A write failure on one file is
// recorded and does not abort the remaining files. An empty session is
// not an error: it yields headers only (and, in the split layout, no
// files, since no table exists to have a header).
func (e *Exporter) Export(ctx context.Context, view View) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	layout := e.Layout
	if layout == "" {
		layout = LayoutSplit
	}
	if layout.IsUnknown() {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"unknown export layout", map[string]any{"layout": string(layout)})
	}
	dir := e.Dir
	if dir == "" {
		dir = "."
	}

	res := &Result{Layout: layout}
	res.Init(header.KindExport, session.FullAPIVersion, e.Version)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		// Without a destination directory no table can be written, but
		// the export itself still reports per-file failures rather than
		// crashing the operator's session.
		for _, t := range e.tables(view, layout) {
			res.Failures = append(res.Failures, failure(filepath.Join(dir, t.base), err))
		}
		exportsTotal.WithLabelValues("error").Inc()
		return res, nil
	}

	for _, t := range e.tables(view, layout) {
		path := filepath.Join(dir, t.base)
		data, err := t.encode()
		if err != nil {
			res.Failures = append(res.Failures, failure(path, err))
			continue
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			res.Failures = append(res.Failures, failure(path, err))
			continue
		}
		res.Files = append(res.Files, File{Path: path, Rows: len(t.rows)})
		slog.Debug("table written", "path", path, "rows", len(t.rows))
	}

	status := "success"
	if len(res.Failures) > 0 {
		status = "partial"
		if len(res.Files) == 0 {
			status = "error"
		}
	}
	exportsTotal.WithLabelValues(status).Inc()
	exportedFiles.Add(float64(len(res.Files)))

	slog.Info("export complete",
		"layout", string(layout),
		"files", len(res.Files),
		"failures", len(res.Failures))
	return res, nil
}

// tables materializes the output tables for the chosen layout.
func (e *Exporter) tables(view View, layout Layout) []*table {
	names := view.Names()
	all := make([]session.Series, 0, len(names))
	for _, name := range names {
		if ser, ok := view.Series(name); ok {
			all = append(all, ser)
		}
	}

	if layout == LayoutCombined {
		return []*table{combinedTable(all, combinedName)}
	}

	tables := make([]*table, 0, len(all))
	for _, ser := range all {
		tables = append(tables, splitTable(ser, splitSuffix))
	}
	return tables
}

func failure(path string, err error) Failure {
	werr := errors.WrapWithContext(errors.ErrCodeDestinationUnwritable,
		"failed to write export file", err, map[string]any{"path": path})
	slog.Error("export file not written", "path", path, "error", err)
	return Failure{Path: path, Err: werr, Msg: werr.Error()}
}
