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
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/NVIDIA/varsnap/pkg/session"
)

// iterationColumn is the shared first column of every exported table.
const iterationColumn = "iteration"

// table is one fully materialized CSV table before encoding.
type table struct {
	// base is the output file name without directory.
	base   string
	header []string
	rows   [][]string
}

// encode renders the table as CSV into a buffer. Output is fully
// buffered so a write failure never leaves a partial file, and identical
// tables encode to identical bytes.
func (t *table) encode() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.header); err != nil {
		return nil, fmt.Errorf("failed to encode header: %w", err)
	}
	for _, row := range t.rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to encode row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// columnsFor returns the header column names a series occupies:
// "<name>" for scalars, "<name>[0]".."<name>[k-1]" for arrays.
// Element indices are 0-based regardless of the debuggee language.
func columnsFor(ser session.Series) []string {
	if !ser.Kind.IsArray() {
		return []string{ser.Name}
	}
	cols := make([]string, ser.Length)
	for i := 0; i < ser.Length; i++ {
		cols[i] = fmt.Sprintf("%s[%d]", ser.Name, i)
	}
	return cols
}

// width returns the number of cells a series occupies per row.
func width(ser session.Series) int {
	if !ser.Kind.IsArray() {
		return 1
	}
	return ser.Length
}

// splitTable builds one per-variable table holding one row per iteration
// present in the series.
func splitTable(ser session.Series, suffix string) *table {
	t := &table{
		base:   ser.Name + suffix,
		header: append([]string{iterationColumn}, columnsFor(ser)...),
	}
	for _, snap := range ser.Snapshots {
		row := append([]string{fmt.Sprintf("%d", snap.Iteration)}, snap.Value.Cells()...)
		t.rows = append(t.rows, row)
	}
	return t
}

// combinedTable builds the shared table: one column block per series in
// registration order, one row per iteration present in any series,
// ascending. Iterations a series has no snapshot for render as empty
// cells, never as zeros.
func combinedTable(all []session.Series, base string) *table {
	t := &table{base: base, header: []string{iterationColumn}}

	byIter := make([]map[int][]string, len(all))
	iterSet := make(map[int]struct{})
	for i, ser := range all {
		t.header = append(t.header, columnsFor(ser)...)
		byIter[i] = make(map[int][]string, len(ser.Snapshots))
		for _, snap := range ser.Snapshots {
			byIter[i][snap.Iteration] = snap.Value.Cells()
			iterSet[snap.Iteration] = struct{}{}
		}
	}

	iters := make([]int, 0, len(iterSet))
	for it := range iterSet {
		iters = append(iters, it)
	}
	sort.Ints(iters)

	for _, it := range iters {
		row := []string{fmt.Sprintf("%d", it)}
		for i, ser := range all {
			if cells, ok := byIter[i][it]; ok {
				row = append(row, cells...)
				continue
			}
			for j := 0; j < width(ser); j++ {
				row = append(row, "")
			}
		}
		t.rows = append(t.rows, row)
	}
	return t
}
