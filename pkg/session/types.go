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

package session

import (
	"context"

	"github.com/NVIDIA/varsnap/pkg/header"
	"github.com/NVIDIA/varsnap/pkg/value"
)

// FullAPIVersion is the schema version stamped on serialized session
// documents.
const FullAPIVersion = "varsnap.nvidia.com/v1alpha1"

// ValueReader reads the current normalized value of a named variable from
// the debuggee. Satisfied by probe.Reader.
type ValueReader interface {
	Read(ctx context.Context, name string) (value.Value, error)
}

// Snapshot is one sampled value tagged with the session iteration that
// produced it.
type Snapshot struct {
	Iteration int         `json:"iteration" yaml:"iteration"`
	Value     value.Value `json:"value" yaml:"value"`
}

// Series is the ordered history of snapshots for one tracked variable.
// Kind and Length are established at the first observation (or declared
// up front) and never change for the life of the session.
type Series struct {
	Name      string      `json:"name" yaml:"name"`
	Kind      value.Kind  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Length    int         `json:"length,omitempty" yaml:"length,omitempty"`
	Snapshots []Snapshot  `json:"snapshots" yaml:"snapshots"`
}

// established reports whether the series has a fixed kind yet.
func (s *Series) established() bool {
	return s.Kind != ""
}

// Sample is one successfully appended (name, value) pair.
type Sample struct {
	Name  string
	Value value.Value
}

// Failure records a per-variable error for one collect event.
type Failure struct {
	Name string
	Err  error
}

// CollectResult reports the outcome of one collect event for operator
// visibility.
type CollectResult struct {
	// Iteration is the index assigned to this collect event.
	Iteration int

	// Appended lists the successfully sampled variables, in request order.
	Appended []Sample

	// Failures lists the variables that could not be sampled, with the
	// reason each one failed.
	Failures []Failure
}

// SeriesSummary describes one series in a serialized session summary.
type SeriesSummary struct {
	Name      string     `json:"name" yaml:"name"`
	Kind      value.Kind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Length    int        `json:"length,omitempty" yaml:"length,omitempty"`
	Snapshots int        `json:"snapshots" yaml:"snapshots"`
}

// Summary is the serializable view of a session used by the status
// surface.
type Summary struct {
	header.Header `json:",inline" yaml:",inline"`

	ID        string          `json:"id" yaml:"id"`
	Iteration int             `json:"iteration" yaml:"iteration"`
	Series    []SeriesSummary `json:"series" yaml:"series"`
}
