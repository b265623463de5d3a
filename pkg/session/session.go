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
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/varsnap/pkg/errors"
	"github.com/NVIDIA/varsnap/pkg/header"
	"github.com/NVIDIA/varsnap/pkg/value"
)

// Session owns all series collected during one debugging run plus the
// global iteration counter. It is created empty when the tool attaches,
// grows by one iteration per collect event, and is discarded when the
// debugger session ends; exported files are its only persistent output.
//
// All methods are safe for use from a multi-threaded host; a single lock
// preserves the single-writer invariant between Collect and the read-only
// accessors.
type Session struct {
	// ID uniquely identifies this session in logs and summaries.
	ID string

	// Created is the session creation time.
	Created time.Time

	reader ValueReader

	mu        sync.Mutex
	iteration int
	series    map[string]*Series
	order     []string
}

// New creates an empty session that samples through the given reader.
func New(reader ValueReader) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Created: time.Now().UTC(),
		reader:  reader,
		series:  make(map[string]*Series),
	}
}

// Track registers a variable name, creating an empty series for it if
// absent. Idempotent. Tracking also happens implicitly on the first
// successful read of a new name during Collect.
func (s *Session) Track(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track(name)
}

// TrackDeclared registers a variable with a declared kind (and, for array
// kinds, length). The first observation is verified against the
// declaration; a disagreement is a kind mismatch at that iteration.
func (s *Session) TrackDeclared(name string, kind value.Kind, length int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ser := s.track(name)
	if ser.established() {
		return
	}
	ser.Kind = kind
	if !kind.IsArray() {
		length = 1
	}
	ser.Length = length
}

// track creates the series for name if needed. Caller holds the lock.
func (s *Session) track(name string) *Series {
	if ser, ok := s.series[name]; ok {
		return ser
	}
	ser := &Series{Name: name}
	s.series[name] = ser
	s.order = append(s.order, name)
	trackedSeries.Set(float64(len(s.order)))
	return ser
}

// TrackedNames returns all tracked variable names in registration order.
func (s *Session) TrackedNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Iteration returns the index assigned to the most recent collect event,
// or 0 if none has happened yet.
func (s *Session) Iteration() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.iteration
}

// Collect runs one sampling event: it advances the global iteration
// counter by exactly 1 and samples every requested name. A failure on one
// name never aborts the others; failed names simply have no snapshot at
// this iteration. Names absent from the set leave a gap in their series.
func (s *Session) Collect(ctx context.Context, names []string) *CollectResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.iteration++
	res := &CollectResult{Iteration: s.iteration}

	for _, name := range names {
		v, err := s.reader.Read(ctx, name)
		if err != nil {
			s.recordFailure(res, name, err)
			continue
		}

		ser := s.track(name)
		if ser.established() && !s.matches(ser, v) {
			s.recordFailure(res, name, errors.NewWithContext(errors.ErrCodeKindMismatch,
				"value disagrees with established series kind",
				map[string]any{
					"variable":        name,
					"series_kind":     ser.Kind.String(),
					"series_length":   ser.Length,
					"observed_kind":   v.Kind().String(),
					"observed_length": v.Len(),
				}))
			continue
		}

		if !ser.established() {
			ser.Kind = v.Kind()
			ser.Length = v.Len()
		}
		ser.Snapshots = append(ser.Snapshots, Snapshot{Iteration: s.iteration, Value: v})
		res.Appended = append(res.Appended, Sample{Name: name, Value: v})
		samplesTotal.Inc()
	}

	status := "success"
	if len(res.Failures) > 0 {
		status = "partial"
		if len(res.Appended) == 0 {
			status = "error"
		}
	}
	collectEventsTotal.WithLabelValues(status).Inc()

	slog.Debug("collect complete",
		"session", s.ID,
		"iteration", res.Iteration,
		"appended", len(res.Appended),
		"failed", len(res.Failures))
	return res
}

func (s *Session) matches(ser *Series, v value.Value) bool {
	if ser.Kind != v.Kind() {
		return false
	}
	if ser.Kind.IsArray() {
		return ser.Length == v.Len()
	}
	return true
}

func (s *Session) recordFailure(res *CollectResult, name string, err error) {
	res.Failures = append(res.Failures, Failure{Name: name, Err: err})
	readFailuresTotal.WithLabelValues(string(errors.CodeOf(err))).Inc()
	slog.Warn("variable not sampled",
		"session", s.ID,
		"iteration", res.Iteration,
		"variable", name,
		"error", err)
}

// Names returns the tracked names in registration order. Alias of
// TrackedNames kept for the exporter's readability.
func (s *Session) Names() []string {
	return s.TrackedNames()
}

// Series returns a copy of the series for name. The copy shares no
// mutable state with the session; values themselves are immutable.
func (s *Session) Series(name string) (Series, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ser, ok := s.series[name]
	if !ok {
		return Series{}, false
	}
	out := *ser
	out.Snapshots = make([]Snapshot, len(ser.Snapshots))
	copy(out.Snapshots, ser.Snapshots)
	return out, true
}

// Summary returns a serializable view of the session for the status
// surface. It does not mutate session state.
func (s *Session) Summary(version string) *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := &Summary{
		ID:        s.ID,
		Iteration: s.iteration,
		Series:    make([]SeriesSummary, 0, len(s.order)),
	}
	sum.Init(header.KindSession, FullAPIVersion, version)
	sum.Metadata["created"] = s.Created.Format(time.RFC3339)

	for _, name := range s.order {
		ser := s.series[name]
		sum.Series = append(sum.Series, SeriesSummary{
			Name:      ser.Name,
			Kind:      ser.Kind,
			Length:    ser.Length,
			Snapshots: len(ser.Snapshots),
		})
	}
	return sum
}
