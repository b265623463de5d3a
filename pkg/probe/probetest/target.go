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

// Package probetest provides a scriptable in-memory probe.Target for
// testing readers, sessions, and command glue without a live debugger.
package probetest

import (
	"context"
	"sync"

	"github.com/NVIDIA/varsnap/pkg/errors"
	"github.com/NVIDIA/varsnap/pkg/probe"
	"github.com/NVIDIA/varsnap/pkg/value"
)

// Var is one scripted variable: its type descriptor and current textual
// value(s).
type Var struct {
	Info   probe.TypeInfo
	Scalar string
	Elems  []string
}

// Target is a fake probe.Target backed by a mutable variable table.
// Tests mutate the table between collect events to simulate the debuggee
// advancing.
type Target struct {
	mu   sync.Mutex
	vars map[string]Var
	errs map[string]error
}

// New creates an empty fake target.
func New() *Target {
	return &Target{
		vars: make(map[string]Var),
		errs: make(map[string]error),
	}
}

// Set installs or replaces a scripted variable.
func (t *Target) Set(name string, v Var) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vars[name] = v
}

// SetInt scripts a scalar integer variable.
func (t *Target) SetInt(name string, v int64) {
	t.Set(name, Var{
		Info:   probe.TypeInfo{Name: "int", Base: probe.BaseInt},
		Scalar: value.FormatInt(v),
	})
}

// SetFloat scripts a scalar float variable.
func (t *Target) SetFloat(name string, v float64) {
	t.Set(name, Var{
		Info:   probe.TypeInfo{Name: "double", Base: probe.BaseFloat},
		Scalar: value.FormatFloat(v),
	})
}

// SetInts scripts a 1-D integer array variable.
func (t *Target) SetInts(name string, vs []int64) {
	elems := make([]string, len(vs))
	for i, v := range vs {
		elems[i] = value.FormatInt(v)
	}
	t.Set(name, Var{
		Info:  probe.TypeInfo{Name: "int []", Base: probe.BaseInt, Dims: []int{len(vs)}},
		Elems: elems,
	})
}

// SetFloats scripts a 1-D float array variable.
func (t *Target) SetFloats(name string, vs []float64) {
	elems := make([]string, len(vs))
	for i, v := range vs {
		elems[i] = value.FormatFloat(v)
	}
	t.Set(name, Var{
		Info:  probe.TypeInfo{Name: "double []", Base: probe.BaseFloat, Dims: []int{len(vs)}},
		Elems: elems,
	})
}

// FailWith forces every operation on name to return err until cleared.
func (t *Target) FailWith(name string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errs[name] = err
}

// ClearFailure removes a forced error for name.
func (t *Target) ClearFailure(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.errs, name)
}

// Remove deletes a scripted variable, simulating it going out of scope.
func (t *Target) Remove(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.vars, name)
}

func (t *Target) lookup(name string) (Var, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err, ok := t.errs[name]; ok {
		return Var{}, err
	}
	v, ok := t.vars[name]
	if !ok {
		return Var{}, errors.NewWithContext(errors.ErrCodeNameNotFound,
			"no such variable in current context",
			map[string]any{"variable": name})
	}
	return v, nil
}

// ResolveType implements probe.Target.
func (t *Target) ResolveType(_ context.Context, name string) (probe.TypeInfo, error) {
	v, err := t.lookup(name)
	if err != nil {
		return probe.TypeInfo{}, err
	}
	return v.Info, nil
}

// ReadScalar implements probe.Target.
func (t *Target) ReadScalar(_ context.Context, name string) (string, error) {
	v, err := t.lookup(name)
	if err != nil {
		return "", err
	}
	return v.Scalar, nil
}

// ReadElement implements probe.Target.
func (t *Target) ReadElement(_ context.Context, name string, index int) (string, error) {
	v, err := t.lookup(name)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(v.Elems) {
		return "", errors.NewWithContext(errors.ErrCodeReadFailure,
			"array index out of range",
			map[string]any{"variable": name, "index": index})
	}
	return v.Elems[index], nil
}
