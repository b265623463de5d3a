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

package value

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the closed classification of a sampled value. Every value read
// from a debuggee collapses to exactly one of these four kinds; anything
// else is rejected at the reader boundary before it reaches a series.
type Kind string

const (
	KindInt        Kind = "int"
	KindFloat      Kind = "float"
	KindIntArray   Kind = "int[]"
	KindFloatArray Kind = "float[]"
)

// Kinds is the list of all supported value kinds.
var Kinds = []Kind{
	KindInt,
	KindFloat,
	KindIntArray,
	KindFloatArray,
}

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsArray reports whether the kind denotes a one-dimensional array.
func (k Kind) IsArray() bool {
	return k == KindIntArray || k == KindFloatArray
}

// Elem returns the element kind for array kinds, or the kind itself for
// scalar kinds.
func (k Kind) Elem() Kind {
	switch k {
	case KindIntArray:
		return KindInt
	case KindFloatArray:
		return KindFloat
	default:
		return k
	}
}

// ParseKind parses a string into a Kind.
// Returns the Kind and true if parsing succeeds, or empty Kind and false
// if the string is invalid.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Value is a normalized sample: a tagged variant holding exactly one of a
// scalar integer, a scalar float, or a fixed-length 1-D sequence of either.
// The zero Value is invalid; use the constructors.
type Value struct {
	kind   Kind
	i      int64
	f      float64
	ints   []int64
	floats []float64
}

// Int creates a scalar integer value.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float creates a scalar floating-point value.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// IntArray creates a one-dimensional integer array value.
// The input slice is copied.
func IntArray(v []int64) Value {
	vv := make([]int64, len(v))
	copy(vv, v)
	return Value{kind: KindIntArray, ints: vv}
}

// FloatArray creates a one-dimensional floating-point array value.
// The input slice is copied.
func FloatArray(v []float64) Value {
	vv := make([]float64, len(v))
	copy(vv, v)
	return Value{kind: KindFloatArray, floats: vv}
}

// Kind returns the value's classification.
func (v Value) Kind() Kind {
	return v.kind
}

// Len returns the element count: 1 for scalars, the fixed array length
// for arrays.
func (v Value) Len() int {
	switch v.kind {
	case KindIntArray:
		return len(v.ints)
	case KindFloatArray:
		return len(v.floats)
	default:
		return 1
	}
}

// IntVal returns the scalar integer. Valid only for KindInt.
func (v Value) IntVal() int64 {
	return v.i
}

// FloatVal returns the scalar float. Valid only for KindFloat.
func (v Value) FloatVal() float64 {
	return v.f
}

// Ints returns a copy of the integer elements. Valid only for KindIntArray.
func (v Value) Ints() []int64 {
	out := make([]int64, len(v.ints))
	copy(out, v.ints)
	return out
}

// Floats returns a copy of the float elements. Valid only for KindFloatArray.
func (v Value) Floats() []float64 {
	out := make([]float64, len(v.floats))
	copy(out, v.floats)
	return out
}

// Matches reports whether other has the same kind and, for arrays, the
// same fixed length as v.
func (v Value) Matches(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind.IsArray() {
		return v.Len() == other.Len()
	}
	return true
}

// FormatInt renders an integer with stable, locale-independent formatting.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatFloat renders a float with round-trip precision, '.' as the
// decimal separator, and no grouping.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Cells flattens the value into CSV cells: one cell for scalars, one per
// element for arrays, in element order.
func (v Value) Cells() []string {
	switch v.kind {
	case KindInt:
		return []string{FormatInt(v.i)}
	case KindFloat:
		return []string{FormatFloat(v.f)}
	case KindIntArray:
		cells := make([]string, len(v.ints))
		for i, e := range v.ints {
			cells[i] = FormatInt(e)
		}
		return cells
	case KindFloatArray:
		cells := make([]string, len(v.floats))
		for i, e := range v.floats {
			cells[i] = FormatFloat(e)
		}
		return cells
	default:
		return nil
	}
}

// String returns a human-readable rendering of the value.
func (v Value) String() string {
	if v.kind.IsArray() {
		return "[" + strings.Join(v.Cells(), " ") + "]"
	}
	cells := v.Cells()
	if len(cells) == 0 {
		return "<invalid>"
	}
	return cells[0]
}

// any returns the native Go representation of the value for marshaling.
func (v Value) any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindIntArray:
		return v.ints
	case KindFloatArray:
		return v.floats
	default:
		return nil
	}
}

// MarshalJSON makes the JSON value be the underlying scalar or sequence
// (not an object wrapper).
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == "" {
		return nil, fmt.Errorf("cannot marshal invalid value")
	}
	return json.Marshal(v.any())
}

// MarshalYAML makes the YAML value be the underlying scalar or sequence.
func (v Value) MarshalYAML() (any, error) {
	if v.kind == "" {
		return nil, fmt.Errorf("cannot marshal invalid value")
	}
	return v.any(), nil
}
