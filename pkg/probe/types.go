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

package probe

import "context"

// BaseType is the element classification reported by a Target before the
// reader collapses it into a value.Kind.
type BaseType string

const (
	// BaseInt covers all built-in integer types regardless of width or
	// signedness.
	BaseInt BaseType = "int"
	// BaseFloat covers all built-in floating-point types.
	BaseFloat BaseType = "float"
	// BaseOther covers everything else (strings, pointers, aggregates).
	BaseOther BaseType = "other"
)

// TypeInfo is the raw static type descriptor a Target reports for a
// resolved variable.
type TypeInfo struct {
	// Name is the native type name as reported by the debugger,
	// e.g. "int", "double [3]", "real(kind=8)". Informational only.
	Name string

	// Base is the element classification.
	Base BaseType

	// Dims holds the array dimensions, outermost first. Empty for
	// scalars. More than one dimension is unsupported downstream.
	Dims []int
}

// IsScalar reports whether the descriptor denotes a non-array type.
func (t TypeInfo) IsScalar() bool {
	return len(t.Dims) == 0
}

// Target is the narrow introspection surface of the host debugger: resolve
// a name to its static type, and read current values as text. All three
// operations must be free of side effects on the debuggee; execution
// control never goes through a Target.
//
// Every concrete debugger binding is an adapter behind this interface.
type Target interface {
	// ResolveType returns the static type descriptor for a variable
	// visible in the current execution context.
	ResolveType(ctx context.Context, name string) (TypeInfo, error)

	// ReadScalar returns the textual value of a scalar variable.
	ReadScalar(ctx context.Context, name string) (string, error)

	// ReadElement returns the textual value of element index (0-based)
	// of a one-dimensional array variable. Adapters own any translation
	// to the debuggee language's native indexing.
	ReadElement(ctx context.Context, name string, index int) (string, error)
}
