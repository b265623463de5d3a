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

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/NVIDIA/varsnap/pkg/errors"
	"github.com/NVIDIA/varsnap/pkg/value"
)

// Reader translates a variable name into a normalized value through a
// Target. Classification of the debugger's type descriptor into a
// value.Kind happens here, once; nothing downstream inspects types again.
type Reader struct {
	target Target
}

// NewReader creates a Reader over the given Target.
func NewReader(t Target) *Reader {
	return &Reader{target: t}
}

// Classify collapses a raw type descriptor into one of the four supported
// value kinds. Multi-dimensional arrays and non-numeric base types are
// rejected with ErrCodeUnsupportedType.
func Classify(info TypeInfo) (value.Kind, error) {
	if info.Base != BaseInt && info.Base != BaseFloat {
		return "", errors.NewWithContext(errors.ErrCodeUnsupportedType,
			"type is not a built-in integer or float",
			map[string]any{"type": info.Name})
	}
	if info.IsScalar() {
		if info.Base == BaseInt {
			return value.KindInt, nil
		}
		return value.KindFloat, nil
	}
	switch len(info.Dims) {
	case 1:
		if info.Dims[0] < 0 {
			return "", errors.NewWithContext(errors.ErrCodeUnsupportedType,
				"array length is unknown",
				map[string]any{"type": info.Name})
		}
		if info.Base == BaseInt {
			return value.KindIntArray, nil
		}
		return value.KindFloatArray, nil
	default:
		return "", errors.NewWithContext(errors.ErrCodeUnsupportedType,
			"multi-dimensional arrays are unsupported",
			map[string]any{"type": info.Name, "dims": len(info.Dims)})
	}
}

// Read resolves name in the debugger's current execution context and
// returns its normalized value. For 1-D arrays it reads exactly the
// declared number of elements. Read never alters debuggee state.
func (r *Reader) Read(ctx context.Context, name string) (value.Value, error) {
	info, err := r.target.ResolveType(ctx, name)
	if err != nil {
		return value.Value{}, passThrough(err, "failed to resolve type", name)
	}

	kind, err := Classify(info)
	if err != nil {
		return value.Value{}, err
	}

	slog.Debug("reading variable",
		"name", name,
		"kind", kind.String(),
		"type", info.Name)

	if kind.IsArray() {
		return r.readArray(ctx, name, kind, info.Dims[0])
	}
	return r.readScalar(ctx, name, kind)
}

func (r *Reader) readScalar(ctx context.Context, name string, kind value.Kind) (value.Value, error) {
	raw, err := r.target.ReadScalar(ctx, name)
	if err != nil {
		return value.Value{}, passThrough(err, "failed to read scalar", name)
	}
	if kind == value.KindInt {
		i, err := parseInt(raw)
		if err != nil {
			return value.Value{}, parseFailure(name, raw, err)
		}
		return value.Int(i), nil
	}
	f, err := parseFloat(raw)
	if err != nil {
		return value.Value{}, parseFailure(name, raw, err)
	}
	return value.Float(f), nil
}

func (r *Reader) readArray(ctx context.Context, name string, kind value.Kind, length int) (value.Value, error) {
	if kind == value.KindIntArray {
		elems := make([]int64, length)
		for i := 0; i < length; i++ {
			raw, err := r.target.ReadElement(ctx, name, i)
			if err != nil {
				return value.Value{}, passThrough(err, "failed to read array element", name)
			}
			v, err := parseInt(raw)
			if err != nil {
				return value.Value{}, parseFailure(name, raw, err)
			}
			elems[i] = v
		}
		return value.IntArray(elems), nil
	}

	elems := make([]float64, length)
	for i := 0; i < length; i++ {
		raw, err := r.target.ReadElement(ctx, name, i)
		if err != nil {
			return value.Value{}, passThrough(err, "failed to read array element", name)
		}
		v, err := parseFloat(raw)
		if err != nil {
			return value.Value{}, parseFailure(name, raw, err)
		}
		elems[i] = v
	}
	return value.FloatArray(elems), nil
}

func parseInt(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

func parseFloat(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// passThrough preserves structured errors from the Target and wraps plain
// ones as read failures.
func passThrough(err error, msg, name string) error {
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		return err
	}
	return errors.WrapWithContext(errors.ErrCodeReadFailure, msg, err,
		map[string]any{"variable": name})
}

func parseFailure(name, raw string, err error) error {
	return errors.WrapWithContext(errors.ErrCodeReadFailure,
		"failed to parse value reported by debugger", err,
		map[string]any{"variable": name, "raw": raw})
}
