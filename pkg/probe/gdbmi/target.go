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

package gdbmi

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/NVIDIA/varsnap/pkg/errors"
	"github.com/NVIDIA/varsnap/pkg/probe"
)

// Target adapts a GDB/MI command channel to the probe.Target interface.
// It only ever issues read-only commands (whatis, -data-evaluate-expression);
// execution control stays on the Session.
type Target struct {
	runner Runner

	// styles caches each variable's subscript syntax, learned from its
	// type string. Fortran arrays are addressed 1-based with parens.
	mu     sync.Mutex
	styles map[string]arrayStyle
}

// NewTarget creates a Target over the given Runner.
func NewTarget(r Runner) *Target {
	return &Target{
		runner: r,
		styles: make(map[string]arrayStyle),
	}
}

// ResolveType implements probe.Target using gdb's whatis command.
func (t *Target) ResolveType(ctx context.Context, name string) (probe.TypeInfo, error) {
	res, err := t.runner.Exec(ctx, "-interpreter-exec console "+escape("whatis "+name))
	if err != nil {
		return probe.TypeInfo{}, errors.WrapWithContext(errors.ErrCodeReadFailure,
			"whatis failed", err, map[string]any{"variable": name})
	}
	if res.Class == "error" {
		return probe.TypeInfo{}, miError(res, name)
	}

	typeName := ""
	for _, line := range res.Console {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "type = "); ok {
			typeName = rest
			break
		}
	}
	if typeName == "" {
		return probe.TypeInfo{}, errors.NewWithContext(errors.ErrCodeReadFailure,
			"gdb reported no type", map[string]any{"variable": name})
	}

	info, style := parseTypeName(typeName)
	t.mu.Lock()
	t.styles[name] = style
	t.mu.Unlock()
	return info, nil
}

// ReadScalar implements probe.Target.
func (t *Target) ReadScalar(ctx context.Context, name string) (string, error) {
	return t.evaluate(ctx, name, name)
}

// ReadElement implements probe.Target. The index is 0-based; Fortran
// variables are translated to their native 1-based subscripts.
func (t *Target) ReadElement(ctx context.Context, name string, index int) (string, error) {
	t.mu.Lock()
	style := t.styles[name]
	t.mu.Unlock()

	expr := fmt.Sprintf("%s[%d]", name, index)
	if style == styleParens {
		expr = fmt.Sprintf("%s(%d)", name, index+1)
	}
	return t.evaluate(ctx, name, expr)
}

func (t *Target) evaluate(ctx context.Context, name, expr string) (string, error) {
	res, err := t.runner.Exec(ctx, "-data-evaluate-expression "+escape(expr))
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeReadFailure,
			"evaluation failed", err, map[string]any{"variable": name, "expr": expr})
	}
	if res.Class == "error" {
		return "", miError(res, name)
	}
	val, ok := res.Fields["value"]
	if !ok {
		return "", errors.NewWithContext(errors.ErrCodeReadFailure,
			"gdb returned no value", map[string]any{"variable": name, "expr": expr})
	}
	return val, nil
}

// miError maps an MI ^error record to a structured error code.
func miError(res *Result, name string) error {
	msg := res.ErrorMsg()
	code := errors.ErrCodeReadFailure
	if strings.Contains(msg, "No symbol") {
		code = errors.ErrCodeNameNotFound
	}
	return errors.NewWithContext(code, msg, map[string]any{"variable": name})
}
