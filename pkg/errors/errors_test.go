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

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestStructuredError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StructuredError
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeNameNotFound, "no such variable"),
			want: "[NAME_NOT_FOUND] no such variable",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeReadFailure, "read failed", stderrors.New("boom")),
			want: "[READ_FAILURE] read failed: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStructuredError_Unwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(ErrCodeDestinationUnwritable, "write failed", cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"structured", New(ErrCodeKindMismatch, "kind changed"), ErrCodeKindMismatch},
		{"wrapped in fmt", fmt.Errorf("outer: %w", New(ErrCodeUnsupportedType, "bad type")), ErrCodeUnsupportedType},
		{"plain error", stderrors.New("plain"), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrCodeNameNotFound, "missing")
	if !IsCode(err, ErrCodeNameNotFound) {
		t.Error("IsCode should match the error's code")
	}
	if IsCode(err, ErrCodeReadFailure) {
		t.Error("IsCode should not match a different code")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Error("IsCode(nil) should be false")
	}
}

func TestNewWithContext(t *testing.T) {
	err := NewWithContext(ErrCodeReadFailure, "read failed", map[string]any{"variable": "res"})
	if err.Context["variable"] != "res" {
		t.Errorf("Context[variable] = %v, want res", err.Context["variable"])
	}
}
