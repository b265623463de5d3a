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

package probe_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/varsnap/pkg/errors"
	"github.com/NVIDIA/varsnap/pkg/probe"
	"github.com/NVIDIA/varsnap/pkg/probe/probetest"
	"github.com/NVIDIA/varsnap/pkg/value"
)

func TestTypeInfo_IsScalar(t *testing.T) {
	assert.True(t, probe.TypeInfo{Name: "int", Base: probe.BaseInt}.IsScalar())
	assert.False(t, probe.TypeInfo{Name: "int [3]", Base: probe.BaseInt, Dims: []int{3}}.IsScalar())
	assert.False(t, probe.TypeInfo{Name: "int [3][2]", Base: probe.BaseInt, Dims: []int{3, 2}}.IsScalar())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		info     probe.TypeInfo
		want     value.Kind
		wantCode errors.ErrorCode
	}{
		{
			name: "scalar int",
			info: probe.TypeInfo{Name: "int", Base: probe.BaseInt},
			want: value.KindInt,
		},
		{
			name: "scalar float",
			info: probe.TypeInfo{Name: "real(kind=8)", Base: probe.BaseFloat},
			want: value.KindFloat,
		},
		{
			name: "int array",
			info: probe.TypeInfo{Name: "int [4]", Base: probe.BaseInt, Dims: []int{4}},
			want: value.KindIntArray,
		},
		{
			name: "float array",
			info: probe.TypeInfo{Name: "double [2]", Base: probe.BaseFloat, Dims: []int{2}},
			want: value.KindFloatArray,
		},
		{
			name:     "multi-dimensional array",
			info:     probe.TypeInfo{Name: "int [3][2]", Base: probe.BaseInt, Dims: []int{3, 2}},
			wantCode: errors.ErrCodeUnsupportedType,
		},
		{
			name:     "non-numeric base",
			info:     probe.TypeInfo{Name: "char *", Base: probe.BaseOther},
			wantCode: errors.ErrCodeUnsupportedType,
		},
		{
			name:     "unknown array length",
			info:     probe.TypeInfo{Name: "int []", Base: probe.BaseInt, Dims: []int{-1}},
			wantCode: errors.ErrCodeUnsupportedType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := probe.Classify(tt.info)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReader_Read_Scalar(t *testing.T) {
	target := probetest.New()
	target.SetInt("i", 42)
	target.SetFloat("x", 0.125)

	r := probe.NewReader(target)
	ctx := context.Background()

	got, err := r.Read(ctx, "i")
	require.NoError(t, err)
	assert.Equal(t, value.KindInt, got.Kind())
	assert.Equal(t, int64(42), got.IntVal())

	got, err = r.Read(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, value.KindFloat, got.Kind())
	assert.Equal(t, 0.125, got.FloatVal())
}

func TestReader_Read_Array(t *testing.T) {
	target := probetest.New()
	target.SetFloats("res", []float64{0.0, 0.1, 0.2})
	target.SetInts("counts", []int64{7, 8})

	r := probe.NewReader(target)
	ctx := context.Background()

	got, err := r.Read(ctx, "res")
	require.NoError(t, err)
	assert.Equal(t, value.KindFloatArray, got.Kind())
	assert.Equal(t, []float64{0.0, 0.1, 0.2}, got.Floats())
	assert.Equal(t, 3, got.Len())

	got, err = r.Read(ctx, "counts")
	require.NoError(t, err)
	assert.Equal(t, value.KindIntArray, got.Kind())
	assert.Equal(t, []int64{7, 8}, got.Ints())
}

func TestReader_Read_NameNotFound(t *testing.T) {
	r := probe.NewReader(probetest.New())
	_, err := r.Read(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNameNotFound, errors.CodeOf(err))
}

func TestReader_Read_UnsupportedType(t *testing.T) {
	target := probetest.New()
	target.Set("m", probetest.Var{
		Info: probe.TypeInfo{Name: "real(kind=8) (3,2)", Base: probe.BaseFloat, Dims: []int{3, 2}},
	})

	r := probe.NewReader(target)
	_, err := r.Read(context.Background(), "m")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnsupportedType, errors.CodeOf(err))
}

func TestReader_Read_ReadFailure(t *testing.T) {
	target := probetest.New()
	target.SetInt("i", 1)
	target.FailWith("i", errors.New(errors.ErrCodeReadFailure, "memory not accessible"))

	r := probe.NewReader(target)
	_, err := r.Read(context.Background(), "i")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeReadFailure, errors.CodeOf(err))
}

func TestReader_Read_UnparsableValue(t *testing.T) {
	target := probetest.New()
	target.Set("i", probetest.Var{
		Info:   probe.TypeInfo{Name: "int", Base: probe.BaseInt},
		Scalar: "<optimized out>",
	})

	r := probe.NewReader(target)
	_, err := r.Read(context.Background(), "i")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeReadFailure, errors.CodeOf(err))
}
