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
	"reflect"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		name string
		k    Kind
		want string
	}{
		{"int", KindInt, "int"},
		{"float", KindFloat, "float"},
		{"int array", KindIntArray, "int[]"},
		{"float array", KindFloatArray, "float[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.k.String(); got != tt.want {
				t.Errorf("Kind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Kind
		wantOk bool
	}{
		{"valid int", "int", KindInt, true},
		{"valid float array", "float[]", KindFloatArray, true},
		{"invalid", "string", "", false},
		{"empty", "", "", false},
		{"case sensitive", "Int", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotOk := ParseKind(tt.input)
			if got != tt.want || gotOk != tt.wantOk {
				t.Errorf("ParseKind(%q) = (%v, %v), want (%v, %v)", tt.input, got, gotOk, tt.want, tt.wantOk)
			}
		})
	}
}

func TestKind_IsArrayElem(t *testing.T) {
	if KindInt.IsArray() || KindFloat.IsArray() {
		t.Error("scalar kinds should not report as arrays")
	}
	if !KindIntArray.IsArray() || !KindFloatArray.IsArray() {
		t.Error("array kinds should report as arrays")
	}
	if KindIntArray.Elem() != KindInt {
		t.Errorf("KindIntArray.Elem() = %v, want %v", KindIntArray.Elem(), KindInt)
	}
	if KindFloatArray.Elem() != KindFloat {
		t.Errorf("KindFloatArray.Elem() = %v, want %v", KindFloatArray.Elem(), KindFloat)
	}
	if KindFloat.Elem() != KindFloat {
		t.Errorf("KindFloat.Elem() = %v, want %v", KindFloat.Elem(), KindFloat)
	}
}

func TestValue_Len(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want int
	}{
		{"scalar int", Int(7), 1},
		{"scalar float", Float(3.5), 1},
		{"int array", IntArray([]int64{1, 2, 3}), 3},
		{"float array", FloatArray([]float64{0.5}), 1},
		{"empty array", IntArray(nil), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValue_Matches(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same scalar kind", Int(1), Int(99), true},
		{"int vs float", Int(1), Float(1), false},
		{"scalar vs array", Int(1), IntArray([]int64{1}), false},
		{"same array length", FloatArray([]float64{1, 2}), FloatArray([]float64{3, 4}), true},
		{"different array length", FloatArray([]float64{1, 2}), FloatArray([]float64{3}), false},
		{"int array vs float array", IntArray([]int64{1}), FloatArray([]float64{1}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Matches(tt.b); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_Cells(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want []string
	}{
		{"int", Int(-42), []string{"-42"}},
		{"float round trip", Float(0.1), []string{"0.1"}},
		{"float integral", Float(2), []string{"2"}},
		{"large float", Float(1e21), []string{"1e+21"}},
		{"int array", IntArray([]int64{0, 1, 2}), []string{"0", "1", "2"}},
		{"float array", FloatArray([]float64{1.5, -0.25}), []string{"1.5", "-0.25"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Cells(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Cells() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	if got := Int(5).String(); got != "5" {
		t.Errorf("String() = %q, want %q", got, "5")
	}
	if got := FloatArray([]float64{0.5, 1.5}).String(); got != "[0.5 1.5]" {
		t.Errorf("String() = %q, want %q", got, "[0.5 1.5]")
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"scalar", Int(3), "3"},
		{"float", Float(0.25), "0.25"},
		{"array", IntArray([]int64{1, 2}), "[1,2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.v)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValue_ConstructorsCopy(t *testing.T) {
	src := []int64{1, 2, 3}
	v := IntArray(src)
	src[0] = 99
	if v.Ints()[0] != 1 {
		t.Error("IntArray should copy its input slice")
	}

	out := v.Ints()
	out[1] = 99
	if v.Ints()[1] != 2 {
		t.Error("Ints should return a copy")
	}
}
