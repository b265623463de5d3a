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
	"regexp"
	"strconv"
	"strings"

	"github.com/NVIDIA/varsnap/pkg/probe"
)

// arrayStyle is the element subscript syntax of the debuggee language.
type arrayStyle int

const (
	styleBrackets arrayStyle = iota // C-family: name[i], 0-based
	styleParens                     // Fortran: name(i), 1-based
)

var (
	// C-family array suffix: one or more trailing [N] (or [] for
	// incomplete types).
	cArrayRe = regexp.MustCompile(`^(.*?)\s*((?:\[\d*\])+)$`)
	cDimRe   = regexp.MustCompile(`\[(\d*)\]`)

	// Fortran array suffix: a trailing (N) or (N,M,...), separated from
	// the base type by whitespace so "real(kind=8)" itself is not taken
	// as a dimension.
	fArrayRe = regexp.MustCompile(`^(.*?)\s+\((\d+(?:,\d+)*)\)$`)
)

// parseTypeName converts a type string as printed by gdb ("int",
// "double [3]", "real(kind=8) (3)") into a raw type descriptor plus the
// subscript style needed to address elements.
func parseTypeName(name string) (probe.TypeInfo, arrayStyle) {
	trimmed := strings.TrimSpace(name)
	info := probe.TypeInfo{Name: trimmed}
	style := styleBrackets

	base := trimmed
	if m := cArrayRe.FindStringSubmatch(trimmed); m != nil {
		base = strings.TrimSpace(m[1])
		for _, d := range cDimRe.FindAllStringSubmatch(m[2], -1) {
			if d[1] == "" {
				info.Dims = append(info.Dims, -1)
				continue
			}
			n, _ := strconv.Atoi(d[1])
			info.Dims = append(info.Dims, n)
		}
	} else if m := fArrayRe.FindStringSubmatch(trimmed); m != nil {
		base = strings.TrimSpace(m[1])
		style = styleParens
		for _, d := range strings.Split(m[2], ",") {
			n, _ := strconv.Atoi(d)
			info.Dims = append(info.Dims, n)
		}
	}

	info.Base = baseOf(base)
	return info, style
}

// baseOf classifies a scalar type name into int, float, or other.
// Character types are deliberately "other": gdb renders them as glyphs
// ("65 'A'"), not as plain numbers.
func baseOf(base string) probe.BaseType {
	b := strings.ToLower(strings.TrimSpace(base))

	// Fortran kinds carry a parameter suffix: integer(kind=4), real(kind=8).
	if i := strings.IndexByte(b, '('); i > 0 {
		b = strings.TrimSpace(b[:i])
	}

	switch b {
	case "float", "double", "long double", "real", "double precision":
		return probe.BaseFloat
	}

	// Strip C sign qualifiers before matching integer names.
	b = strings.TrimPrefix(b, "unsigned ")
	b = strings.TrimPrefix(b, "signed ")

	switch b {
	case "int", "integer", "long", "long int", "long long", "long long int",
		"short", "short int", "unsigned", "signed",
		"int8_t", "int16_t", "int32_t", "int64_t",
		"uint8_t", "uint16_t", "uint32_t", "uint64_t",
		"size_t", "ssize_t", "ptrdiff_t":
		return probe.BaseInt
	}
	return probe.BaseOther
}
