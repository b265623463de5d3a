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
	"fmt"
	"strings"
)

// recordKind identifies the shape of one GDB/MI output line.
type recordKind int

const (
	recordResult recordKind = iota
	recordAsync
	recordConsole
	recordLog
	recordTargetOut
	recordNotify
	recordPrompt
	recordUnknown
)

// record is one parsed GDB/MI output line.
type record struct {
	kind recordKind

	// token is the numeric command token on result records, empty
	// otherwise.
	token string

	// class is the result class ("done", "error", "running") or the
	// async class ("stopped").
	class string

	// fields holds the top-level key/value pairs of result and async
	// records. Tuple and list values are kept as their raw text.
	fields map[string]string

	// text is the unescaped payload of stream records.
	text string
}

// Result is the outcome of one MI command: the result record plus any
// console stream output emitted before it.
type Result struct {
	Class   string
	Fields  map[string]string
	Console []string
}

// ErrorMsg returns the msg field of an error result, or an empty string.
func (r *Result) ErrorMsg() string {
	if r == nil {
		return ""
	}
	return r.Fields["msg"]
}

// parseLine parses one line of GDB/MI output.
func parseLine(line string) record {
	line = strings.TrimSuffix(line, "\r")
	if line == "(gdb)" || line == "(gdb) " {
		return record{kind: recordPrompt}
	}
	if line == "" {
		return record{kind: recordUnknown}
	}

	// Leading numeric token belongs to a result record.
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	token, rest := line[:i], line[i:]
	if rest == "" {
		return record{kind: recordUnknown, text: line}
	}

	switch rest[0] {
	case '^':
		class, fields := parseClassFields(rest[1:])
		return record{kind: recordResult, token: token, class: class, fields: fields}
	case '*':
		class, fields := parseClassFields(rest[1:])
		return record{kind: recordAsync, class: class, fields: fields}
	case '=':
		class, fields := parseClassFields(rest[1:])
		return record{kind: recordNotify, class: class, fields: fields}
	case '~':
		return record{kind: recordConsole, text: unquote(rest[1:])}
	case '&':
		return record{kind: recordLog, text: unquote(rest[1:])}
	case '@':
		return record{kind: recordTargetOut, text: unquote(rest[1:])}
	default:
		return record{kind: recordUnknown, text: line}
	}
}

// parseClassFields splits `class,key="v",key={...}` into the class name
// and its top-level fields.
func parseClassFields(s string) (string, map[string]string) {
	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return s, nil
	}
	return s[:comma], parseFields(s[comma+1:])
}

// parseFields parses a comma-separated sequence of key=value pairs.
// C-string values are unescaped; tuple ({...}) and list ([...]) values are
// preserved as raw text for callers that need them.
func parseFields(s string) map[string]string {
	fields := make(map[string]string)
	for len(s) > 0 {
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			break
		}
		key := s[:eq]
		rest := s[eq+1:]

		val, consumed, ok := parseValue(rest)
		if !ok {
			break
		}
		fields[key] = val

		s = rest[consumed:]
		s = strings.TrimPrefix(s, ",")
	}
	return fields
}

// parseValue consumes one MI value (c-string, tuple, or list) from the
// head of s. It returns the parsed value, the number of input bytes
// consumed, and whether parsing succeeded.
func parseValue(s string) (string, int, bool) {
	if s == "" {
		return "", 0, false
	}
	switch s[0] {
	case '"':
		end := cstringEnd(s)
		if end < 0 {
			return "", 0, false
		}
		return unquote(s[:end+1]), end + 1, true
	case '{', '[':
		end := balancedEnd(s)
		if end < 0 {
			return "", 0, false
		}
		return s[:end+1], end + 1, true
	default:
		// Bare value (not produced by current gdb, but tolerated).
		end := strings.IndexByte(s, ',')
		if end < 0 {
			return s, len(s), true
		}
		return s[:end], end, true
	}
}

// cstringEnd returns the index of the closing quote of a c-string that
// starts at s[0], or -1.
func cstringEnd(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// balancedEnd returns the index of the bracket closing the tuple or list
// that starts at s[0], or -1. Quoted sections are skipped.
func balancedEnd(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i
			}
		case '"':
			end := cstringEnd(s[i:])
			if end < 0 {
				return -1
			}
			i += end
		}
	}
	return -1
}

// unquote removes surrounding quotes and resolves MI c-string escapes.
func unquote(s string) string {
	s = strings.TrimPrefix(s, "\"")
	s = strings.TrimSuffix(s, "\"")
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// escape renders s as an MI c-string argument.
func escape(s string) string {
	return fmt.Sprintf("%q", s)
}
