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

// Package cli implements the varsnap command-line interface.
//
// # Commands
//
// run - Launch a program under gdb and sample variables at breakpoints:
//
//	varsnap run --exec ./sim --break sim.c:42 --var counter --var res --auto
//
// Starts the debuggee under gdb's MI2 interpreter, sets the requested
// breakpoints, and tracks the named variables. With --auto the debuggee
// runs to completion: every stop appends one snapshot per tracked
// variable, and the collected series are exported as CSV when the
// debuggee exits. Without --auto an interactive prompt offers run,
// continue, collect, export, status, and quit, so samples can be taken
// at chosen stops rather than every one.
//
// Tracked variables can also be declared in a YAML file passed with
// --config, optionally pinning the expected kind and array length:
//
//	vars:
//	  - name: counter
//	  - name: res
//	    kind: float[]
//	    length: 3
//
// # Global Flags
//
//	--output-dir, -o  Directory for exported CSV files (default: .)
//	--output          File path for serialized status output (default: stdout)
//	--layout          CSV layout: split, combined (default: split)
//	--format, -t      Status output format: yaml, json, table (default: yaml)
//	--log-level       Log level: debug, info, warn, error (default: info)
package cli
