// Package export flattens collected series into row-oriented CSV tables
// with stable column semantics.
//
// Two layouts are supported: one file per variable (split), or one shared
// file with an iteration column plus one column block per variable
// (combined). In both, the header row lists each column exactly once,
// data rows ascend by iteration index, numbers use '.' as the decimal
// separator with no grouping, and an iteration a variable was not sampled
// at renders as an empty cell rather than a zero. Writes are fully
// buffered per file; a failing destination affects only that file.
package export
