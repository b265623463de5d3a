// Package session accumulates per-variable time series of debuggee
// snapshots across operator-triggered collect events.
//
// One Session exists per debugging run. Each collect event advances a
// single global iteration counter shared by all tracked variables, reads
// every requested variable through a ValueReader, and appends one
// snapshot per successful read. A variable's kind (and array length) is
// fixed at its first observation; later disagreement is rejected per
// variable without touching the existing series. Sampling failures are
// per-variable and non-fatal: the offending variable simply has no
// snapshot at that iteration, leaving a gap the exporter renders as an
// empty cell.
package session
