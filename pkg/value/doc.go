// Package value defines the normalized representation of sampled debuggee
// values: a closed tagged variant over scalar integers, scalar floats, and
// one-dimensional fixed-length arrays of either.
//
// Classification into a Kind happens exactly once, at the reader boundary;
// the rest of the system never inspects debugger types again. Formatting
// helpers produce stable, locale-independent renderings ('.' decimal
// separator, no grouping, round-trip float precision) so that exports of
// the same data are byte-identical.
package value
