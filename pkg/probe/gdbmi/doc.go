// Package gdbmi binds the probe capability surface to gdb's MI2 machine
// interface.
//
// The package has two halves. Session owns one gdb process: it launches
// the debuggee, pumps and parses MI output, correlates result records
// with commands, inserts breakpoints, and resumes execution until the
// next stop event. Target sits on the same command channel and implements
// probe.Target with strictly read-only commands: whatis for type
// resolution and -data-evaluate-expression for values.
//
// Both C-family and Fortran debuggees are supported. Type strings such as
// "double [3]" and "real(kind=8) (3)" are parsed into the same raw
// descriptor; element subscripts are emitted 0-based with brackets or
// 1-based with parens to match the debuggee language.
package gdbmi
