// Package probe reads the live state of named variables from a debuggee
// through the host debugger's introspection surface.
//
// The debugger dependency is isolated behind the Target interface: resolve
// a name to a static type descriptor, read a scalar's textual value, read
// one array element's textual value. Concrete bindings (see the gdbmi
// subpackage) are thin adapters; everything above a Target is debugger
// agnostic and fully testable with the probetest fake.
//
// The Reader performs the single classification step from a raw TypeInfo
// into one of the four supported value kinds, reads exactly the declared
// number of elements for 1-D arrays, and maps every failure to a
// structured error code:
//
//   - NAME_NOT_FOUND: the name does not resolve in the current context
//   - UNSUPPORTED_TYPE: not a scalar or 1-D array of int/float
//   - READ_FAILURE: the underlying introspection call failed
//
// Reads are side-effect free: no Target method may write debuggee memory
// or alter execution state.
package probe
