// Package reconciler converges a single metric alarm on a declared descriptor.
//
// The flow is lookup, branch, write: describe the alarm by name, then either
// put the full definition (state present) or delete it (state absent). A put
// replaces the stored alarm wholesale, so running the same present descriptor
// twice reports a change twice; the provider offers no cheap way to tell an
// effective no-op from a real update and this tool does not pretend otherwise.
//
// There is no retry and no transaction spanning the lookup and the write.
// The first provider error ends the run.
package reconciler
