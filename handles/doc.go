// Package handles tracks the native instances that back host objects.
//
// A Handle owns exactly one native instance and moves through
// Uninitialized -> Live -> Destroyed. The transition to Destroyed runs the
// native destructor exactly once, whether it is triggered by the host wrapper
// being reclaimed or by the owning table being closed. Any access after that
// fails with errs.ErrUseAfterFree.
package handles
