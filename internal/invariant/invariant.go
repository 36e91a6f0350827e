// Package invariant centralizes the programmer-contract checks shared by
// digraph and the four engines (see spec §7: programmer-contract
// violations fail fast; expected-domain conditions are idempotent no-ops
// handled by the caller, never routed through here).
//
// This mirrors the assert!/debug_assert! split in the original Rust
// source: Assert always checks (cheap, O(1) boolean conditions guarding
// vertex/edge existence and label equality), there is no separate
// "debug-only" tier in the Go port since the cost of these checks is
// negligible next to the O(sqrt(m))+ work they guard.
package invariant

import "fmt"

// Assert panics with a formatted message if cond is false. Use only for
// programmer-contract violations (spec §7) — never for expected-domain
// conditions, which must be handled as no-ops by the caller instead.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
