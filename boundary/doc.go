// Package boundary exposes the format dispatcher to callers that cannot hold
// Go values: C programs through cmd/librakaly and WebAssembly guests through
// wasmhost.
//
// Every value handed out is parked in a resource.Table and referenced by a
// Handle. Handle 0 means null.
//
// # Boundary Results
//
// OpenFile, FileMelt and MetaMelt return a result handle holding either a
// value or an error. Exactly one of the matching extract calls yields a
// non-zero handle:
//
//	res := b.OpenFile(pdsmelt.EU4, data)
//	if e := b.FileError(res); e != 0 {
//		// report the error, then b.ReleaseError(e)
//	}
//	file := b.FileValue(res)
//	b.ReleaseResult(res)
//
// A result is Unconsumed until one of its branches is extracted, then
// Consumed. Extracting the branch that is not present is a no-op, so a caller
// can probe for an error without losing a pending value. Releasing an
// Unconsumed result drops its payload.
//
// # Two-phase Writes
//
// Melt output and error text are retrieved by asking for the length first and
// then passing a buffer at least that long:
//
//	n := b.MeltLength(melt)
//	buf := make([]byte, n)
//	b.MeltWrite(melt, buf) // n, or 0 when buf is too short
//
// ErrorWrite follows the same shape but reports a short buffer as -1.
//
// # Containment
//
// Every entry point that does real work recovers panics and turns them into
// errors of kind panic. Nothing a save contains can unwind across the boundary.
//
// # Misuse
//
// Handles are checked for kind, so a handle of the wrong type is refused.
// Released handle numbers are reused; releasing a handle twice may release
// an unrelated value and is the caller's error.
package boundary
