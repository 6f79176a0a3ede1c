// Package errors provides structured error types for the melter.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Errors raised by a save collaborator additionally carry the Game they belong to,
// which is the tag of the error taxonomy: one family per supported title plus the
// internal "panic" kind for faults trapped at an entry point.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMelt, errors.KindTruncated).
//		Game("eu4").
//		At(1024).
//		Detail("i32 payload needs 4 bytes, have %d", 2).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Truncated(errors.PhaseMelt, offset, 4, remaining)
//	err := errors.UnknownToken(errors.PhaseMelt, 0x2c23, offset)
//
// Entry points trap panics with Recover:
//
//	func Melt() (res *Result, err error) {
//		defer errors.Recover(errors.PhaseMelt, "eu4", &err)
//		...
//	}
//
// All errors implement the standard error interface and support errors.Is/As.
// An Error holds only strings and its cause chain, never borrowed input bytes,
// so it can outlive the operation that produced it.
package errors
