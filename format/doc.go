// Package format routes a save to its title's collaborator and normalizes
// every melt into a MeltResult.
//
// The melt policy is the same for every title and branches only on encoding:
//
//	Text       -> Verbatim, the caller keeps the original bytes
//	TextZip    -> Text, a header declaring text plus the inflated body
//	Binary     -> Binary, the melted body and any unresolved token ids
//	BinaryZip  -> Binary
//
// Binary content is melted with unquoted strings kept verbatim and unresolved
// tokens stringified; a pair whose key cannot be resolved is dropped.
//
// Open, Melt and Meta recover panics raised while they run and report them as
// errors of kind panic.
package format
