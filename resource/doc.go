// Package resource provides the opaque handle table behind the foreign boundaries.
//
// Callers outside the Go runtime may not hold Go pointers, so every value handed
// across a boundary is parked in a Table and referenced by a small integer
// Handle instead. Handle 0 is reserved and always invalid, which lets C and
// WebAssembly callers use 0 as "null".
//
// # Handle Table
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle
//	handle := table.Insert(KindFile, file)
//
//	// Kind-checked retrieval
//	file, ok := resource.GetAs[*format.File](table, handle, KindFile)
//
//	// Release transfers the value back and invalidates the handle
//	file, err := table.Release(handle, KindFile)
//
// # Kinds
//
// Each entry records the Kind it was inserted with. Kind-checked operations
// refuse a handle of another kind, so a stale or mistyped handle from a caller
// cannot be reinterpreted as a different value.
//
// # Borrows
//
// A value can be borrowed by a dependent value (for example a metadata view
// that reads from its save file). An entry with outstanding borrows cannot be
// released until every borrow is returned.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(observer)
//
// # Memory Management
//
// Entries are not garbage collected. The caller must release every handle it
// received; Close drops whatever is left.
package resource
