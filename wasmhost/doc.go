// Package wasmhost exports the boundary protocol to WebAssembly guests as a
// wazero host module named "pdsmelt".
//
// Every parameter and result is an i32. Handles are u32 with 0 meaning null;
// booleans are 0 or 1.
//
//	open_eu4 open_ck3 open_imperator open_hoi4 open_vic3 open_eu5
//	                    (ptr, len) -> result
//	file_error          (result) -> error
//	file_value          (result) -> file
//	file_is_binary      (file) -> bool
//	file_meta           (file) -> meta
//	file_melt           (file) -> result
//	meta_melt           (meta) -> result
//	melt_error          (result) -> error
//	melt_value          (result) -> melt
//	melt_length         (melt) -> len, -1 if it exceeds a 32-bit guest
//	melt_is_verbatim    (melt) -> bool
//	melt_unknown_tokens (melt) -> bool
//	melt_write          (melt, ptr, len) -> written, 0 if len is short
//	error_length        (error) -> len
//	error_write         (error, ptr, len) -> written, -1 if len is short
//	free_file free_meta free_result free_melt free_error
//	                    (handle) -> bool
//
// Input bytes are copied out of guest memory on open since linear memory can
// move when the guest grows it. Output is written straight into guest memory.
package wasmhost
