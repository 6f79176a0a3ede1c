// Command librakaly builds the C library:
//
//	go build -buildmode=c-shared -o librakaly.so ./cmd/librakaly
//
// Every object crosses the boundary as a uint32 handle; 0 is never a live
// handle. Save bytes passed to an open function are borrowed, not copied,
// and must outlive the file handle.
package main

/*
#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/pdsmelt"
	"github.com/wippyai/pdsmelt/boundary"
	"github.com/wippyai/pdsmelt/errors"
	"github.com/wippyai/pdsmelt/resource"
)

// The C ABI has no context argument, so one Boundary serves the process.
var lib = boundary.New()

func main() {}

func handle(h C.uint32_t) resource.Handle {
	return resource.Handle(h)
}

func out(h resource.Handle) C.uint32_t {
	return C.uint32_t(h)
}

// span views C memory as a byte slice without copying.
func span(ptr *C.char, n C.size_t) ([]byte, bool) {
	if n == 0 {
		return []byte{}, true
	}
	if ptr == nil {
		return nil, false
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), int(n)), true
}

func open(game pdsmelt.Game, ptr *C.char, n C.size_t) C.uint32_t {
	data, ok := span(ptr, n)
	if !ok {
		return out(lib.OpenFailed(errors.New(errors.PhaseHost, errors.KindInvalidInput).
			Game(game.String()).
			Detail("null data pointer with length %d", uint64(n)).
			Build()))
	}
	return out(lib.OpenFile(game, data))
}

//export rakaly_eu4_file
func rakaly_eu4_file(data *C.char, n C.size_t) C.uint32_t { return open(pdsmelt.EU4, data, n) }

//export rakaly_ck3_file
func rakaly_ck3_file(data *C.char, n C.size_t) C.uint32_t { return open(pdsmelt.CK3, data, n) }

//export rakaly_imperator_file
func rakaly_imperator_file(data *C.char, n C.size_t) C.uint32_t {
	return open(pdsmelt.Imperator, data, n)
}

//export rakaly_hoi4_file
func rakaly_hoi4_file(data *C.char, n C.size_t) C.uint32_t { return open(pdsmelt.HOI4, data, n) }

//export rakaly_vic3_file
func rakaly_vic3_file(data *C.char, n C.size_t) C.uint32_t { return open(pdsmelt.Vic3, data, n) }

//export rakaly_eu5_file
func rakaly_eu5_file(data *C.char, n C.size_t) C.uint32_t { return open(pdsmelt.EU5, data, n) }

// rakaly_file_error consumes a failed open result. It returns 0 and leaves
// the result untouched when the open succeeded.
//
//export rakaly_file_error
func rakaly_file_error(res C.uint32_t) C.uint32_t { return out(lib.FileError(handle(res))) }

//export rakaly_file_value
func rakaly_file_value(res C.uint32_t) C.uint32_t { return out(lib.FileValue(handle(res))) }

//export rakaly_file_is_binary
func rakaly_file_is_binary(file C.uint32_t) C.bool {
	return C.bool(lib.FileIsBinary(handle(file)))
}

// rakaly_file_meta returns 0 when the save has no standalone metadata.
//
//export rakaly_file_meta
func rakaly_file_meta(file C.uint32_t) C.uint32_t { return out(lib.FileMeta(handle(file))) }

//export rakaly_file_melt
func rakaly_file_melt(file C.uint32_t) C.uint32_t { return out(lib.FileMelt(handle(file))) }

//export rakaly_file_meta_melt
func rakaly_file_meta_melt(meta C.uint32_t) C.uint32_t { return out(lib.MetaMelt(handle(meta))) }

//export rakaly_melt_error
func rakaly_melt_error(res C.uint32_t) C.uint32_t { return out(lib.MeltError(handle(res))) }

//export rakaly_melt_value
func rakaly_melt_value(res C.uint32_t) C.uint32_t { return out(lib.MeltValue(handle(res))) }

//export rakaly_melt_data_length
func rakaly_melt_data_length(melt C.uint32_t) C.size_t {
	return C.size_t(lib.MeltLength(handle(melt)))
}

// rakaly_melt_is_verbatim reports that the input bytes already are the
// melted text.
//
//export rakaly_melt_is_verbatim
func rakaly_melt_is_verbatim(melt C.uint32_t) C.bool {
	return C.bool(lib.MeltIsVerbatim(handle(melt)))
}

//export rakaly_melt_binary_unknown_tokens
func rakaly_melt_binary_unknown_tokens(melt C.uint32_t) C.bool {
	return C.bool(lib.MeltUnknownTokens(handle(melt)))
}

// rakaly_melt_write_data returns the bytes written, or 0 when the buffer is
// null or shorter than rakaly_melt_data_length.
//
//export rakaly_melt_write_data
func rakaly_melt_write_data(melt C.uint32_t, buf *C.char, n C.size_t) C.size_t {
	dst, ok := span(buf, n)
	if !ok || buf == nil {
		return 0
	}
	return C.size_t(lib.MeltWrite(handle(melt), dst))
}

//export rakaly_error_length
func rakaly_error_length(e C.uint32_t) C.int {
	n, _ := boundary.Narrow[C.int](lib.ErrorLength(handle(e)))
	return n
}

// rakaly_error_write_data returns the bytes written, or -1 when the buffer
// is null or too short. The message is not NUL terminated.
//
//export rakaly_error_write_data
func rakaly_error_write_data(e C.uint32_t, buf *C.char, n C.int) C.int {
	if buf == nil || n < 0 {
		return -1
	}
	dst, _ := span(buf, C.size_t(n))
	written, ok := boundary.Narrow[C.int](lib.ErrorWrite(handle(e), dst))
	if !ok {
		return -1
	}
	return written
}

//export rakaly_free_result
func rakaly_free_result(res C.uint32_t) C.bool { return C.bool(lib.ReleaseResult(handle(res))) }

// rakaly_free_file is refused while metadata handles of the file are live.
//
//export rakaly_free_file
func rakaly_free_file(file C.uint32_t) C.bool { return C.bool(lib.ReleaseFile(handle(file))) }

//export rakaly_free_meta
func rakaly_free_meta(meta C.uint32_t) C.bool { return C.bool(lib.ReleaseMeta(handle(meta))) }

//export rakaly_free_melt
func rakaly_free_melt(melt C.uint32_t) C.bool { return C.bool(lib.ReleaseMelt(handle(melt))) }

//export rakaly_free_error
func rakaly_free_error(e C.uint32_t) C.bool { return C.bool(lib.ReleaseError(handle(e))) }
