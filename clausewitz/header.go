package clausewitz

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/wippyai/pdsmelt/errors"
)

// SaveHeaderLen is the size of a SAV header line, newline included.
const SaveHeaderLen = 24

// HeaderKind is the body layout declared by a SAV header.
type HeaderKind uint8

const (
	HeaderText HeaderKind = iota
	HeaderBinary
	HeaderZipText
	HeaderZipBinary
	HeaderSplitText
	HeaderSplitBinary
)

// Encoding maps a header kind to the encoding of the body that follows it.
// Split saves keep their gamestate elsewhere and are read like their
// non-split counterparts.
func (k HeaderKind) Encoding() Encoding {
	switch k {
	case HeaderText, HeaderSplitText:
		return Text
	case HeaderBinary, HeaderSplitBinary:
		return Binary
	case HeaderZipText:
		return TextZip
	default:
		return BinaryZip
	}
}

// SaveHeader is a parsed SAV header.
type SaveHeader struct {
	Version uint8
	Kind    HeaderKind
	Random  uint32
	MetaLen uint32
}

// HasSaveHeader reports whether data starts with a SAV header.
func HasSaveHeader(data []byte) bool {
	return bytes.HasPrefix(data, []byte("SAV"))
}

// ParseSaveHeader reads the header at the start of data.
func ParseSaveHeader(data []byte) (SaveHeader, error) {
	if len(data) < SaveHeaderLen {
		return SaveHeader{}, errors.Truncated(errors.PhaseOpen, 0, SaveHeaderLen, len(data))
	}
	if !HasSaveHeader(data) {
		return SaveHeader{}, errors.InvalidData(errors.PhaseOpen, "missing SAV prefix")
	}
	if data[SaveHeaderLen-1] != '\n' {
		return SaveHeader{}, errors.New(errors.PhaseOpen, errors.KindInvalidData).
			At(SaveHeaderLen - 1).
			Detail("header line not terminated").
			Build()
	}

	fields := []struct {
		start, end int
		bits       int
	}{{3, 5, 8}, {5, 7, 8}, {7, 15, 32}, {15, 23, 32}}
	var parsed [4]uint64
	for i, f := range fields {
		v, err := strconv.ParseUint(string(data[f.start:f.end]), 16, f.bits)
		if err != nil {
			return SaveHeader{}, errors.New(errors.PhaseOpen, errors.KindInvalidData).
				At(f.start).
				Cause(err).
				Detail("header field %q is not hex", data[f.start:f.end]).
				Build()
		}
		parsed[i] = v
	}

	h := SaveHeader{
		Version: uint8(parsed[0]),
		Kind:    HeaderKind(parsed[1]),
		Random:  uint32(parsed[2]),
		MetaLen: uint32(parsed[3]),
	}
	if h.Kind > HeaderSplitBinary {
		return SaveHeader{}, errors.New(errors.PhaseOpen, errors.KindUnsupported).
			At(5).
			Detail("header kind %02x", parsed[1]).
			Build()
	}
	return h, nil
}

// WithKind returns a copy of h declaring kind.
func (h SaveHeader) WithKind(kind HeaderKind) SaveHeader {
	h.Kind = kind
	return h
}

// Bytes renders the header line.
func (h SaveHeader) Bytes() []byte {
	return fmt.Appendf(make([]byte, 0, SaveHeaderLen), "SAV%02x%02x%08x%08x\n",
		h.Version, uint8(h.Kind), h.Random, h.MetaLen)
}
