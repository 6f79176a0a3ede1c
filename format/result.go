package format

import (
	"io"

	"github.com/wippyai/pdsmelt/clausewitz"
)

// Shape tells which of the three melt outcomes a MeltResult holds.
type Shape uint8

const (
	// ShapeVerbatim means the input was already text.
	ShapeVerbatim Shape = iota
	// ShapeText is a rewritten header followed by an inflated text body.
	ShapeText
	// ShapeBinary is text melted from a binary body.
	ShapeBinary
)

func (s Shape) String() string {
	switch s {
	case ShapeVerbatim:
		return "verbatim"
	case ShapeText:
		return "text"
	case ShapeBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// MeltResult is the normalized output of a melt.
type MeltResult struct {
	shape   Shape
	header  []byte
	body    []byte
	unknown []uint16
}

func verbatim() *MeltResult {
	return &MeltResult{shape: ShapeVerbatim}
}

func text(header, body []byte) *MeltResult {
	return &MeltResult{shape: ShapeText, header: header, body: body}
}

func binary(m *clausewitz.Melted) *MeltResult {
	return &MeltResult{shape: ShapeBinary, body: m.Data(), unknown: m.UnknownTokens()}
}

func (r *MeltResult) Shape() Shape {
	return r.shape
}

// IsVerbatim reports that no output was produced and the input bytes should
// be used unchanged.
func (r *MeltResult) IsVerbatim() bool {
	return r.shape == ShapeVerbatim
}

// HasUnknownTokens reports whether a binary melt met ids missing from the token table.
func (r *MeltResult) HasUnknownTokens() bool {
	return len(r.unknown) > 0
}

// UnknownTokens returns the unresolved ids in ascending order.
func (r *MeltResult) UnknownTokens() []uint16 {
	return r.unknown
}

// Len is the number of bytes CopyTo writes. Zero for a verbatim result.
func (r *MeltResult) Len() int {
	return len(r.header) + len(r.body)
}

// CopyTo writes the header then the body into dst. It writes nothing and
// returns false when dst is shorter than Len.
func (r *MeltResult) CopyTo(dst []byte) bool {
	if len(dst) < r.Len() {
		return false
	}
	n := copy(dst, r.header)
	copy(dst[n:], r.body)
	return true
}

// Bytes returns a copy of the output.
func (r *MeltResult) Bytes() []byte {
	out := make([]byte, r.Len())
	r.CopyTo(out)
	return out
}

// WriteTo streams the output to w.
func (r *MeltResult) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.header)
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(r.body)
	return int64(n + m), err
}
