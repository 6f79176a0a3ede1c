package clausewitz

import (
	"github.com/wippyai/pdsmelt/token"
)

// Encoding is the on-disk representation of a save.
type Encoding uint8

const (
	Text Encoding = iota + 1
	Binary
	TextZip
	BinaryZip
)

func (e Encoding) String() string {
	switch e {
	case Text:
		return "text"
	case Binary:
		return "binary"
	case TextZip:
		return "text-zip"
	case BinaryZip:
		return "binary-zip"
	default:
		return "unknown"
	}
}

// IsBinary reports whether the save holds token stream content.
func (e Encoding) IsBinary() bool {
	return e == Binary || e == BinaryZip
}

// IsZip reports whether the content is wrapped in a zip archive.
func (e Encoding) IsZip() bool {
	return e == TextZip || e == BinaryZip
}

// MeltOptions is the caller-controlled part of a melt.
type MeltOptions struct {
	OnFailedResolve FailedResolve
	Verbatim        bool
}

// Save is what a per-game collaborator exposes for one opened save.
type Save interface {
	// Encoding is decided when the save is opened and never changes.
	Encoding() Encoding

	// InflateText returns a header declaring text encoding and the plaintext
	// body. Valid for Text and TextZip saves.
	InflateText() (header, body []byte, err error)

	// Melt converts binary content to text. Valid for Binary and BinaryZip saves.
	Melt(res token.Resolver, opts MeltOptions) (*Melted, error)

	// Meta returns the embedded metadata section when it can be read on its own.
	Meta() (Meta, bool)
}

// Meta is a metadata section that can be melted without the full save.
type Meta interface {
	// Encoding is Text or Binary.
	Encoding() Encoding

	// Text returns the header and body of a plaintext metadata section.
	Text() (header, body []byte, err error)

	// Melt converts a binary metadata section to text.
	Melt(res token.Resolver, opts MeltOptions) (*Melted, error)
}
