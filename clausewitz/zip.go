package clausewitz

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zip"

	"github.com/wippyai/pdsmelt/errors"
)

// MaxEntrySize caps the inflated size of a single archive entry.
const MaxEntrySize = 1 << 30

var zipMagic = []byte("PK\x03\x04")

// IsZip reports whether data starts with a zip local file header.
func IsZip(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

// Archive is a read-only view of a zip held in memory.
type Archive struct {
	r *zip.Reader
}

// OpenArchive reads the central directory of an in-memory zip.
func OpenArchive(data []byte) (*Archive, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Zip(errors.PhaseOpen, err, "reading central directory")
	}
	return &Archive{r: r}, nil
}

func (a *Archive) file(name string) *zip.File {
	for _, f := range a.r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Has reports whether the archive contains an entry called name.
func (a *Archive) Has(name string) bool {
	return a.file(name) != nil
}

// Names lists the archive entries in directory order.
func (a *Archive) Names() []string {
	names := make([]string, len(a.r.File))
	for i, f := range a.r.File {
		names[i] = f.Name
	}
	return names
}

// Read inflates the entry called name.
func (a *Archive) Read(name string) ([]byte, error) {
	f := a.file(name)
	if f == nil {
		return nil, errors.NotFound(errors.PhaseOpen, "zip entry", name)
	}
	if f.UncompressedSize64 > MaxEntrySize {
		return nil, errors.Zip(errors.PhaseOpen, nil, "entry "+name+" exceeds size limit")
	}

	rc, err := f.Open()
	if err != nil {
		return nil, errors.Zip(errors.PhaseOpen, err, "opening entry "+name)
	}
	defer rc.Close()

	buf := bytes.NewBuffer(make([]byte, 0, min(f.UncompressedSize64, 1<<26)))
	if _, err := io.Copy(buf, io.LimitReader(rc, MaxEntrySize+1)); err != nil {
		return nil, errors.Zip(errors.PhaseOpen, err, "inflating entry "+name)
	}
	if buf.Len() > MaxEntrySize {
		return nil, errors.Zip(errors.PhaseOpen, nil, "entry "+name+" exceeds size limit")
	}
	return buf.Bytes(), nil
}

// Peek inflates at most n bytes from the start of the entry called name.
func (a *Archive) Peek(name string, n int) ([]byte, error) {
	f := a.file(name)
	if f == nil {
		return nil, errors.NotFound(errors.PhaseOpen, "zip entry", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Zip(errors.PhaseOpen, err, "opening entry "+name)
	}
	defer rc.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(rc, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, errors.Zip(errors.PhaseOpen, err, "inflating entry "+name)
	}
	return buf[:read], nil
}
