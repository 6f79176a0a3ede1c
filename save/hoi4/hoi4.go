// Package hoi4 opens Hearts of Iron IV saves. HOI4 writes neither zips nor a
// separate metadata section.
package hoi4

import (
	"github.com/wippyai/pdsmelt/clausewitz"
)

const Magic = "HOI4"

var config = clausewitz.MagicConfig{
	Game:   "hoi4",
	Magic:  Magic,
	Flavor: clausewitz.FlavorQ15,
}

type File struct {
	*clausewitz.MagicSave
}

func Open(data []byte) (*File, error) {
	s, err := clausewitz.OpenMagic(data, config)
	if err != nil {
		return nil, err
	}
	return &File{MagicSave: s}, nil
}

// Meta always reports no metadata.
func (f *File) Meta() (clausewitz.Meta, bool) {
	return nil, false
}
