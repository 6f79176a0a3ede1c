// Package ck3 opens Crusader Kings III saves.
//
// Current saves start with a SAV header. Saves from the first releases start
// with CK3txt or CK3bin instead and are never zipped.
package ck3

import (
	"github.com/wippyai/pdsmelt/clausewitz"
)

const Magic = "CK3"

var (
	config = clausewitz.SavConfig{Game: "ck3", Flavor: clausewitz.FlavorDecimal}

	legacy = clausewitz.MagicConfig{Game: "ck3", Magic: Magic, Flavor: clausewitz.FlavorDecimal}
)

// File is an opened CK3 save of either layout.
type File struct {
	clausewitz.Save
	header *clausewitz.SaveHeader
}

func Open(data []byte) (*File, error) {
	if !clausewitz.HasSaveHeader(data) {
		s, err := clausewitz.OpenMagic(data, legacy)
		if err != nil {
			return nil, err
		}
		return &File{Save: s}, nil
	}

	s, err := clausewitz.OpenSav(data, config)
	if err != nil {
		return nil, err
	}
	h := s.Header()
	return &File{Save: s, header: &h}, nil
}

// Header returns the SAV header, absent for CK3txt and CK3bin saves.
func (f *File) Header() (clausewitz.SaveHeader, bool) {
	if f.header == nil {
		return clausewitz.SaveHeader{}, false
	}
	return *f.header, true
}
