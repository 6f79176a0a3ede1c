// Package vic3 opens Victoria 3 saves.
package vic3

import (
	"github.com/wippyai/pdsmelt/clausewitz"
)

var config = clausewitz.SavConfig{Game: "vic3", Flavor: clausewitz.FlavorDecimal}

// File is an opened save.
type File struct {
	*clausewitz.SavSave
}

// Open parses the SAV header and validates the metadata bounds and zip.
func Open(data []byte) (*File, error) {
	s, err := clausewitz.OpenSav(data, config)
	if err != nil {
		return nil, err
	}
	return &File{SavSave: s}, nil
}
