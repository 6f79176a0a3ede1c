// Package eu5 opens Europa Universalis V saves. Metadata holds the player
// country and date and is usually small enough to melt on its own.
package eu5

import (
	"github.com/wippyai/pdsmelt/clausewitz"
)

var config = clausewitz.SavConfig{Game: "eu5", Flavor: clausewitz.FlavorDecimal}

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
