// Package imperator opens Imperator: Rome saves.
package imperator

import (
	"github.com/wippyai/pdsmelt/clausewitz"
)

var config = clausewitz.SavConfig{Game: "imperator", Flavor: clausewitz.FlavorDecimal}

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
