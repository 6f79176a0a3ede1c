// Package eu4 opens Europa Universalis IV saves.
package eu4

import (
	"github.com/wippyai/pdsmelt/clausewitz"
)

// Magic prefixes every EU4 save and every entry of a zipped one.
const Magic = "EU4"

var config = clausewitz.MagicConfig{
	Game:      "eu4",
	Magic:     Magic,
	Flavor:    clausewitz.FlavorQ15,
	Entries:   []string{"meta", "gamestate", "ai"},
	MetaEntry: "meta",
}

// File is an opened EU4 save.
type File struct {
	*clausewitz.MagicSave
}

// Open classifies data and validates its zip container, if any.
func Open(data []byte) (*File, error) {
	s, err := clausewitz.OpenMagic(data, config)
	if err != nil {
		return nil, err
	}
	return &File{MagicSave: s}, nil
}
