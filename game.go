package pdsmelt

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Game identifies one supported title. The set is closed.
type Game uint8

const (
	EU4 Game = iota + 1
	CK3
	Imperator
	HOI4
	Vic3
	EU5
)

// Games lists every supported title in tag order.
var Games = []Game{EU4, CK3, Imperator, HOI4, Vic3, EU5}

var gameNames = [...]string{
	EU4:       "eu4",
	CK3:       "ck3",
	Imperator: "imperator",
	HOI4:      "hoi4",
	Vic3:      "vic3",
	EU5:       "eu5",
}

// String returns the lowercase short name used in error messages and flags.
func (g Game) String() string {
	if g.Valid() {
		return gameNames[g]
	}
	return "unknown"
}

// Valid reports whether g is one of the supported titles.
func (g Game) Valid() bool {
	return g >= EU4 && g <= EU5
}

// ParseGame returns the game for a short name ("eu4", "CK3", ...).
func ParseGame(name string) (Game, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, g := range Games {
		if gameNames[g] == name {
			return g, true
		}
	}
	return 0, false
}

// GameFromPath picks the game from a save file extension.
func GameFromPath(path string) (Game, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".eu4":
		return EU4, true
	case ".ck3":
		return CK3, true
	case ".rome":
		return Imperator, true
	case ".hoi4":
		return HOI4, true
	case ".v3":
		return Vic3, true
	case ".eu5":
		return EU5, true
	}
	return 0, false
}

// TokenEnv is the environment variable naming the game's token table file.
func (g Game) TokenEnv() string {
	if !g.Valid() {
		return ""
	}
	if g == Imperator {
		return "IMPERATOR_TOKENS"
	}
	return strings.ToUpper(g.String()) + "_IRONMAN_TOKENS"
}

// Charset is the character encoding of the game's plaintext saves.
// EU4 and HOI4 write Windows-1252; the newer titles write UTF-8.
func (g Game) Charset() encoding.Encoding {
	switch g {
	case EU4, HOI4:
		return charmap.Windows1252
	default:
		return unicode.UTF8
	}
}
