// Package token resolves the 16-bit name tokens found in binary saves.
//
// Binary saves replace field names and identifiers with integer tokens. The
// tables mapping them back to text are built from licensed game data and are
// not part of this module; they are loaded from disk on first use.
//
// A table file is either plain text, one "<id> <name>" pair per line with the
// id in decimal or 0x hex, or YAML mapping ids to names:
//
//	# eu4 tokens
//	0x2c23 date
//	11300 player
//
// For returns the process-wide resolver for a game. It is built once, from the
// path given to Configure or the game's environment variable, and never
// rebuilt. A missing table is not an error: every token is then unresolved.
package token
