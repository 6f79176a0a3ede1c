// Package save groups the per-title save collaborators.
//
// Each subpackage configures the shared clausewitz machinery for one title:
//
//	eu4        EU4txt/EU4bin, zip of meta+gamestate+ai, Q15 floats
//	ck3        SAV header (CK3txt/CK3bin for early saves), decimal floats
//	imperator  SAV header, decimal floats
//	hoi4       HOI4txt/HOI4bin, no zip or metadata, Q15 floats
//	vic3       SAV header, decimal floats
//	eu5        SAV header, decimal floats
//
// Every subpackage exposes Open(data) returning a File that satisfies
// clausewitz.Save.
package save
