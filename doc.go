// Package pdsmelt normalizes save files from several historical-strategy titles
// into plaintext and exposes that "melt" operation across foreign boundaries.
//
// Saves come in four encodings: plain text, binary-tokenized, and zip-wrapped
// variants of either. Melting always yields text a player could have saved in
// debug mode, or reports that the input already was text.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	pdsmelt/          Root package with the closed Game enumeration
//	├── format/       Format dispatcher and the melt result model
//	├── boundary/     Handle-based protocol for unmanaged callers
//	├── wasmhost/     The boundary protocol as a wazero host module
//	├── clausewitz/   Encoding detection, containers and the binary melter
//	├── save/         Per-game save collaborators (eu4, ck3, imperator, hoi4, vic3, eu5)
//	├── token/        Token name tables and process-wide resolvers
//	├── resource/     Opaque handle table
//	├── errors/       Structured error types
//	└── cmd/          librakaly (C ABI) and the melt command
//
// # Quick Start
//
//	file, err := format.Open(pdsmelt.EU4, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := file.Melt()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if res.IsVerbatim() {
//	    os.Stdout.Write(data) // already plaintext
//	} else {
//	    buf := make([]byte, res.Len())
//	    res.CopyTo(buf)
//	    os.Stdout.Write(buf)
//	}
//
// # Token Tables
//
// Binary saves store field names as 16-bit tokens. The name tables are not
// distributed with this library; point EU4_IRONMAN_TOKENS, CK3_IRONMAN_TOKENS,
// IMPERATOR_TOKENS, HOI4_IRONMAN_TOKENS, VIC3_IRONMAN_TOKENS or
// EU5_IRONMAN_TOKENS at a table file before the first melt. Tokens that cannot
// be resolved are rendered as placeholders and reported on the melt result.
//
// # Thread Safety
//
// Token tables are immutable once built and safe for concurrent use. Files,
// metadata and melt results belong to the goroutine that created them.
package pdsmelt
