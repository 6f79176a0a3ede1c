// Package clausewitz implements the save formats shared by the supported titles.
//
// It classifies a save's encoding, opens its containers, and melts binary
// token streams into text. The per-game packages under save/ configure these
// pieces with each title's magic bytes, float flavor, and metadata layout.
//
// # Encodings
//
//	Text       plaintext, starts with "<MAGIC>txt" or a SAV header of kind 00
//	Binary     token stream, "<MAGIC>bin" or SAV kind 01
//	TextZip    zip archive of plaintext entries
//	BinaryZip  zip archive of token stream entries
//
// # SAV Header
//
// The newer titles start every save with a 24 byte line:
//
//	SAV 01 03 12345678 00001a2b \n
//	    |  |  |        `- metadata length (hex)
//	    |  |  `- random (hex)
//	    |  `- kind: 00 text, 01 binary, 02/03 zip text/binary, 04/05 split
//	    `- version
//
// # Binary Token Stream
//
// A binary body is a sequence of little-endian u16 tokens. A handful of ids
// are control tokens ('=', '{', '}') or introduce a typed payload (integers,
// fixed-point floats, bools, strings, rgb). Every other id names a field or an
// identifier and is resolved through a token.Resolver.
//
// # Melting
//
//	melted, err := clausewitz.NewMelter(body).
//		Flavor(clausewitz.FlavorQ15).
//		Header([]byte("EU4txt\n")).
//		OnFailedResolve(clausewitz.FailedResolveStringify).
//		Verbatim(true).
//		Melt(resolver)
//
// Unresolved tokens in value position are rendered as "__unknown_0x<id>" under
// FailedResolveStringify; an unresolved key drops its whole key/value pair.
// Every unresolved id is reported by Melted.UnknownTokens.
package clausewitz
