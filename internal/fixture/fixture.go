// Package fixture builds synthetic saves for tests.
package fixture

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/pdsmelt/clausewitz"
	"github.com/wippyai/pdsmelt/token"
)

// Token ids used by the synthetic saves.
const (
	TokDate     uint16 = 0x284d
	TokPlayer   uint16 = 0x2c69
	TokVersion  uint16 = 0x2ec9
	TokFirst    uint16 = 0x28e2
	TokSecond   uint16 = 0x28e3
	TokProvince uint16 = 0x2c52
	TokUnknown  uint16 = 0x9999
)

// Names resolves every fixture token except TokUnknown.
var Names = map[uint16]string{
	TokDate:     "date",
	TokPlayer:   "player",
	TokVersion:  "savegame_version",
	TokFirst:    "first",
	TokSecond:   "second",
	TokProvince: "province",
}

// Resolver returns a table over Names.
func Resolver() *token.Table {
	return token.NewTable(Names)
}

// Body is a small token stream every fixture table resolves.
//
//	date=1444
//	player="ENG"
//	savegame_version={
//		first=1
//		second=37
//	}
func Body() []byte {
	w := &clausewitz.Writer{}
	w.Field(TokDate).I32(1444)
	w.Field(TokPlayer).Quoted("ENG")
	w.Field(TokVersion).Open().
		Field(TokFirst).I32(1).
		Field(TokSecond).I32(37).
		Close()
	return w.Bytes()
}

// BodyText is the melted form of Body.
const BodyText = "date=1444\nplayer=\"ENG\"\nsavegame_version={\n\tfirst=1\n\tsecond=37\n}\n"

// UnknownBody references TokUnknown once as a value.
func UnknownBody() []byte {
	w := &clausewitz.Writer{}
	w.Field(TokPlayer).Token(TokUnknown)
	w.Field(TokProvince).I32(7)
	return w.Bytes()
}

// Entry is one zip archive member.
type Entry struct {
	Name string
	Data []byte
}

// Zip deflates entries into an in-memory archive.
func Zip(t testing.TB, entries ...Entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		require.NoError(t, err)
		_, err = w.Write(e.Data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// Sav assembles a SAV save: header, meta, then rest.
func Sav(kind clausewitz.HeaderKind, meta, rest []byte) []byte {
	h := clausewitz.SaveHeader{Version: 1, Kind: kind, Random: 0x0badf00d, MetaLen: uint32(len(meta))}
	out := h.Bytes()
	out = append(out, meta...)
	return append(out, rest...)
}

// Magic prefixes body with magic.
func Magic(magic string, body []byte) []byte {
	return append([]byte(magic), body...)
}
