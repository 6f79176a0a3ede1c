package clausewitz

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/pdsmelt/errors"
)

func TestLexer_AllKinds(t *testing.T) {
	w := &Writer{}
	w.Token(0x2c23).Equal().Open().Close().
		I32(-5).U32(7).I64(-9).U64(11).
		F32(1500).F64(32768).Bool(true).
		Quoted("a b").Unquoted("ENG").Token(TokenRGB)

	want := []struct {
		kind TokenKind
		bits uint64
		data string
	}{
		{kind: KindID},
		{kind: KindEqual},
		{kind: KindOpen},
		{kind: KindClose},
		{kind: KindI32, bits: uint64(uint32(0xfffffffb))},
		{kind: KindU32, bits: 7},
		{kind: KindI64, bits: uint64(0xfffffffffffffff7)},
		{kind: KindU64, bits: 11},
		{kind: KindF32, bits: 1500},
		{kind: KindF64, bits: 32768},
		{kind: KindBool, bits: 1},
		{kind: KindQuoted, data: "a b"},
		{kind: KindUnquoted, data: "ENG"},
		{kind: KindRGB},
	}

	lex := NewLexer(w.Bytes())
	for i, tt := range want {
		tok, err := lex.Next()
		require.NoError(t, err, "token %d", i)
		assert.Equal(t, tt.kind, tok.Kind, "token %d", i)
		assert.Equal(t, tt.bits, tok.Bits, "token %d", i)
		assert.Equal(t, tt.data, string(tok.Data), "token %d", i)
	}

	_, err := lex.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLexer_Offsets(t *testing.T) {
	w := &Writer{}
	w.Field(0x2c23).I32(1)
	lex := NewLexer(w.Bytes())

	var offsets []int
	for {
		tok, err := lex.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		offsets = append(offsets, tok.Offset)
	}
	assert.Equal(t, []int{0, 2, 4}, offsets)
}

func TestLexer_Truncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"odd byte", []byte{0x01}},
		{"i32 payload", []byte{0x0c, 0x00, 0x01, 0x02}},
		{"u64 payload", []byte{0x9c, 0x02, 1, 2, 3, 4, 5, 6, 7}},
		{"bool payload", []byte{0x0e, 0x00}},
		{"string length", []byte{0x0f, 0x00, 0x05}},
		{"string body", []byte{0x0f, 0x00, 0x05, 0x00, 'a', 'b'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.data).Next()
			require.Error(t, err)
			assert.ErrorIs(t, err, &errors.Error{Kind: errors.KindTruncated})
		})
	}
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	lex := NewLexer((&Writer{}).Equal().Bytes())
	id, ok := lex.PeekID()
	require.True(t, ok)
	assert.Equal(t, TokenEqual, id)
	assert.Equal(t, 0, lex.Offset())

	tok, err := lex.Next()
	require.NoError(t, err)
	assert.Equal(t, KindEqual, tok.Kind)

	_, ok = lex.PeekID()
	assert.False(t, ok)
}
