package clausewitz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/pdsmelt/errors"
)

func TestParseSaveHeader(t *testing.T) {
	h, err := ParseSaveHeader([]byte("SAV0103deadbeef0000002a\nrest"))
	require.NoError(t, err)
	assert.Equal(t, SaveHeader{Version: 1, Kind: HeaderZipBinary, Random: 0xdeadbeef, MetaLen: 42}, h)
	assert.Equal(t, BinaryZip, h.Kind.Encoding())
}

func TestSaveHeader_Rewrite(t *testing.T) {
	h := SaveHeader{Version: 2, Kind: HeaderBinary, Random: 0x1234, MetaLen: 0x10}
	out := h.WithKind(HeaderText).Bytes()

	assert.Equal(t, "SAV02000000123400000010\n", string(out))
	assert.Len(t, out, SaveHeaderLen)
	assert.Equal(t, HeaderBinary, h.Kind, "WithKind must not modify the receiver")

	back, err := ParseSaveHeader(out)
	require.NoError(t, err)
	assert.Equal(t, HeaderText, back.Kind)
	assert.Equal(t, h.Random, back.Random)
}

func TestHeaderKind_Encoding(t *testing.T) {
	tests := []struct {
		kind HeaderKind
		want Encoding
	}{
		{HeaderText, Text},
		{HeaderBinary, Binary},
		{HeaderZipText, TextZip},
		{HeaderZipBinary, BinaryZip},
		{HeaderSplitText, Text},
		{HeaderSplitBinary, Binary},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Encoding(), "kind %d", tt.kind)
	}
}

func TestParseSaveHeader_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind errors.Kind
	}{
		{"short", "SAV0100", errors.KindTruncated},
		{"wrong prefix", "XAV010000000000000000000\n", errors.KindInvalidData},
		{"no newline", "SAV0100000000000000000000", errors.KindInvalidData},
		{"bad hex", "SAV01zz0000000000000000\n", errors.KindInvalidData},
		{"unknown kind", "SAV01090000000000000000\n", errors.KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSaveHeader([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, &errors.Error{Kind: tt.kind})
		})
	}
}

func TestEncoding(t *testing.T) {
	assert.True(t, Binary.IsBinary())
	assert.True(t, BinaryZip.IsBinary())
	assert.False(t, TextZip.IsBinary())
	assert.True(t, TextZip.IsZip())
	assert.False(t, Text.IsZip())
	assert.Equal(t, "binary-zip", BinaryZip.String())
}
