package imperator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/pdsmelt/clausewitz"
	"github.com/wippyai/pdsmelt/errors"
	"github.com/wippyai/pdsmelt/internal/fixture"
)

func TestOpen_TextWithMeta(t *testing.T) {
	f, err := Open(fixture.Sav(clausewitz.HeaderText, []byte("meta={}\n"), []byte("date=1.1.1\n")))
	require.NoError(t, err)
	assert.Equal(t, clausewitz.Text, f.Encoding())
	assert.Equal(t, uint32(8), f.Header().MetaLen)

	meta, ok := f.Meta()
	require.True(t, ok)
	assert.Equal(t, clausewitz.Text, meta.Encoding())
}

func TestOpen_RejectsMagicSaves(t *testing.T) {
	_, err := Open(fixture.Magic("EU4bin", fixture.Body()))
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.Error{Kind: errors.KindInvalidData, Game: "imperator"})
}
