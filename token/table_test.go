package token

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/pdsmelt/errors"
)

func TestParse(t *testing.T) {
	src := `# eu4 tokens
0x2c23 date

11300 player
0x2c23 start_date
`
	table, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	name, ok := table.Resolve(0x2c23)
	assert.True(t, ok)
	assert.Equal(t, "start_date", name, "later lines win")

	name, ok = table.Resolve(11300)
	assert.True(t, ok)
	assert.Equal(t, "player", name)

	_, ok = table.Resolve(0x0001)
	assert.False(t, ok)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing name", "0x2c23\n"},
		{"extra field", "0x2c23 date extra\n"},
		{"bad id", "zz date\n"},
		{"id too large", "0x10000 date\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, &errors.Error{Kind: errors.KindInvalidData})
		})
	}
}

func TestParseYAML(t *testing.T) {
	table, err := ParseYAML([]byte("0x2c23: date\n11300: player\n"))
	require.NoError(t, err)

	name, ok := table.Resolve(0x2c23)
	assert.True(t, ok)
	assert.Equal(t, "date", name)

	_, err = ParseYAML([]byte("70000: huge\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "eu4.txt")
	require.NoError(t, os.WriteFile(txt, []byte("0x0100 foo\n"), 0o600))
	yml := filepath.Join(dir, "ck3.yml")
	require.NoError(t, os.WriteFile(yml, []byte("0x0100: bar\n"), 0o600))

	table, err := Load(txt)
	require.NoError(t, err)
	name, _ := table.Resolve(0x0100)
	assert.Equal(t, "foo", name)

	table, err = Load(yml)
	require.NoError(t, err)
	name, _ = table.Resolve(0x0100)
	assert.Equal(t, "bar", name)

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, &errors.Error{Kind: errors.KindNotFound})
}

func TestNewTableCopies(t *testing.T) {
	names := map[uint16]string{1: "a"}
	table := NewTable(names)
	names[1] = "b"

	name, _ := table.Resolve(1)
	assert.Equal(t, "a", name)
}
