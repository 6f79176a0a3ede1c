package token

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/pdsmelt/errors"
)

// Resolver maps a binary token to its name.
type Resolver interface {
	Resolve(id uint16) (string, bool)
}

// Table is an immutable token name table.
type Table struct {
	names map[uint16]string
}

// Empty resolves nothing.
var Empty = &Table{}

// NewTable copies names into a new table.
func NewTable(names map[uint16]string) *Table {
	t := &Table{names: make(map[uint16]string, len(names))}
	for id, name := range names {
		t.names[id] = name
	}
	return t
}

// Resolve returns the name for id.
func (t *Table) Resolve(id uint16) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

// Len returns the number of names in the table.
func (t *Table) Len() int {
	return len(t.names)
}

// Parse reads the plain text table format. Later lines win on duplicate ids.
func Parse(r io.Reader) (*Table, error) {
	names := make(map[uint16]string)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, errors.New(errors.PhaseTokens, errors.KindInvalidData).
				Detail("line %d: expected \"<id> <name>\", got %q", line, text).
				Build()
		}

		id, err := strconv.ParseUint(fields[0], 0, 16)
		if err != nil {
			return nil, errors.New(errors.PhaseTokens, errors.KindInvalidData).
				Detail("line %d: bad token id %q", line, fields[0]).
				Cause(err).
				Build()
		}
		names[uint16(id)] = fields[1]
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseTokens, errors.KindInvalidData, err, "read table")
	}
	return &Table{names: names}, nil
}

// ParseYAML reads a YAML mapping of token ids to names.
func ParseYAML(data []byte) (*Table, error) {
	var raw map[int]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.PhaseTokens, errors.KindInvalidData, err, "decode yaml table")
	}

	names := make(map[uint16]string, len(raw))
	for id, name := range raw {
		if id < 0 || id > 0xffff {
			return nil, errors.InvalidData(errors.PhaseTokens, "token id "+strconv.Itoa(id)+" does not fit in 16 bits")
		}
		names[uint16(id)] = name
	}
	return &Table{names: names}, nil
}

// Load reads a table file, choosing the format by extension.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.PhaseTokens, errors.KindNotFound).
				Detail("table file %q", path).
				Cause(err).
				Build()
		}
		return nil, errors.Wrap(errors.PhaseTokens, errors.KindInvalidData, err, "read "+path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(bytes.NewReader(data))
	}
}
