package clausewitz

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/wippyai/pdsmelt/errors"
	"github.com/wippyai/pdsmelt/token"
)

// FailedResolve selects what happens to a token id missing from the resolver.
type FailedResolve uint8

const (
	// FailedResolveError aborts the melt.
	FailedResolveError FailedResolve = iota
	// FailedResolveStringify writes values as "__unknown_0x<id>" and drops pairs with unknown keys.
	FailedResolveStringify
	// FailedResolveIgnore drops both.
	FailedResolveIgnore
)

func (f FailedResolve) String() string {
	switch f {
	case FailedResolveError:
		return "error"
	case FailedResolveStringify:
		return "stringify"
	case FailedResolveIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// Melted is the text produced from a binary body.
type Melted struct {
	data    []byte
	unknown []uint16
}

// Data is the melted text, header included.
func (m *Melted) Data() []byte {
	return m.data
}

// UnknownTokens lists each unresolved id once, in ascending order.
func (m *Melted) UnknownTokens() []uint16 {
	return m.unknown
}

// Melter converts a binary body to text. Configure it with the chained setters
// and call Melt once.
type Melter struct {
	body     []byte
	header   []byte
	flavor   Flavor
	onFail   FailedResolve
	verbatim bool
}

func NewMelter(body []byte) *Melter {
	return &Melter{body: body, flavor: FlavorDecimal}
}

func (m *Melter) Flavor(f Flavor) *Melter {
	m.flavor = f
	return m
}

// Header is written before the melted body.
func (m *Melter) Header(h []byte) *Melter {
	m.header = h
	return m
}

func (m *Melter) OnFailedResolve(f FailedResolve) *Melter {
	m.onFail = f
	return m
}

// Verbatim keeps unquoted strings unquoted. Off, every string is quoted.
func (m *Melter) Verbatim(v bool) *Melter {
	m.verbatim = v
	return m
}

// Options applies caller options in one step.
func (m *Melter) Options(opts MeltOptions) *Melter {
	return m.OnFailedResolve(opts.OnFailedResolve).Verbatim(opts.Verbatim)
}

func (m *Melter) Melt(res token.Resolver) (*Melted, error) {
	if res == nil {
		res = token.Empty
	}

	p := parser{lex: NewLexer(m.body)}
	nodes, err := p.entries(0)
	if err != nil {
		return nil, err
	}

	e := emitter{
		res:      res,
		flavor:   m.flavor,
		onFail:   m.onFail,
		verbatim: m.verbatim,
		unknown:  make(map[uint16]struct{}),
	}
	e.buf.Grow(len(m.header) + 2*len(m.body))
	e.buf.Write(m.header)
	if err := e.entries(nodes, 0); err != nil {
		return nil, err
	}

	return &Melted{
		data:    e.buf.Bytes(),
		unknown: slices.Sorted(maps.Keys(e.unknown)),
	}, nil
}

type emitter struct {
	buf      bytes.Buffer
	res      token.Resolver
	flavor   Flavor
	onFail   FailedResolve
	verbatim bool
	unknown  map[uint16]struct{}
}

func (e *emitter) indent(depth int) {
	for range depth {
		e.buf.WriteByte('\t')
	}
}

func (e *emitter) entries(nodes []node, depth int) error {
	for i := range nodes {
		if err := e.entry(&nodes[i], depth); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) entry(n *node, depth int) error {
	var key string
	if n.key != nil {
		k, ok, err := e.key(*n.key)
		if err != nil || !ok {
			return err
		}
		key = k
	}

	if n.value.kind == valueContainer {
		e.indent(depth)
		if n.key != nil {
			e.buf.WriteString(key)
			e.buf.WriteByte('=')
		}
		if err := e.container(n.value.children, depth); err != nil {
			return err
		}
		e.buf.WriteByte('\n')
		return nil
	}

	s, ok, err := e.scalar(n.value)
	if err != nil || !ok {
		return err
	}
	e.indent(depth)
	if n.key != nil {
		e.buf.WriteString(key)
		e.buf.WriteByte('=')
	}
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
	return nil
}

func (e *emitter) container(children []node, depth int) error {
	if len(children) == 0 {
		e.buf.WriteString("{}")
		return nil
	}

	if inline(children) {
		e.buf.WriteByte('{')
		for i := range children {
			s, ok, err := e.scalar(children[i].value)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			e.buf.WriteByte(' ')
			e.buf.WriteString(s)
		}
		e.buf.WriteString(" }")
		return nil
	}

	e.buf.WriteString("{\n")
	if err := e.entries(children, depth+1); err != nil {
		return err
	}
	e.indent(depth)
	e.buf.WriteByte('}')
	return nil
}

// inline reports whether a container holds only bare scalars.
func inline(children []node) bool {
	for i := range children {
		if children[i].key != nil || children[i].value.kind == valueContainer {
			return false
		}
	}
	return true
}

func (e *emitter) key(t Token) (string, bool, error) {
	if t.Kind != KindID {
		return e.scalar(value{kind: valueScalar, scalar: t})
	}
	if name, ok := e.res.Resolve(t.ID); ok {
		return name, true, nil
	}
	e.unknown[t.ID] = struct{}{}
	if e.onFail == FailedResolveError {
		return "", false, errors.UnknownToken(errors.PhaseMelt, t.ID, t.Offset)
	}
	return "", false, nil
}

func (e *emitter) scalar(v value) (string, bool, error) {
	if v.kind == valueRGB {
		b := make([]byte, 0, 32)
		b = append(b, "rgb {"...)
		for _, c := range v.rgb {
			b = append(b, ' ')
			b = strconv.AppendUint(b, uint64(c), 10)
		}
		b = append(b, " }"...)
		return string(b), true, nil
	}

	t := v.scalar
	switch t.Kind {
	case KindID:
		if name, ok := e.res.Resolve(t.ID); ok {
			return name, true, nil
		}
		e.unknown[t.ID] = struct{}{}
		switch e.onFail {
		case FailedResolveError:
			return "", false, errors.UnknownToken(errors.PhaseMelt, t.ID, t.Offset)
		case FailedResolveStringify:
			return fmt.Sprintf("__unknown_0x%x", t.ID), true, nil
		default:
			return "", false, nil
		}
	case KindI32:
		return strconv.FormatInt(int64(int32(t.Bits)), 10), true, nil
	case KindU32, KindU64:
		return strconv.FormatUint(t.Bits, 10), true, nil
	case KindI64:
		return strconv.FormatInt(int64(t.Bits), 10), true, nil
	case KindF32:
		return e.flavor.F32(uint32(t.Bits)), true, nil
	case KindF64:
		return e.flavor.F64(t.Bits), true, nil
	case KindBool:
		if t.Bits != 0 {
			return "yes", true, nil
		}
		return "no", true, nil
	case KindQuoted:
		return `"` + string(t.Data) + `"`, true, nil
	case KindUnquoted:
		if e.verbatim {
			return string(t.Data), true, nil
		}
		return `"` + string(t.Data) + `"`, true, nil
	}
	return "", false, invalidAt(t.Offset, "token 0x%04x cannot be a value", t.ID)
}
