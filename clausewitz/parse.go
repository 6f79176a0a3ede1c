package clausewitz

import (
	"io"

	"github.com/wippyai/pdsmelt/errors"
)

// maxDepth bounds container nesting so hostile input cannot exhaust the stack.
const maxDepth = 256

type valueKind uint8

const (
	valueScalar valueKind = iota
	valueContainer
	valueRGB
)

type node struct {
	key   *Token
	value value
}

type value struct {
	kind     valueKind
	scalar   Token
	rgb      []uint32
	children []node
}

type parser struct {
	lex *Lexer
}

func invalidAt(offset int, msg string, args ...any) error {
	return errors.New(errors.PhaseMelt, errors.KindInvalidData).At(offset).Detail(msg, args...).Build()
}

// entries reads key/value pairs and bare values until the closing brace of the
// current container, or the end of input at depth 0.
func (p *parser) entries(depth int) ([]node, error) {
	if depth > maxDepth {
		return nil, invalidAt(p.lex.Offset(), "nesting deeper than %d", maxDepth)
	}

	var out []node
	for {
		tok, err := p.lex.Next()
		if err == io.EOF {
			if depth == 0 {
				return out, nil
			}
			return nil, invalidAt(p.lex.Offset(), "missing closing brace")
		}
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case KindClose:
			if depth == 0 {
				return nil, invalidAt(tok.Offset, "unbalanced closing brace")
			}
			return out, nil
		case KindEqual:
			return nil, invalidAt(tok.Offset, "unexpected '='")
		case KindOpen:
			children, err := p.entries(depth + 1)
			if err != nil {
				return nil, err
			}
			out = append(out, node{value: value{kind: valueContainer, children: children}})
		default:
			if id, ok := p.lex.PeekID(); ok && id == TokenEqual {
				if _, err := p.lex.Next(); err != nil {
					return nil, err
				}
				v, err := p.value(depth)
				if err != nil {
					return nil, err
				}
				key := tok
				out = append(out, node{key: &key, value: v})
				continue
			}
			v, err := p.scalar(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, node{value: v})
		}
	}
}

func (p *parser) value(depth int) (value, error) {
	tok, err := p.lex.Next()
	if err == io.EOF {
		return value{}, errors.Truncated(errors.PhaseMelt, p.lex.Offset(), 2, 0)
	}
	if err != nil {
		return value{}, err
	}

	switch tok.Kind {
	case KindOpen:
		children, err := p.entries(depth + 1)
		if err != nil {
			return value{}, err
		}
		return value{kind: valueContainer, children: children}, nil
	case KindClose, KindEqual:
		return value{}, invalidAt(tok.Offset, "expected value, found control token 0x%04x", tok.ID)
	}
	return p.scalar(tok)
}

// scalar turns tok into a value, reading the channel list that follows an rgb token.
func (p *parser) scalar(tok Token) (value, error) {
	if tok.Kind != KindRGB {
		return value{kind: valueScalar, scalar: tok}, nil
	}

	open, err := p.lex.Next()
	if err == io.EOF {
		return value{}, errors.Truncated(errors.PhaseMelt, p.lex.Offset(), 2, 0)
	}
	if err != nil {
		return value{}, err
	}
	if open.Kind != KindOpen {
		return value{}, invalidAt(open.Offset, "rgb must be followed by '{'")
	}

	channels := make([]uint32, 0, 4)
	for {
		t, err := p.lex.Next()
		if err == io.EOF {
			return value{}, errors.Truncated(errors.PhaseMelt, p.lex.Offset(), 2, 0)
		}
		if err != nil {
			return value{}, err
		}
		if t.Kind == KindClose {
			break
		}
		if t.Kind != KindU32 && t.Kind != KindI32 {
			return value{}, invalidAt(t.Offset, "rgb channel must be an integer")
		}
		if len(channels) == 4 {
			return value{}, invalidAt(t.Offset, "rgb has more than 4 channels")
		}
		channels = append(channels, uint32(t.Bits))
	}
	if len(channels) < 3 {
		return value{}, invalidAt(p.lex.Offset(), "rgb has %d channels", len(channels))
	}
	return value{kind: valueRGB, rgb: channels}, nil
}
