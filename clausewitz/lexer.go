package clausewitz

import (
	"encoding/binary"
	"io"

	"github.com/wippyai/pdsmelt/errors"
)

// Control and payload token ids of the binary format.
const (
	TokenEqual    uint16 = 0x0001
	TokenOpen     uint16 = 0x0003
	TokenClose    uint16 = 0x0004
	TokenI32      uint16 = 0x000c
	TokenF32      uint16 = 0x000d
	TokenBool     uint16 = 0x000e
	TokenQuoted   uint16 = 0x000f
	TokenU32      uint16 = 0x0014
	TokenUnquoted uint16 = 0x0017
	TokenF64      uint16 = 0x0167
	TokenRGB      uint16 = 0x0243
	TokenU64      uint16 = 0x029c
	TokenI64      uint16 = 0x0317
)

// TokenKind classifies a lexed token.
type TokenKind uint8

const (
	KindID TokenKind = iota
	KindEqual
	KindOpen
	KindClose
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindBool
	KindQuoted
	KindUnquoted
	KindRGB
)

// Token is one lexed element of a binary stream.
type Token struct {
	Kind   TokenKind
	ID     uint16
	Offset int
	// Bits holds numeric and bool payloads.
	Bits uint64
	// Data aliases the input for string payloads.
	Data []byte
}

// Lexer splits a binary body into tokens. It never copies string payloads.
type Lexer struct {
	data []byte
	pos  int
}

func NewLexer(data []byte) *Lexer {
	return &Lexer{data: data}
}

// Offset is the position of the next unread byte.
func (l *Lexer) Offset() int {
	return l.pos
}

// PeekID returns the id of the next token without consuming it.
func (l *Lexer) PeekID() (uint16, bool) {
	if len(l.data)-l.pos < 2 {
		return 0, false
	}
	return binary.LittleEndian.Uint16(l.data[l.pos:]), true
}

// Next returns the next token, or io.EOF once the input is exhausted.
func (l *Lexer) Next() (Token, error) {
	if l.pos == len(l.data) {
		return Token{}, io.EOF
	}
	id, ok := l.PeekID()
	if !ok {
		return Token{}, errors.Truncated(errors.PhaseMelt, l.pos, 2, len(l.data)-l.pos)
	}
	tok := Token{ID: id, Offset: l.pos}
	l.pos += 2

	switch id {
	case TokenEqual:
		tok.Kind = KindEqual
	case TokenOpen:
		tok.Kind = KindOpen
	case TokenClose:
		tok.Kind = KindClose
	case TokenRGB:
		tok.Kind = KindRGB
	case TokenI32, TokenU32, TokenF32:
		b, err := l.take(4)
		if err != nil {
			return Token{}, err
		}
		tok.Bits = uint64(binary.LittleEndian.Uint32(b))
		tok.Kind = map32[id]
	case TokenI64, TokenU64, TokenF64:
		b, err := l.take(8)
		if err != nil {
			return Token{}, err
		}
		tok.Bits = binary.LittleEndian.Uint64(b)
		tok.Kind = map64[id]
	case TokenBool:
		b, err := l.take(1)
		if err != nil {
			return Token{}, err
		}
		if b[0] != 0 {
			tok.Bits = 1
		}
		tok.Kind = KindBool
	case TokenQuoted, TokenUnquoted:
		n, err := l.take(2)
		if err != nil {
			return Token{}, err
		}
		s, err := l.take(int(binary.LittleEndian.Uint16(n)))
		if err != nil {
			return Token{}, err
		}
		tok.Data = s
		tok.Kind = KindQuoted
		if id == TokenUnquoted {
			tok.Kind = KindUnquoted
		}
	default:
		tok.Kind = KindID
	}
	return tok, nil
}

var (
	map32 = map[uint16]TokenKind{TokenI32: KindI32, TokenU32: KindU32, TokenF32: KindF32}
	map64 = map[uint16]TokenKind{TokenI64: KindI64, TokenU64: KindU64, TokenF64: KindF64}
)

func (l *Lexer) take(n int) ([]byte, error) {
	if len(l.data)-l.pos < n {
		return nil, errors.Truncated(errors.PhaseMelt, l.pos, n, len(l.data)-l.pos)
	}
	b := l.data[l.pos : l.pos+n]
	l.pos += n
	return b, nil
}
