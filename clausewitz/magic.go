package clausewitz

import (
	"bytes"

	"github.com/wippyai/pdsmelt/errors"
	"github.com/wippyai/pdsmelt/token"
)

// GamestateEntry is the archive entry holding the main game state.
const GamestateEntry = "gamestate"

// MagicConfig describes a title whose saves start with "<Magic>txt" or
// "<Magic>bin".
type MagicConfig struct {
	// Game tags every error produced for this title.
	Game   string
	Magic  string
	Flavor Flavor
	// Entries lists the zip entries concatenated into the body, in order.
	// Empty disables zip support.
	Entries []string
	// MetaEntry names the zip entry holding the metadata, if any.
	MetaEntry string
}

func (c MagicConfig) txt() []byte { return []byte(c.Magic + "txt") }
func (c MagicConfig) bin() []byte { return []byte(c.Magic + "bin") }

func (c MagicConfig) fail(phase errors.Phase, err error) error {
	return errors.InGame(c.Game, phase, err)
}

// classify reports the encoding declared by the magic at the start of head.
func (c MagicConfig) classify(head []byte) (Encoding, bool) {
	switch {
	case bytes.HasPrefix(head, c.txt()):
		return Text, true
	case bytes.HasPrefix(head, c.bin()):
		return Binary, true
	}
	return 0, false
}

// MagicSave is a save identified by its magic prefix, optionally zipped.
type MagicSave struct {
	cfg  MagicConfig
	data []byte
	enc  Encoding
	zip  *Archive
}

var _ Save = (*MagicSave)(nil)

// OpenMagic classifies data and validates its container.
func OpenMagic(data []byte, cfg MagicConfig) (*MagicSave, error) {
	s := &MagicSave{cfg: cfg, data: data}

	if !IsZip(data) {
		enc, ok := cfg.classify(data)
		if !ok {
			return nil, cfg.fail(errors.PhaseOpen, errors.InvalidData(errors.PhaseOpen,
				"unrecognized header, expected "+cfg.Magic+"txt or "+cfg.Magic+"bin"))
		}
		s.enc = enc
		return s, nil
	}

	if len(cfg.Entries) == 0 {
		return nil, cfg.fail(errors.PhaseOpen, errors.Unsupported(errors.PhaseOpen, "zip container"))
	}
	a, err := OpenArchive(data)
	if err != nil {
		return nil, cfg.fail(errors.PhaseOpen, err)
	}
	head, err := a.Peek(GamestateEntry, len(cfg.Magic)+3)
	if err != nil {
		return nil, cfg.fail(errors.PhaseOpen, err)
	}
	enc, ok := cfg.classify(head)
	if !ok {
		return nil, cfg.fail(errors.PhaseOpen, errors.InvalidData(errors.PhaseOpen,
			"unrecognized header in gamestate entry"))
	}
	s.zip = a
	s.enc = TextZip
	if enc == Binary {
		s.enc = BinaryZip
	}
	return s, nil
}

func (s *MagicSave) Encoding() Encoding {
	return s.enc
}

// Archive returns the zip container, or nil for an unzipped save.
func (s *MagicSave) Archive() *Archive {
	return s.zip
}

// body concatenates the configured entries with each entry's magic removed.
// Every entry must carry the magic for want.
func (s *MagicSave) body(want Encoding) ([]byte, error) {
	magic := s.cfg.txt()
	if want == Binary {
		magic = s.cfg.bin()
	}
	if s.zip == nil {
		return s.data[len(magic):], nil
	}

	var out bytes.Buffer
	for _, name := range s.cfg.Entries {
		if !s.zip.Has(name) {
			continue
		}
		raw, err := s.zip.Read(name)
		if err != nil {
			return nil, err
		}
		if !bytes.HasPrefix(raw, magic) {
			return nil, errors.InvalidData(errors.PhaseMelt, "entry "+name+" lacks "+string(magic)+" header")
		}
		out.Write(raw[len(magic):])
	}
	return out.Bytes(), nil
}

func (s *MagicSave) InflateText() (header, body []byte, err error) {
	if s.enc.IsBinary() {
		return nil, nil, s.cfg.fail(errors.PhaseMelt, errors.Unsupported(errors.PhaseMelt, "inflating a binary save as text"))
	}
	body, err = s.body(Text)
	if err != nil {
		return nil, nil, s.cfg.fail(errors.PhaseMelt, err)
	}
	return s.cfg.txt(), body, nil
}

func (s *MagicSave) Melt(res token.Resolver, opts MeltOptions) (*Melted, error) {
	if !s.enc.IsBinary() {
		return nil, s.cfg.fail(errors.PhaseMelt, errors.Unsupported(errors.PhaseMelt, "melting a text save"))
	}
	body, err := s.body(Binary)
	if err != nil {
		return nil, s.cfg.fail(errors.PhaseMelt, err)
	}
	return s.melt(body, res, opts)
}

func (s *MagicSave) melt(body []byte, res token.Resolver, opts MeltOptions) (*Melted, error) {
	header := append(s.cfg.txt(), '\n')
	m, err := NewMelter(body).Flavor(s.cfg.Flavor).Header(header).Options(opts).Melt(res)
	if err != nil {
		return nil, s.cfg.fail(errors.PhaseMelt, err)
	}
	return m, nil
}

// Meta exposes the metadata entry of a zipped save.
func (s *MagicSave) Meta() (Meta, bool) {
	if s.zip == nil || s.cfg.MetaEntry == "" || !s.zip.Has(s.cfg.MetaEntry) {
		return nil, false
	}
	head, err := s.zip.Peek(s.cfg.MetaEntry, len(s.cfg.Magic)+3)
	if err != nil {
		return nil, false
	}
	enc, ok := s.cfg.classify(head)
	if !ok {
		return nil, false
	}
	return &magicMeta{save: s, enc: enc}, true
}

type magicMeta struct {
	save *MagicSave
	enc  Encoding
}

func (m *magicMeta) Encoding() Encoding {
	return m.enc
}

func (m *magicMeta) read() ([]byte, error) {
	raw, err := m.save.zip.Read(m.save.cfg.MetaEntry)
	if err != nil {
		return nil, m.save.cfg.fail(errors.PhaseMeta, err)
	}
	return raw, nil
}

func (m *magicMeta) Text() (header, body []byte, err error) {
	if m.enc != Text {
		return nil, nil, m.save.cfg.fail(errors.PhaseMeta, errors.Unsupported(errors.PhaseMeta, "binary metadata as text"))
	}
	raw, err := m.read()
	if err != nil {
		return nil, nil, err
	}
	txt := m.save.cfg.txt()
	return txt, raw[len(txt):], nil
}

func (m *magicMeta) Melt(res token.Resolver, opts MeltOptions) (*Melted, error) {
	if m.enc != Binary {
		return nil, m.save.cfg.fail(errors.PhaseMeta, errors.Unsupported(errors.PhaseMeta, "melting text metadata"))
	}
	raw, err := m.read()
	if err != nil {
		return nil, err
	}
	return m.save.melt(raw[len(m.save.cfg.bin()):], res, opts)
}
