package clausewitz

import (
	"bytes"

	"github.com/wippyai/pdsmelt/errors"
	"github.com/wippyai/pdsmelt/token"
)

// SavConfig describes a title whose saves start with a SAV header.
type SavConfig struct {
	Game   string
	Flavor Flavor
}

func (c SavConfig) fail(phase errors.Phase, err error) error {
	return errors.InGame(c.Game, phase, err)
}

// SavSave is a save laid out as header, metadata, then the gamestate either
// inline or in a zip.
type SavSave struct {
	cfg    SavConfig
	header SaveHeader
	meta   []byte
	// rest follows the header and starts with the metadata.
	rest []byte
	zip  *Archive
}

var _ Save = (*SavSave)(nil)

// OpenSav parses the header and validates the metadata bounds and container.
func OpenSav(data []byte, cfg SavConfig) (*SavSave, error) {
	h, err := ParseSaveHeader(data)
	if err != nil {
		return nil, cfg.fail(errors.PhaseOpen, err)
	}

	rest := data[SaveHeaderLen:]
	if uint64(h.MetaLen) > uint64(len(rest)) {
		return nil, cfg.fail(errors.PhaseOpen,
			errors.Truncated(errors.PhaseOpen, SaveHeaderLen, int(h.MetaLen), len(rest)))
	}
	s := &SavSave{cfg: cfg, header: h, meta: rest[:h.MetaLen], rest: rest}

	if h.Kind.Encoding().IsZip() {
		zipped := rest[h.MetaLen:]
		if !IsZip(zipped) {
			return nil, cfg.fail(errors.PhaseOpen, errors.New(errors.PhaseOpen, errors.KindZip).
				At(SaveHeaderLen+int(h.MetaLen)).
				Detail("header declares a zip but none follows the metadata").
				Build())
		}
		a, err := OpenArchive(zipped)
		if err != nil {
			return nil, cfg.fail(errors.PhaseOpen, err)
		}
		if !a.Has(GamestateEntry) {
			return nil, cfg.fail(errors.PhaseOpen, errors.NotFound(errors.PhaseOpen, "zip entry", GamestateEntry))
		}
		s.zip = a
	}
	return s, nil
}

// Header returns the parsed SAV header.
func (s *SavSave) Header() SaveHeader {
	return s.header
}

func (s *SavSave) Encoding() Encoding {
	return s.header.Kind.Encoding()
}

// gamestate returns the bytes after the metadata, inflated when zipped.
func (s *SavSave) gamestate() ([]byte, error) {
	if s.zip == nil {
		return s.rest[s.header.MetaLen:], nil
	}
	return s.zip.Read(GamestateEntry)
}

func (s *SavSave) InflateText() (header, body []byte, err error) {
	if s.Encoding().IsBinary() {
		return nil, nil, s.cfg.fail(errors.PhaseMelt, errors.Unsupported(errors.PhaseMelt, "inflating a binary save as text"))
	}
	if s.zip == nil {
		return s.header.Bytes(), s.rest, nil
	}
	state, err := s.gamestate()
	if err != nil {
		return nil, nil, s.cfg.fail(errors.PhaseMelt, err)
	}
	body = make([]byte, 0, len(s.meta)+len(state))
	body = append(append(body, s.meta...), state...)
	return s.header.WithKind(HeaderText).Bytes(), body, nil
}

// Melt melts the metadata and the gamestate separately and emits them under a
// text header whose metadata length matches the melted metadata.
func (s *SavSave) Melt(res token.Resolver, opts MeltOptions) (*Melted, error) {
	if !s.Encoding().IsBinary() {
		return nil, s.cfg.fail(errors.PhaseMelt, errors.Unsupported(errors.PhaseMelt, "melting a text save"))
	}
	state, err := s.gamestate()
	if err != nil {
		return nil, s.cfg.fail(errors.PhaseMelt, err)
	}
	return s.melt(res, opts, s.meta, state)
}

func (s *SavSave) melt(res token.Resolver, opts MeltOptions, meta, state []byte) (*Melted, error) {
	metaOut, err := NewMelter(meta).Flavor(s.cfg.Flavor).Options(opts).Melt(res)
	if err != nil {
		return nil, s.cfg.fail(errors.PhaseMelt, err)
	}

	var stateOut *Melted
	if state != nil {
		stateOut, err = NewMelter(state).Flavor(s.cfg.Flavor).Options(opts).Melt(res)
		if err != nil {
			return nil, s.cfg.fail(errors.PhaseMelt, err)
		}
	}

	h := s.header.WithKind(HeaderText)
	h.MetaLen = uint32(len(metaOut.data))
	out := h.Bytes()
	out = append(out, metaOut.data...)
	unknown := metaOut.unknown
	if stateOut != nil {
		out = append(out, stateOut.data...)
		unknown = mergeSorted(unknown, stateOut.unknown)
	}
	return &Melted{data: out, unknown: unknown}, nil
}

// mergeSorted unions two ascending id lists.
func mergeSorted(a, b []uint16) []uint16 {
	out := make([]uint16, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// Meta exposes the metadata section when the header declares one.
func (s *SavSave) Meta() (Meta, bool) {
	if s.header.MetaLen == 0 {
		return nil, false
	}
	return &savMeta{save: s}, true
}

type savMeta struct {
	save *SavSave
}

func (m *savMeta) Encoding() Encoding {
	if m.save.Encoding().IsBinary() {
		return Binary
	}
	return Text
}

// Text copies the metadata so the result does not alias the input.
func (m *savMeta) Text() (header, body []byte, err error) {
	if m.Encoding() != Text {
		return nil, nil, m.save.cfg.fail(errors.PhaseMeta, errors.Unsupported(errors.PhaseMeta, "binary metadata as text"))
	}
	return m.save.header.WithKind(HeaderText).Bytes(), bytes.Clone(m.save.meta), nil
}

func (m *savMeta) Melt(res token.Resolver, opts MeltOptions) (*Melted, error) {
	if m.Encoding() != Binary {
		return nil, m.save.cfg.fail(errors.PhaseMeta, errors.Unsupported(errors.PhaseMeta, "melting text metadata"))
	}
	return m.save.melt(res, opts, m.save.meta, nil)
}
