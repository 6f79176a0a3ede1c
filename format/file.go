package format

import (
	"github.com/wippyai/pdsmelt"
	"github.com/wippyai/pdsmelt/clausewitz"
	"github.com/wippyai/pdsmelt/errors"
	"github.com/wippyai/pdsmelt/save/ck3"
	"github.com/wippyai/pdsmelt/save/eu4"
	"github.com/wippyai/pdsmelt/save/eu5"
	"github.com/wippyai/pdsmelt/save/hoi4"
	"github.com/wippyai/pdsmelt/save/imperator"
	"github.com/wippyai/pdsmelt/save/vic3"
	"github.com/wippyai/pdsmelt/token"
)

var meltOptions = clausewitz.MeltOptions{
	OnFailedResolve: clausewitz.FailedResolveStringify,
	Verbatim:        true,
}

// File is an opened save of one title. It borrows the bytes passed to Open,
// which must stay unchanged for the life of the File.
type File struct {
	game pdsmelt.Game
	save clausewitz.Save
	res  token.Resolver
}

// Option configures Open.
type Option func(*File)

// WithResolver replaces the process-wide token table of the game.
func WithResolver(res token.Resolver) Option {
	return func(f *File) {
		f.res = res
	}
}

// Open classifies data with the collaborator for game.
func Open(game pdsmelt.Game, data []byte, opts ...Option) (_ *File, err error) {
	defer errors.Recover(errors.PhaseOpen, game.String(), &err)

	s, err := openSave(game, data)
	if err != nil {
		return nil, err
	}

	f := &File{game: game, save: s}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func openSave(game pdsmelt.Game, data []byte) (clausewitz.Save, error) {
	switch game {
	case pdsmelt.EU4:
		return asSave(eu4.Open(data))
	case pdsmelt.CK3:
		return asSave(ck3.Open(data))
	case pdsmelt.Imperator:
		return asSave(imperator.Open(data))
	case pdsmelt.HOI4:
		return asSave(hoi4.Open(data))
	case pdsmelt.Vic3:
		return asSave(vic3.Open(data))
	case pdsmelt.EU5:
		return asSave(eu5.Open(data))
	}
	return nil, errors.InvalidInput(errors.PhaseOpen, "unsupported game "+game.String())
}

// asSave keeps a failed constructor's nil pointer out of the interface.
func asSave[T clausewitz.Save](s T, err error) (clausewitz.Save, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (f *File) Game() pdsmelt.Game {
	return f.game
}

func (f *File) Encoding() clausewitz.Encoding {
	return f.save.Encoding()
}

// IsBinary reports whether Melt will translate binary content.
func (f *File) IsBinary() bool {
	return f.save.Encoding().IsBinary()
}

func (f *File) resolver() token.Resolver {
	if f.res != nil {
		return f.res
	}
	return token.For(f.game)
}

// Melt converts the save to text according to its encoding.
func (f *File) Melt() (_ *MeltResult, err error) {
	defer errors.Recover(errors.PhaseMelt, f.game.String(), &err)

	switch f.save.Encoding() {
	case clausewitz.Text:
		return verbatim(), nil
	case clausewitz.TextZip:
		header, body, err := f.save.InflateText()
		if err != nil {
			return nil, err
		}
		return text(header, body), nil
	default:
		melted, err := f.save.Melt(f.resolver(), meltOptions)
		if err != nil {
			return nil, err
		}
		return binary(melted), nil
	}
}

// Meta returns the metadata section when the title stores one that can be
// read on its own. HOI4 never does.
func (f *File) Meta() (*Meta, bool) {
	m, err := f.meta()
	if err != nil || m == nil {
		return nil, false
	}
	return m, true
}

func (f *File) meta() (_ *Meta, err error) {
	defer errors.Recover(errors.PhaseMeta, f.game.String(), &err)

	cm, ok := f.save.Meta()
	if !ok {
		return nil, nil
	}
	return &Meta{file: f, meta: cm}, nil
}

// Meta is the metadata section of a File and must not outlive it.
type Meta struct {
	file *File
	meta clausewitz.Meta
}

func (m *Meta) File() *File {
	return m.file
}

func (m *Meta) Encoding() clausewitz.Encoding {
	return m.meta.Encoding()
}

func (m *Meta) IsBinary() bool {
	return m.meta.Encoding().IsBinary()
}

// Melt converts the metadata to text. Text metadata is returned with its
// header since it has no standalone bytes a caller could reuse.
func (m *Meta) Melt() (_ *MeltResult, err error) {
	defer errors.Recover(errors.PhaseMeta, m.file.game.String(), &err)

	if !m.meta.Encoding().IsBinary() {
		header, body, err := m.meta.Text()
		if err != nil {
			return nil, err
		}
		return text(header, body), nil
	}
	melted, err := m.meta.Melt(m.file.resolver(), meltOptions)
	if err != nil {
		return nil, err
	}
	return binary(melted), nil
}
