package boundary

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/pdsmelt"
	"github.com/wippyai/pdsmelt/errors"
	"github.com/wippyai/pdsmelt/format"
	"github.com/wippyai/pdsmelt/resource"
)

// Handle kinds.
const (
	KindResult resource.Kind = iota + 1
	KindFile
	KindMeta
	KindMelt
	KindError
)

func kindName(k resource.Kind) string {
	switch k {
	case KindResult:
		return "result"
	case KindFile:
		return "file"
	case KindMeta:
		return "meta"
	case KindMelt:
		return "melt"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Boundary owns the handles given to one foreign caller.
type Boundary struct {
	table  *resource.Table
	logger *zap.Logger
	format []format.Option
}

// Option configures a Boundary.
type Option func(*Boundary)

// WithLogger replaces the package logger for this Boundary.
func WithLogger(l *zap.Logger) Option {
	return func(b *Boundary) {
		b.logger = l
	}
}

// WithFormatOptions passes opts to every format.Open.
func WithFormatOptions(opts ...format.Option) Option {
	return func(b *Boundary) {
		b.format = append(b.format, opts...)
	}
}

func New(opts ...Option) *Boundary {
	b := &Boundary{
		table:  resource.NewTable(),
		logger: Logger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.table.Subscribe(handleLog{logger: b.logger})
	return b
}

// Live returns the number of outstanding handles of every kind.
func (b *Boundary) Live() int {
	return b.table.Len()
}

// Close drops every outstanding handle. Each handle still open is reported
// in the returned error.
func (b *Boundary) Close() error {
	var err error
	b.table.Each(func(h resource.Handle, k resource.Kind, _ any) bool {
		err = multierr.Append(err, fmt.Errorf("%s handle %d still open", kindName(k), h))
		return true
	})
	if err != nil {
		b.logger.Warn("closing boundary with open handles", zap.Error(err))
	}
	return multierr.Append(err, b.table.Close())
}

// guard runs fn and converts a panic into a KindPanic error.
func (b *Boundary) guard(phase errors.Phase, game string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("contained panic",
				zap.String("phase", string(phase)),
				zap.String("game", game),
				zap.Any("panic", r),
				zap.Stack("stack"))
			err = errors.Panic(phase, game, r)
		}
	}()
	return fn()
}

// OpenFile opens data as a save of game. data must stay unchanged until the
// file handle is released.
func (b *Boundary) OpenFile(game pdsmelt.Game, data []byte) resource.Handle {
	var f *format.File
	err := b.guard(errors.PhaseOpen, game.String(), func() (err error) {
		f, err = format.Open(game, data, b.format...)
		return err
	})
	return b.newResult(KindFile, f, err)
}

func (b *Boundary) file(h resource.Handle) (*format.File, bool) {
	return resource.GetAs[*format.File](b.table, h, KindFile)
}

// FileIsBinary reports whether the file holds binary content. False for an
// invalid handle.
func (b *Boundary) FileIsBinary(h resource.Handle) bool {
	f, ok := b.file(h)
	return ok && f.IsBinary()
}

type metaEntry struct {
	meta *format.Meta
	file resource.Handle
}

// FileMeta returns a metadata handle, or 0 when the title stores none. The
// file cannot be released while metadata handles derived from it are live.
func (b *Boundary) FileMeta(h resource.Handle) resource.Handle {
	f, ok := b.file(h)
	if !ok {
		return 0
	}

	var m *format.Meta
	err := b.guard(errors.PhaseMeta, f.Game().String(), func() error {
		m, ok = f.Meta()
		return nil
	})
	if err != nil || !ok {
		return 0
	}

	if !b.table.Borrow(h) {
		return 0
	}
	mh := b.table.Insert(KindMeta, &metaEntry{meta: m, file: h})
	if mh == 0 {
		b.table.ReturnBorrow(h)
	}
	return mh
}

// FileMelt melts the file into a result handle.
func (b *Boundary) FileMelt(h resource.Handle) resource.Handle {
	f, ok := b.file(h)
	if !ok {
		return b.newResult(KindMelt, nil, errors.InvalidInput(errors.PhaseHost, "invalid file handle"))
	}

	var res *format.MeltResult
	err := b.guard(errors.PhaseMelt, f.Game().String(), func() (err error) {
		res, err = f.Melt()
		return err
	})
	return b.newResult(KindMelt, res, err)
}

// MetaMelt melts the metadata into a result handle.
func (b *Boundary) MetaMelt(h resource.Handle) resource.Handle {
	m, ok := resource.GetAs[*metaEntry](b.table, h, KindMeta)
	if !ok {
		return b.newResult(KindMelt, nil, errors.InvalidInput(errors.PhaseHost, "invalid metadata handle"))
	}

	var res *format.MeltResult
	err := b.guard(errors.PhaseMeta, m.meta.File().Game().String(), func() (err error) {
		res, err = m.meta.Melt()
		return err
	})
	return b.newResult(KindMelt, res, err)
}

func (b *Boundary) melt(h resource.Handle) (*format.MeltResult, bool) {
	return resource.GetAs[*format.MeltResult](b.table, h, KindMelt)
}

// MeltLength is the size of the buffer MeltWrite needs. Zero for a verbatim
// result or an invalid handle.
func (b *Boundary) MeltLength(h resource.Handle) int {
	if r, ok := b.melt(h); ok {
		return r.Len()
	}
	return 0
}

// MeltIsVerbatim reports that the caller should use the input bytes as is.
func (b *Boundary) MeltIsVerbatim(h resource.Handle) bool {
	r, ok := b.melt(h)
	return ok && r.IsVerbatim()
}

// MeltUnknownTokens reports whether the melt met unresolved tokens.
func (b *Boundary) MeltUnknownTokens(h resource.Handle) bool {
	r, ok := b.melt(h)
	return ok && r.HasUnknownTokens()
}

// MeltWrite copies the melt output into dst and returns the number of bytes
// written. It returns 0 and leaves dst untouched when dst is shorter than
// MeltLength.
func (b *Boundary) MeltWrite(h resource.Handle, dst []byte) int {
	r, ok := b.melt(h)
	if !ok || !r.CopyTo(dst) {
		return 0
	}
	return r.Len()
}

// errorValue holds an error's message, rendered once when the error is
// extracted.
type errorValue struct {
	err error
	msg []byte
}

func (b *Boundary) errorValue(h resource.Handle) (*errorValue, bool) {
	return resource.GetAs[*errorValue](b.table, h, KindError)
}

// ErrorLength is the size of the error message. Zero for an invalid handle.
func (b *Boundary) ErrorLength(h resource.Handle) int {
	if e, ok := b.errorValue(h); ok {
		return len(e.msg)
	}
	return 0
}

// ErrorWrite copies the error message into dst. It returns -1 when the
// handle is invalid or dst is too short.
func (b *Boundary) ErrorWrite(h resource.Handle, dst []byte) int {
	e, ok := b.errorValue(h)
	if !ok || len(dst) < len(e.msg) {
		return -1
	}
	return copy(dst, e.msg)
}

// Err returns the error behind an error handle.
func (b *Boundary) Err(h resource.Handle) (error, bool) {
	e, ok := b.errorValue(h)
	if !ok {
		return nil, false
	}
	return e.err, true
}

func (b *Boundary) release(h resource.Handle, kind resource.Kind) (any, bool) {
	v, err := b.table.Release(h, kind)
	if err != nil {
		b.logger.Debug("release refused",
			zap.Uint32("handle", uint32(h)),
			zap.String("kind", kindName(kind)),
			zap.Error(err))
		return nil, false
	}
	return v, true
}

// ReleaseFile drops a file handle. It is refused while metadata handles
// derived from the file are live.
func (b *Boundary) ReleaseFile(h resource.Handle) bool {
	_, ok := b.release(h, KindFile)
	return ok
}

func (b *Boundary) ReleaseMeta(h resource.Handle) bool {
	v, ok := b.release(h, KindMeta)
	if ok {
		b.table.ReturnBorrow(v.(*metaEntry).file)
	}
	return ok
}

func (b *Boundary) ReleaseMelt(h resource.Handle) bool {
	_, ok := b.release(h, KindMelt)
	return ok
}

func (b *Boundary) ReleaseError(h resource.Handle) bool {
	_, ok := b.release(h, KindError)
	return ok
}
