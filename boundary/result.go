package boundary

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/pdsmelt/errors"
	"github.com/wippyai/pdsmelt/resource"
)

type resultState uint8

const (
	unconsumed resultState = iota
	consumed
)

// result is a Boundary Result: a value of kind, or an error.
type result struct {
	kind  resource.Kind
	value any
	err   error
	state resultState
}

func (b *Boundary) newResult(kind resource.Kind, value any, err error) resource.Handle {
	r := &result{kind: kind}
	if err != nil {
		if stderrors.Is(err, errors.ErrPanic) {
			b.logger.Error("operation aborted", zap.String("kind", kindName(kind)), zap.Error(err))
		}
		r.err = err
	} else {
		r.value = value
	}
	return b.table.Insert(KindResult, r)
}

func (b *Boundary) result(h resource.Handle, kind resource.Kind) (*result, bool) {
	r, ok := resource.GetAs[*result](b.table, h, KindResult)
	if !ok || r.kind != kind || r.state != unconsumed {
		return nil, false
	}
	return r, true
}

// takeError moves the error out of an unconsumed failed result.
func (b *Boundary) takeError(h resource.Handle, kind resource.Kind) resource.Handle {
	r, ok := b.result(h, kind)
	if !ok || r.err == nil {
		return 0
	}
	r.state = consumed
	e := &errorValue{err: r.err, msg: []byte(r.err.Error())}
	r.err = nil
	return b.table.Insert(KindError, e)
}

// takeValue moves the value out of an unconsumed successful result.
func (b *Boundary) takeValue(h resource.Handle, kind resource.Kind) resource.Handle {
	r, ok := b.result(h, kind)
	if !ok || r.err != nil {
		return 0
	}
	r.state = consumed
	v := r.value
	r.value = nil
	return b.table.Insert(kind, v)
}

// FileError extracts the error of a failed OpenFile.
func (b *Boundary) FileError(h resource.Handle) resource.Handle {
	return b.takeError(h, KindFile)
}

// FileValue extracts the file of a successful OpenFile.
func (b *Boundary) FileValue(h resource.Handle) resource.Handle {
	return b.takeValue(h, KindFile)
}

// MeltError extracts the error of a failed melt.
func (b *Boundary) MeltError(h resource.Handle) resource.Handle {
	return b.takeError(h, KindMelt)
}

// MeltValue extracts the output of a successful melt.
func (b *Boundary) MeltValue(h resource.Handle) resource.Handle {
	return b.takeValue(h, KindMelt)
}

// ReleaseResult drops a result handle and, if nothing was extracted, its payload.
func (b *Boundary) ReleaseResult(h resource.Handle) bool {
	_, ok := b.release(h, KindResult)
	return ok
}

// OpenFailed returns a file result holding err. Hosts use it when the
// caller's input cannot be read at all.
func (b *Boundary) OpenFailed(err error) resource.Handle {
	return b.newResult(KindFile, nil, err)
}
