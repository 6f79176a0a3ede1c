package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseOpen   Phase = "open"   // encoding detection and container validation
	PhaseMeta   Phase = "meta"   // metadata extraction
	PhaseMelt   Phase = "melt"   // binary to text conversion
	PhaseWrite  Phase = "write"  // copying results into caller buffers
	PhaseTokens Phase = "tokens" // token table loading
	PhaseHost   Phase = "host"   // foreign boundary entry points
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidData  Kind = "invalid_data"
	KindTruncated    Kind = "truncated"
	KindZip          Kind = "zip"
	KindUnknownToken Kind = "unknown_token"
	KindUnsupported  Kind = "unsupported"
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindPanic        Kind = "panic"
)

// ErrPanic matches any error produced by a trapped panic.
var ErrPanic = &Error{Kind: KindPanic}

// Error is the structured error type used throughout the melter
type Error struct {
	Cause   error
	Phase   Phase
	Kind    Kind
	Game    string
	Detail  string
	Offset  int
	located bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Game != "" {
		b.WriteString(e.Game)
		b.WriteString(" error: ")
	}

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.located {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Empty Phase or Game on the
// target act as wildcards.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return t.Game == "" || t.Game == e.Game
}

// Located reports whether the error carries an input offset.
func (e *Error) Located() bool {
	return e.located
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Game sets the collaborator family
func (b *Builder) Game(game string) *Builder {
	b.err.Game = game
	return b
}

// At sets the byte offset into the input
func (b *Builder) At(offset int) *Builder {
	b.err.Offset = offset
	b.err.located = true
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// Truncated creates an error for input that ends before a value is complete
func Truncated(phase Phase, offset, want, have int) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTruncated,
		Detail:  fmt.Sprintf("need %d bytes, have %d", want, have),
		Offset:  offset,
		located: true,
	}
}

// Zip creates a zip container error
func Zip(phase Phase, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindZip,
		Detail: detail,
		Cause:  cause,
	}
}

// UnknownToken creates an error for a token absent from the resolver
func UnknownToken(phase Phase, id uint16, offset int) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindUnknownToken,
		Detail:  fmt.Sprintf("unresolved token 0x%04x", id),
		Offset:  offset,
		located: true,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Panic creates the internal fault error for a recovered panic value.
func Panic(phase Phase, game string, recovered any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindPanic,
		Game:   game,
		Detail: fmt.Sprint(recovered),
	}
}

// InGame tags err with a collaborator family. Structured errors keep their
// phase and kind; anything else becomes invalid data in the given phase.
func InGame(game string, phase Phase, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		tagged := *e
		if tagged.Game == "" {
			tagged.Game = game
		}
		return &tagged
	}
	return &Error{
		Phase: phase,
		Kind:  KindInvalidData,
		Game:  game,
		Cause: err,
	}
}

// Recover converts a panic in the deferring function into a KindPanic error
// stored in *errp. It must be deferred directly:
//
//	defer errors.Recover(errors.PhaseMelt, "ck3", &err)
func Recover(phase Phase, game string, errp *error) {
	if r := recover(); r != nil {
		*errp = Panic(phase, game, r)
	}
}
