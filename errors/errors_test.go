package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
		prefix   string
	}{
		{
			name: "collaborator error",
			err: New(PhaseMelt, KindTruncated).
				Game("eu4").
				At(12).
				Detail("i32 payload").
				Build(),
			prefix:   "eu4 error: ",
			contains: []string{"[melt]", "truncated", "at offset 12", "i32 payload"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseOpen,
				Kind:  KindInvalidData,
			},
			prefix:   "[open]",
			contains: []string{"invalid_data"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseTokens,
				Kind:   KindNotFound,
				Detail: "table missing",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[tokens]", "not_found", "table missing", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			if tt.prefix != "" && !strings.HasPrefix(msg, tt.prefix) {
				t.Errorf("error message %q does not start with %q", msg, tt.prefix)
			}
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseOpen,
		Kind:  KindZip,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseMelt,
		Kind:  KindUnknownToken,
		Game:  "ck3",
	}

	if !err.Is(&Error{Phase: PhaseMelt, Kind: KindUnknownToken}) {
		t.Error("Is should match same phase and kind")
	}

	if !err.Is(&Error{Kind: KindUnknownToken}) {
		t.Error("empty phase should act as wildcard")
	}

	if !err.Is(&Error{Kind: KindUnknownToken, Game: "ck3"}) {
		t.Error("Is should match same game")
	}

	if err.Is(&Error{Kind: KindUnknownToken, Game: "eu4"}) {
		t.Error("Is should not match different game")
	}

	if err.Is(&Error{Phase: PhaseOpen, Kind: KindUnknownToken}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseMelt, Kind: KindZip}) {
		t.Error("Is should not match different kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseOpen, KindZip).
		Game("vic3").
		At(7).
		Cause(cause).
		Detail("entry %q", "gamestate").
		Build()

	if err.Phase != PhaseOpen {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseOpen)
	}
	if err.Kind != KindZip {
		t.Errorf("Kind = %v, want %v", err.Kind, KindZip)
	}
	if err.Game != "vic3" {
		t.Errorf("Game = %v, want vic3", err.Game)
	}
	if !err.Located() || err.Offset != 7 {
		t.Errorf("Offset = %v (located %v), want 7", err.Offset, err.Located())
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != `entry "gamestate"` {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Truncated", func(t *testing.T) {
		err := Truncated(PhaseMelt, 30, 4, 1)
		if err.Kind != KindTruncated || err.Offset != 30 {
			t.Errorf("got %v", err)
		}
		if !strings.Contains(err.Detail, "need 4 bytes, have 1") {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("UnknownToken", func(t *testing.T) {
		err := UnknownToken(PhaseMelt, 0x2c23, 2)
		if err.Kind != KindUnknownToken {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnknownToken)
		}
		if !strings.Contains(err.Detail, "0x2c23") {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("Zip", func(t *testing.T) {
		err := Zip(PhaseOpen, errors.New("bad"), "gamestate")
		if err.Kind != KindZip || err.Cause == nil {
			t.Errorf("got %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseTokens, "file", "eu4.txt")
		if err.Kind != KindNotFound || !strings.Contains(err.Detail, "eu4.txt") {
			t.Errorf("got %v", err)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseMeta, "hoi4 metadata")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})
}

func TestInGame(t *testing.T) {
	if InGame("eu4", PhaseOpen, nil) != nil {
		t.Fatal("nil error should stay nil")
	}

	structured := InvalidData(PhaseMelt, "unbalanced close")
	tagged := InGame("eu4", PhaseOpen, structured)
	if tagged.Game != "eu4" || tagged.Phase != PhaseMelt {
		t.Errorf("tagged = %+v", tagged)
	}
	if structured.Game != "" {
		t.Error("InGame must not modify the original error")
	}

	plain := fmt.Errorf("boom")
	wrapped := InGame("ck3", PhaseOpen, plain)
	if wrapped.Kind != KindInvalidData || wrapped.Phase != PhaseOpen {
		t.Errorf("wrapped = %+v", wrapped)
	}
	if !errors.Is(wrapped, plain) {
		t.Error("wrapped error should keep its cause")
	}
	if !strings.HasPrefix(wrapped.Error(), "ck3 error: ") {
		t.Errorf("message = %q", wrapped.Error())
	}
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(PhaseMelt, "hoi4", &err)
		var table []int
		_ = table[3]
		return nil
	}

	err := run()
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	if !errors.Is(err, ErrPanic) {
		t.Errorf("expected panic kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "index out of range") {
		t.Errorf("message should carry panic value: %q", err.Error())
	}

	clean := func() (err error) {
		defer Recover(PhaseMelt, "hoi4", &err)
		return nil
	}
	if err := clean(); err != nil {
		t.Errorf("no panic should leave err nil, got %v", err)
	}
}
