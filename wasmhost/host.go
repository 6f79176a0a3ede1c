package wasmhost

import (
	"bytes"
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/pdsmelt"
	"github.com/wippyai/pdsmelt/boundary"
	"github.com/wippyai/pdsmelt/errors"
	"github.com/wippyai/pdsmelt/resource"
)

// ModuleName is the import module guests link against.
const ModuleName = "pdsmelt"

// Function describes one host function.
type Function struct {
	Name    string
	Params  []api.ValueType
	Results []api.ValueType
	fn      api.GoModuleFunc
}

// Host serves one Boundary to the guests of a runtime.
type Host struct {
	b *boundary.Boundary
}

func New(b *boundary.Boundary) *Host {
	return &Host{b: b}
}

// Instantiate defines the host module in r.
func (h *Host) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	builder := r.NewHostModuleBuilder(ModuleName)
	for _, f := range h.Functions() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.fn, f.Params, f.Results).
			Export(f.Name)
	}
	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "instantiate host module")
	}
	return mod, nil
}

func i32s(n int) []api.ValueType {
	out := make([]api.ValueType, n)
	for i := range out {
		out[i] = api.ValueTypeI32
	}
	return out
}

func handle(stack []uint64, i int) resource.Handle {
	return resource.Handle(api.DecodeU32(stack[i]))
}

func flag(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

// unary adapts a handle -> i32 operation.
func unary(name string, fn func(resource.Handle) uint64) Function {
	return Function{
		Name:    name,
		Params:  i32s(1),
		Results: i32s(1),
		fn: func(_ context.Context, _ api.Module, stack []uint64) {
			stack[0] = fn(handle(stack, 0))
		},
	}
}

func handleResult(fn func(resource.Handle) resource.Handle) func(resource.Handle) uint64 {
	return func(h resource.Handle) uint64 {
		return api.EncodeU32(uint32(fn(h)))
	}
}

func boolResult(fn func(resource.Handle) bool) func(resource.Handle) uint64 {
	return func(h resource.Handle) uint64 {
		return flag(fn(h))
	}
}

// Functions lists the host functions in export order.
func (h *Host) Functions() []Function {
	b := h.b
	funcs := make([]Function, 0, 26)
	for _, game := range pdsmelt.Games {
		funcs = append(funcs, h.open(game))
	}
	return append(funcs,
		unary("file_error", handleResult(b.FileError)),
		unary("file_value", handleResult(b.FileValue)),
		unary("file_is_binary", boolResult(b.FileIsBinary)),
		unary("file_meta", handleResult(b.FileMeta)),
		unary("file_melt", handleResult(b.FileMelt)),
		unary("meta_melt", handleResult(b.MetaMelt)),
		unary("melt_error", handleResult(b.MeltError)),
		unary("melt_value", handleResult(b.MeltValue)),
		unary("melt_length", h.meltLength),
		unary("melt_is_verbatim", boolResult(b.MeltIsVerbatim)),
		unary("melt_unknown_tokens", boolResult(b.MeltUnknownTokens)),
		h.write("melt_write", b.MeltWrite, 0),
		unary("error_length", h.errorLength),
		h.write("error_write", b.ErrorWrite, -1),
		unary("free_file", boolResult(b.ReleaseFile)),
		unary("free_meta", boolResult(b.ReleaseMeta)),
		unary("free_result", boolResult(b.ReleaseResult)),
		unary("free_melt", boolResult(b.ReleaseMelt)),
		unary("free_error", boolResult(b.ReleaseError)),
	)
}

func (h *Host) open(game pdsmelt.Game) Function {
	return Function{
		Name:    "open_" + game.String(),
		Params:  i32s(2),
		Results: i32s(1),
		fn: func(_ context.Context, mod api.Module, stack []uint64) {
			ptr, size := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
			view, ok := mod.Memory().Read(ptr, size)
			if !ok {
				Logger().Debug("open outside guest memory",
					zap.String("game", game.String()),
					zap.Uint32("ptr", ptr),
					zap.Uint32("len", size))
				err := errors.New(errors.PhaseHost, errors.KindInvalidInput).
					Game(game.String()).
					Detail("input [%d, +%d) is outside guest memory", ptr, size).
					Build()
				stack[0] = api.EncodeU32(uint32(h.b.OpenFailed(err)))
				return
			}
			stack[0] = api.EncodeU32(uint32(h.b.OpenFile(game, bytes.Clone(view))))
		},
	}
}

func (h *Host) meltLength(m resource.Handle) uint64 {
	n, ok := boundary.Narrow[int32](h.b.MeltLength(m))
	if !ok {
		return api.EncodeI32(-1)
	}
	return api.EncodeI32(n)
}

func (h *Host) errorLength(e resource.Handle) uint64 {
	n, _ := boundary.Narrow[int32](h.b.ErrorLength(e))
	return api.EncodeI32(n)
}

// write adapts a two-phase write into guest memory. short is returned when
// the guest range is out of bounds.
func (h *Host) write(name string, fn func(resource.Handle, []byte) int, short int32) Function {
	return Function{
		Name:    name,
		Params:  i32s(3),
		Results: i32s(1),
		fn: func(_ context.Context, mod api.Module, stack []uint64) {
			hd := handle(stack, 0)
			ptr, size := api.DecodeU32(stack[1]), api.DecodeU32(stack[2])
			dst, ok := mod.Memory().Read(ptr, size)
			if !ok {
				stack[0] = api.EncodeI32(short)
				return
			}
			n, ok := boundary.Narrow[int32](fn(hd, dst))
			if !ok {
				n = short
			}
			stack[0] = api.EncodeI32(n)
		},
	}
}
