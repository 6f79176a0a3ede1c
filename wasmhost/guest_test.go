package wasmhost

import (
	"github.com/tetratelabs/wazero/api"
)

// forwardingGuest builds a module that imports every host function from
// ModuleName and exports a same-named function calling it. The module owns
// one page of memory exported as "memory", so host calls see the guest as
// their caller.
func forwardingGuest(funcs []Function) []byte {
	wasm := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	wasm = section(wasm, 0x01, typeSection(funcs))
	wasm = section(wasm, 0x02, importSection(funcs))
	wasm = section(wasm, 0x03, funcSection(funcs))
	wasm = section(wasm, 0x05, []byte{0x01, 0x00, 0x01})
	wasm = section(wasm, 0x07, exportSection(funcs))
	wasm = section(wasm, 0x0a, codeSection(funcs))
	return wasm
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			return out
		}
	}
}

func section(wasm []byte, id byte, body []byte) []byte {
	wasm = append(wasm, id)
	wasm = append(wasm, uleb(uint32(len(body)))...)
	return append(wasm, body...)
}

func name(out []byte, s string) []byte {
	out = append(out, uleb(uint32(len(s)))...)
	return append(out, s...)
}

func valTypes(out []byte, types []api.ValueType) []byte {
	out = append(out, uleb(uint32(len(types)))...)
	for _, t := range types {
		out = append(out, t)
	}
	return out
}

func typeSection(funcs []Function) []byte {
	out := uleb(uint32(len(funcs)))
	for _, f := range funcs {
		out = append(out, 0x60)
		out = valTypes(out, f.Params)
		out = valTypes(out, f.Results)
	}
	return out
}

func importSection(funcs []Function) []byte {
	out := uleb(uint32(len(funcs)))
	for i, f := range funcs {
		out = name(out, ModuleName)
		out = name(out, f.Name)
		out = append(out, 0x00)
		out = append(out, uleb(uint32(i))...)
	}
	return out
}

func funcSection(funcs []Function) []byte {
	out := uleb(uint32(len(funcs)))
	for i := range funcs {
		out = append(out, uleb(uint32(i))...)
	}
	return out
}

func exportSection(funcs []Function) []byte {
	out := uleb(uint32(len(funcs) + 1))
	out = name(out, "memory")
	out = append(out, 0x02, 0x00)
	for i, f := range funcs {
		out = name(out, f.Name)
		out = append(out, 0x00)
		out = append(out, uleb(uint32(len(funcs)+i))...)
	}
	return out
}

func codeSection(funcs []Function) []byte {
	out := uleb(uint32(len(funcs)))
	for i, f := range funcs {
		body := []byte{0x00}
		for p := range f.Params {
			body = append(body, 0x20)
			body = append(body, uleb(uint32(p))...)
		}
		body = append(body, 0x10)
		body = append(body, uleb(uint32(i))...)
		body = append(body, 0x0b)

		out = append(out, uleb(uint32(len(body)))...)
		out = append(out, body...)
	}
	return out
}
