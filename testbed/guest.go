package testbed

import (
	"github.com/wippyai/spellcheck/internal/wasm"
)

// Languages and suggestions served by the reference guest.
const (
	Languages   = "en-US\nfr-FR"
	Suggestions = "Hello\nHallo"

	// ErrorCode is returned by test_spelling for words over MaxWordLen bytes.
	ErrorCode  = -5
	MaxWordLen = 20

	// DeallocCount names the export returning how many times dealloc ran.
	DeallocCount = "dealloc_count"
)

const (
	languagesAt   = 0
	suggestionsAt = 16
	heapBase      = 1024
)

// Options alters the reference guest.
type Options struct {
	// NotLoaded makes is_loaded report 0.
	NotLoaded bool
	// Omit drops the named export.
	Omit string
	// BadSignature gives the named export a (i32) -> i32 signature instead.
	BadSignature string
	// EmptySuggestions makes suggest return a zero-length list at a
	// non-zero address.
	EmptySuggestions bool
}

var (
	i32 = wasm.ValI32
	i64 = wasm.ValI64
)

// Guest returns the encoded reference guest.
func Guest(opts Options) []byte {
	m := &wasm.Module{
		Memories: []wasm.Memory{{Min: 1}},
		Globals: []wasm.Global{
			{Type: i32, Mutable: true, Init: wasm.Expr(wasm.I32Const(heapBase))},
			{Type: i32, Mutable: true, Init: wasm.Expr(wasm.I32Const(0))},
		},
		Data: []wasm.Data{
			{Offset: languagesAt, Bytes: []byte(Languages)},
			{Offset: suggestionsAt, Bytes: []byte(Suggestions)},
		},
	}
	if opts.Omit != "memory" {
		m.Exports = append(m.Exports, wasm.Export{Name: "memory", Kind: wasm.KindMemory})
	}

	loaded := int32(1)
	if opts.NotLoaded {
		loaded = 0
	}
	word := []wasm.ValType{i32, i32, i32}
	suggestLen := uint32(len(Suggestions))
	if opts.EmptySuggestions {
		suggestLen = 0
	}

	funcs := []struct {
		name string
		ft   wasm.FuncType
		body []byte
	}{
		// bump allocator: returns the heap pointer, then advances it
		{"alloc", wasm.FuncType{Params: []wasm.ValType{i32}, Results: []wasm.ValType{i32}}, wasm.Expr(
			wasm.GlobalGet(0), wasm.GlobalGet(0), wasm.LocalGet(0), wasm.Op(wasm.OpI32Add), wasm.GlobalSet(0),
		)},
		// counts calls so tests can check that every list is released
		{"dealloc", wasm.FuncType{Params: []wasm.ValType{i32, i32}}, wasm.Expr(
			wasm.GlobalGet(1), wasm.I32Const(1), wasm.Op(wasm.OpI32Add), wasm.GlobalSet(1),
		)},
		{DeallocCount, wasm.FuncType{Results: []wasm.ValType{i32}}, wasm.Expr(wasm.GlobalGet(1))},
		{"is_loaded", wasm.FuncType{Results: []wasm.ValType{i32}}, wasm.Expr(wasm.I32Const(loaded))},
		{"supported_languages", wasm.FuncType{Results: []wasm.ValType{i64}}, wasm.Expr(
			wasm.I64Const(wasm.PackPtrLen(languagesAt, uint32(len(Languages)))),
		)},
		// accepts five byte tags
		{"create_checker", wasm.FuncType{Params: []wasm.ValType{i32, i32}, Results: []wasm.ValType{i32}}, wasm.Expr(
			wasm.LocalGet(1), wasm.I32Const(5), wasm.Op(wasm.OpI32Eq),
		)},
		{"test_spelling", wasm.FuncType{Params: word, Results: []wasm.ValType{i32}}, wasm.Expr(
			wasm.LocalGet(2), wasm.I32Const(MaxWordLen), wasm.Op(wasm.OpI32GtU),
			[]byte{wasm.OpIf, wasm.BlockTypeVoid}, wasm.I32Const(ErrorCode), wasm.Op(wasm.OpReturn), wasm.Op(wasm.OpEnd),
			wasm.LocalGet(2), wasm.I32Const(5), wasm.Op(wasm.OpI32Eq),
		)},
		{"suggest", wasm.FuncType{Params: word, Results: []wasm.ValType{i64}}, wasm.Expr(
			wasm.I64Const(wasm.PackPtrLen(suggestionsAt, suggestLen)),
		)},
		{"add_word", wasm.FuncType{Params: word, Results: []wasm.ValType{i32}}, wasm.Expr(wasm.I32Const(0))},
		{"remove_word", wasm.FuncType{Params: word, Results: []wasm.ValType{i32}}, wasm.Expr(wasm.I32Const(0))},
		{"dispose_checker", wasm.FuncType{Params: []wasm.ValType{i32}}, wasm.Expr()},
	}

	for _, f := range funcs {
		if f.name == opts.Omit {
			continue
		}
		if f.name == opts.BadSignature {
			m.AddFunc(f.name, wasm.FuncType{Params: []wasm.ValType{i32}, Results: []wasm.ValType{i32}}, wasm.Expr(wasm.LocalGet(0)))
			continue
		}
		m.AddFunc(f.name, f.ft, f.body)
	}
	return m.Encode()
}
