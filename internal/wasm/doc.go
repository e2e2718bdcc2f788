// Package wasm encodes small WebAssembly core modules.
//
// It covers the subset needed to produce capability guests in tests and
// tooling: function types, functions, one memory, globals, exports, active
// data segments and raw instruction bodies.
//
//	m := &wasm.Module{
//	    Types:    []wasm.FuncType{{Results: []wasm.ValType{wasm.ValI32}}},
//	    Memories: []wasm.Memory{{Min: 1}},
//	    Funcs:    []wasm.Func{{Type: 0, Body: wasm.Expr(wasm.I32Const(1))}},
//	    Exports:  []wasm.Export{{Name: "is_loaded", Kind: wasm.KindFunc, Idx: 0}},
//	}
//	bin := m.Encode()
package wasm
