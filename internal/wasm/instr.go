package wasm

// Instruction helpers return encoded instructions. Concatenate them with
// Expr to form a function body.

// I32Const encodes i32.const v.
func I32Const(v int32) []byte {
	return AppendLEB128s([]byte{OpI32Const}, int64(v))
}

// I64Const encodes i64.const v.
func I64Const(v int64) []byte {
	return AppendLEB128s([]byte{OpI64Const}, v)
}

// LocalGet encodes local.get idx.
func LocalGet(idx uint32) []byte {
	return AppendLEB128u([]byte{OpLocalGet}, uint64(idx))
}

// GlobalGet encodes global.get idx.
func GlobalGet(idx uint32) []byte {
	return AppendLEB128u([]byte{OpGlobalGet}, uint64(idx))
}

// GlobalSet encodes global.set idx.
func GlobalSet(idx uint32) []byte {
	return AppendLEB128u([]byte{OpGlobalSet}, uint64(idx))
}

// Op encodes a single-byte instruction.
func Op(op byte) []byte {
	return []byte{op}
}

// Expr concatenates instructions and appends the terminating end opcode.
func Expr(instrs ...[]byte) []byte {
	var out []byte
	for _, in := range instrs {
		out = append(out, in...)
	}
	return append(out, OpEnd)
}

// PackPtrLen packs a guest pointer and length into the i64 returned by
// list-producing capability exports.
func PackPtrLen(ptr, length uint32) int64 {
	return int64(uint64(ptr)<<32 | uint64(length))
}
