// Package engine runs a spell checking capability module compiled to
// WebAssembly.
//
// It backs the single-module build: instead of choosing a native binding per
// platform, one guest module is loaded with wazero and serves every platform.
//
// # Guest ABI
//
// The guest exports a memory named "memory" and the functions below. Strings
// are passed as (ptr, len) pairs of UTF-8 bytes in guest memory. Lists are
// returned as newline separated UTF-8 packed into an i64 as ptr<<32 | len; a
// negative i64 is a guest error code. The host frees every returned buffer
// with dealloc.
//
//	alloc(size i32) -> ptr i32
//	dealloc(ptr i32, size i32)
//	is_loaded() -> i32                            1 when ready
//	supported_languages() -> i64                  packed list
//	create_checker(ptr, len i32) -> i32           handle > 0, else error
//	test_spelling(h, ptr, len i32) -> i32         1 correct, 0 misspelled, <0 error
//	suggest(h, ptr, len i32) -> i64               packed list
//	add_word(h, ptr, len i32) -> i32              0 ok, else error
//	remove_word(h, ptr, len i32) -> i32           0 ok, else error
//	dispose_checker(h i32)
//
// # Instances
//
// The module is compiled once per Loader. Module-level queries run on a short
// lived instance; every checker gets an instance of its own so guest state
// is never shared between checkers. Calls into one instance are serialized.
//
// # WASI
//
// wasi_snapshot_preview1 is instantiated in the runtime so guests built with
// a WASI toolchain link. When Config.DictionaryDir is set it is mounted
// read-only at /dictionaries and DICPATH points there.
package engine
