package engine

import (
	"strings"

	"github.com/tetratelabs/wazero/api"
)

// Guest export names.
const (
	ExportMemory             = "memory"
	ExportAlloc              = "alloc"
	ExportDealloc            = "dealloc"
	ExportIsLoaded           = "is_loaded"
	ExportSupportedLanguages = "supported_languages"
	ExportCreateChecker      = "create_checker"
	ExportTestSpelling       = "test_spelling"
	ExportSuggest            = "suggest"
	ExportAddWord            = "add_word"
	ExportRemoveWord         = "remove_word"
	ExportDisposeChecker     = "dispose_checker"
)

// Operation names used in errors.
const (
	opLoad         = "load"
	opLanguages    = "supported-languages"
	opIsLoaded     = "is-loaded"
	opNew          = "new"
	opTestSpelling = "test-spelling"
	opSuggestions  = "suggestions"
	opAddWord      = "add-word"
	opRemoveWord   = "remove-word"
)

// DictionaryMount is where Config.DictionaryDir appears inside the guest.
const DictionaryMount = "/dictionaries"

type signature struct {
	params  []api.ValueType
	results []api.ValueType
}

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

// requiredExports lists every function a guest must export.
var requiredExports = map[string]signature{
	ExportAlloc:              {[]api.ValueType{i32}, []api.ValueType{i32}},
	ExportDealloc:            {[]api.ValueType{i32, i32}, nil},
	ExportIsLoaded:           {nil, []api.ValueType{i32}},
	ExportSupportedLanguages: {nil, []api.ValueType{i64}},
	ExportCreateChecker:      {[]api.ValueType{i32, i32}, []api.ValueType{i32}},
	ExportTestSpelling:       {[]api.ValueType{i32, i32, i32}, []api.ValueType{i32}},
	ExportSuggest:            {[]api.ValueType{i32, i32, i32}, []api.ValueType{i64}},
	ExportAddWord:            {[]api.ValueType{i32, i32, i32}, []api.ValueType{i32}},
	ExportRemoveWord:         {[]api.ValueType{i32, i32, i32}, []api.ValueType{i32}},
	ExportDisposeChecker:     {[]api.ValueType{i32}, nil},
}

func (s signature) matches(def api.FunctionDefinition) bool {
	return sameValueTypes(s.params, def.ParamTypes()) && sameValueTypes(s.results, def.ResultTypes())
}

func (s signature) String() string {
	return "(" + valueTypeNames(s.params) + ") -> (" + valueTypeNames(s.results) + ")"
}

func sameValueTypes(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func valueTypeNames(ts []api.ValueType) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = api.ValueTypeName(t)
	}
	return strings.Join(names, ", ")
}

// unpackList splits a packed list result. ok is false for error codes.
func unpackList(v uint64) (ptr, length uint32, ok bool) {
	if int64(v) < 0 {
		return 0, 0, false
	}
	return uint32(v >> 32), uint32(v), true
}

// splitList splits newline separated guest output. Empty input is an empty
// list.
func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

// i32Result reads an i32 result from the raw wazero stack value.
func i32Result(v uint64) int32 {
	return int32(uint32(v))
}
