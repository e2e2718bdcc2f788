//go:build (linux || darwin) && (amd64 || arm64)

package enchant

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"
)

// DefaultLibraries lists the names tried when no library is configured.
var DefaultLibraries = defaultLibraries()

func defaultLibraries() []string {
	if runtime.GOOS == "darwin" {
		return []string{
			"libenchant-2.dylib",
			"libenchant-2.2.dylib",
			"/opt/homebrew/lib/libenchant-2.dylib",
			"/usr/local/lib/libenchant-2.dylib",
		}
	}
	return []string{"libenchant-2.so.2", "libenchant-2.so"}
}

// library holds the bound enchant entry points.
type library struct {
	handle uintptr
	path   string

	brokerInit         func() uintptr
	brokerFree         func(broker uintptr)
	brokerRequestDict  func(broker uintptr, tag string) uintptr
	brokerFreeDict     func(broker, dict uintptr)
	brokerGetError     func(broker uintptr) unsafe.Pointer
	brokerListDicts    func(broker, fn, userData uintptr)
	dictCheck          func(dict uintptr, word string, length int) int32
	dictSuggest        func(dict uintptr, word string, length int, count *uint) unsafe.Pointer
	dictFreeStringList func(dict uintptr, list unsafe.Pointer)
	dictAdd            func(dict uintptr, word string, length int)
	dictRemove         func(dict uintptr, word string, length int)
	dictGetError       func(dict uintptr) unsafe.Pointer
}

func openLibrary(names []string) (*library, error) {
	var failures []string
	for _, name := range names {
		handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil || handle == 0 {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		lib := &library{handle: handle, path: name}
		if err := lib.bind(); err != nil {
			purego.Dlclose(handle)
			return nil, err
		}
		return lib, nil
	}
	return nil, fmt.Errorf("cannot open libenchant (%s)", strings.Join(failures, "; "))
}

func (l *library) bind() error {
	symbols := []struct {
		fn   any
		name string
	}{
		{&l.brokerInit, "enchant_broker_init"},
		{&l.brokerFree, "enchant_broker_free"},
		{&l.brokerRequestDict, "enchant_broker_request_dict"},
		{&l.brokerFreeDict, "enchant_broker_free_dict"},
		{&l.brokerGetError, "enchant_broker_get_error"},
		{&l.brokerListDicts, "enchant_broker_list_dicts"},
		{&l.dictCheck, "enchant_dict_check"},
		{&l.dictSuggest, "enchant_dict_suggest"},
		{&l.dictFreeStringList, "enchant_dict_free_string_list"},
		{&l.dictAdd, "enchant_dict_add"},
		{&l.dictRemove, "enchant_dict_remove"},
		{&l.dictGetError, "enchant_dict_get_error"},
	}
	for _, s := range symbols {
		sym, err := purego.Dlsym(l.handle, s.name)
		if err != nil {
			return fmt.Errorf("%s: missing symbol %s: %w", l.path, s.name, err)
		}
		purego.RegisterFunc(s.fn, sym)
	}
	return nil
}

// goString copies a NUL terminated C string. A nil pointer is "".
func goString(p unsafe.Pointer) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}

// goStrings copies a C array of count strings.
func goStrings(list unsafe.Pointer, count uint) []string {
	out := make([]string, 0, count)
	if list == nil {
		return out
	}
	for _, p := range unsafe.Slice((*unsafe.Pointer)(list), count) {
		out = append(out, goString(p))
	}
	return out
}
