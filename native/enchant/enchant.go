//go:build (linux || darwin) && (amd64 || arm64)

package enchant

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/errors"
)

var (
	loadMu sync.Mutex
	loaded = map[string]*Module{}
)

// Load opens libenchant and returns the process-wide module for it. An empty
// library tries DefaultLibraries. Failures are not remembered, so a later
// call retries.
func Load(library string, logger *zap.Logger) (capability.Module, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loadMu.Lock()
	defer loadMu.Unlock()

	if m, ok := loaded[library]; ok {
		return m, nil
	}

	names := DefaultLibraries
	if library != "" {
		names = []string{library}
	}
	lib, err := openLibrary(names)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, "load", err, "")
	}

	broker := lib.brokerInit()
	if broker == 0 {
		purego.Dlclose(lib.handle)
		return nil, errors.NativeFailure(errors.PhaseLoad, "load", 0, "enchant_broker_init returned NULL")
	}

	m := &Module{lib: lib, broker: broker, logger: logger}
	loaded[library] = m
	logger.Debug("libenchant loaded", zap.String("library", lib.path))
	return m, nil
}

// Module is a loaded enchant broker. Enchant is not thread safe, so every
// call into the library holds mu.
type Module struct {
	lib    *library
	broker uintptr
	logger *zap.Logger
	mu     sync.Mutex
}

// listing receives tags from the list_dicts callback. Guarded by listMu.
var (
	listMu     sync.Mutex
	listing    []string
	listDictFn uintptr
	listOnce   sync.Once
)

func describeDict(tag, _, _, _, _ unsafe.Pointer) {
	listing = appendUnique(listing, fromEnchantTag(goString(tag)))
}

// SupportedLanguages lists every dictionary any enchant provider offers.
func (m *Module) SupportedLanguages() ([]string, error) {
	listOnce.Do(func() {
		listDictFn = purego.NewCallback(describeDict)
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	listMu.Lock()
	defer listMu.Unlock()

	listing = []string{}
	m.lib.brokerListDicts(m.broker, listDictFn, 0)
	langs := listing
	listing = nil
	return langs, nil
}

// IsLoaded reports whether the broker is live.
func (m *Module) IsLoaded() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.broker != 0, nil
}

// NewChecker requests the dictionary for language.
func (m *Module) NewChecker(language string) (capability.Checker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dict := m.lib.brokerRequestDict(m.broker, toEnchantTag(language))
	if dict == 0 {
		detail := fmt.Sprintf("no dictionary for %q", language)
		if msg := goString(m.lib.brokerGetError(m.broker)); msg != "" {
			detail += ": " + msg
		}
		return nil, errors.NativeFailure(errors.PhaseCreate, "new", 0, detail)
	}
	return &Checker{mod: m, dict: dict}, nil
}

// Checker is one enchant dictionary.
type Checker struct {
	mod  *Module
	dict uintptr
}

// TestSpelling implements capability.Checker.
func (c *Checker) TestSpelling(word string) (bool, error) {
	c.mod.mu.Lock()
	defer c.mod.mu.Unlock()

	rc := c.mod.lib.dictCheck(c.dict, word, len(word))
	if rc < 0 {
		return false, c.dictError("test-spelling", int64(rc))
	}
	return rc == 0, nil
}

// Suggestions implements capability.Checker.
func (c *Checker) Suggestions(word string) ([]string, error) {
	c.mod.mu.Lock()
	defer c.mod.mu.Unlock()

	var count uint
	list := c.mod.lib.dictSuggest(c.dict, word, len(word), &count)
	if list == nil {
		if msg := goString(c.mod.lib.dictGetError(c.dict)); msg != "" {
			return nil, errors.NativeFailure(errors.PhaseCall, "suggestions", 0, msg)
		}
		return []string{}, nil
	}
	defer c.mod.lib.dictFreeStringList(c.dict, list)
	return goStrings(list, count), nil
}

// AddWord adds word to the personal word list.
func (c *Checker) AddWord(word string) error {
	c.mod.mu.Lock()
	defer c.mod.mu.Unlock()

	c.mod.lib.dictAdd(c.dict, word, len(word))
	return c.lastError("add-word")
}

// RemoveWord removes word from the personal word list and adds it to the
// exclude list.
func (c *Checker) RemoveWord(word string) error {
	c.mod.mu.Lock()
	defer c.mod.mu.Unlock()

	c.mod.lib.dictRemove(c.dict, word, len(word))
	return c.lastError("remove-word")
}

// Dispose returns the dictionary to the broker.
func (c *Checker) Dispose() {
	c.mod.mu.Lock()
	defer c.mod.mu.Unlock()

	c.mod.lib.brokerFreeDict(c.mod.broker, c.dict)
	c.dict = 0
}

// lastError converts a pending dictionary error, if any. The caller holds
// the module lock.
func (c *Checker) lastError(op string) error {
	if msg := goString(c.mod.lib.dictGetError(c.dict)); msg != "" {
		return errors.NativeFailure(errors.PhaseCall, op, 0, msg)
	}
	return nil
}

func (c *Checker) dictError(op string, code int64) error {
	detail := "enchant_dict_check failed"
	if msg := goString(c.mod.lib.dictGetError(c.dict)); msg != "" {
		detail += ": " + msg
	}
	return errors.NativeFailure(errors.PhaseCall, op, code, detail)
}

var (
	_ capability.Module  = (*Module)(nil)
	_ capability.Checker = (*Checker)(nil)
)
