package winspell

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/errors"
)

var (
	loadMu sync.Mutex
	loaded *Module
)

// Load creates the spell checker factory on first use and returns the
// process-wide module. Failures are not remembered.
func Load(logger *zap.Logger) (capability.Module, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loadMu.Lock()
	defer loadMu.Unlock()

	if loaded != nil {
		return loaded, nil
	}

	if err := procCoCreateInstance.Find(); err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, "load", err, "ole32.dll")
	}
	apt, err := startApartment()
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, "load", err, "CoInitializeEx")
	}

	var factory *object
	var hr int32
	apt.do(func() {
		factory, hr = coCreateInstance(&clsidSpellCheckerFactory, &iidSpellCheckerFactory)
	})
	if hr < 0 || factory == nil {
		apt.stop()
		return nil, errors.NativeFailure(errors.PhaseLoad, "load", int64(hr), "CoCreateInstance(SpellCheckerFactory) failed")
	}

	loaded = &Module{apt: apt, factory: factory, logger: logger}
	logger.Debug("windows spell checker factory created")
	return loaded, nil
}

// Module wraps ISpellCheckerFactory.
type Module struct {
	apt     *apartment
	factory *object
	logger  *zap.Logger
}

// SupportedLanguages implements capability.Module.
func (m *Module) SupportedLanguages() ([]string, error) {
	var langs []string
	var hr int32
	m.apt.do(func() {
		var enum *object
		hr = m.factory.call(factorySupportedLanguages, uintptr(unsafe.Pointer(&enum)))
		if hr < 0 {
			return
		}
		langs, hr = enumStrings(enum)
	})
	if hr < 0 {
		return nil, errors.NativeFailure(errors.PhaseCall, "supported-languages", int64(hr), "ISpellCheckerFactory::get_SupportedLanguages failed")
	}
	return langs, nil
}

// IsLoaded implements capability.Module.
func (m *Module) IsLoaded() (bool, error) {
	return m.factory != nil, nil
}

// NewChecker implements capability.Module.
func (m *Module) NewChecker(language string) (capability.Checker, error) {
	tag, err := windows.UTF16PtrFromString(language)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCreate, "new", err, "")
	}

	var checker *object
	var supported int32
	var hr int32
	m.apt.do(func() {
		hr = m.factory.call(factoryIsSupported, uintptr(unsafe.Pointer(tag)), uintptr(unsafe.Pointer(&supported)))
		if hr < 0 || supported == 0 {
			return
		}
		hr = m.factory.call(factoryCreateSpellChecker, uintptr(unsafe.Pointer(tag)), uintptr(unsafe.Pointer(&checker)))
	})
	runtime.KeepAlive(tag)

	switch {
	case hr < 0:
		return nil, errors.NativeFailure(errors.PhaseCreate, "new", int64(hr),
			fmt.Sprintf("cannot create a spell checker for %q", language))
	case supported == 0:
		return nil, errors.NativeFailure(errors.PhaseCreate, "new", 0,
			fmt.Sprintf("language %q is not supported", language))
	}
	return &Checker{apt: m.apt, checker: checker}, nil
}

// Checker wraps ISpellChecker.
type Checker struct {
	apt     *apartment
	checker *object
}

// TestSpelling reports false when Check yields any spelling error.
func (c *Checker) TestSpelling(word string) (bool, error) {
	w, err := windows.UTF16PtrFromString(word)
	if err != nil {
		return false, errors.Wrap(errors.PhaseCall, "test-spelling", err, "")
	}

	var hr int32
	var misspelled bool
	c.apt.do(func() {
		var enum *object
		hr = c.checker.call(checkerCheck, uintptr(unsafe.Pointer(w)), uintptr(unsafe.Pointer(&enum)))
		if hr < 0 {
			return
		}
		defer enum.release()

		var spellingError *object
		hr = enum.call(enumNext, uintptr(unsafe.Pointer(&spellingError)))
		if hr == sOK {
			misspelled = true
			spellingError.release()
		}
	})
	runtime.KeepAlive(w)

	if hr < 0 {
		return false, errors.NativeFailure(errors.PhaseCall, "test-spelling", int64(hr), "ISpellChecker::Check failed")
	}
	return !misspelled, nil
}

// Suggestions implements capability.Checker.
func (c *Checker) Suggestions(word string) ([]string, error) {
	w, err := windows.UTF16PtrFromString(word)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCall, "suggestions", err, "")
	}

	var hr int32
	var out []string
	c.apt.do(func() {
		var enum *object
		hr = c.checker.call(checkerSuggest, uintptr(unsafe.Pointer(w)), uintptr(unsafe.Pointer(&enum)))
		if hr < 0 {
			return
		}
		out, hr = enumStrings(enum)
	})
	runtime.KeepAlive(w)

	if hr < 0 {
		return nil, errors.NativeFailure(errors.PhaseCall, "suggestions", int64(hr), "ISpellChecker::Suggest failed")
	}
	return out, nil
}

// AddWord adds word to the user's custom dictionary.
func (c *Checker) AddWord(word string) error {
	w, err := windows.UTF16PtrFromString(word)
	if err != nil {
		return errors.Wrap(errors.PhaseCall, "add-word", err, "")
	}

	var hr int32
	c.apt.do(func() {
		hr = c.checker.call(checkerAdd, uintptr(unsafe.Pointer(w)))
	})
	runtime.KeepAlive(w)

	if hr < 0 {
		return errors.NativeFailure(errors.PhaseCall, "add-word", int64(hr), "ISpellChecker::Add failed")
	}
	return nil
}

// RemoveWord removes word from the user's custom dictionary.
func (c *Checker) RemoveWord(word string) error {
	w, err := windows.UTF16PtrFromString(word)
	if err != nil {
		return errors.Wrap(errors.PhaseCall, "remove-word", err, "")
	}

	var hr int32
	var detail string
	c.apt.do(func() {
		checker2, qhr := c.checker.queryInterface(&iidSpellChecker2)
		if qhr < 0 {
			hr, detail = qhr, "ISpellChecker2 is not available"
			return
		}
		defer checker2.release()
		hr, detail = checker2.call(checker2Remove, uintptr(unsafe.Pointer(w))), "ISpellChecker2::Remove failed"
	})
	runtime.KeepAlive(w)

	if hr < 0 {
		return errors.NativeFailure(errors.PhaseCall, "remove-word", int64(hr), detail)
	}
	return nil
}

// Dispose releases the COM checker.
func (c *Checker) Dispose() {
	c.apt.do(func() {
		c.checker.release()
	})
	c.checker = nil
}

var (
	_ capability.Module  = (*Module)(nil)
	_ capability.Checker = (*Checker)(nil)
)
