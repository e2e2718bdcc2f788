package spellcheck

import (
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/errors"
)

// Operation names carried by errors.
const (
	OpNew            = "new"
	OpTestSpelling   = "test-spelling"
	OpSuggestions    = "suggestions"
	OpAddWord        = "add-word"
	OpRemoveWord     = "remove-word"
	OpSupportedLangs = "supported-languages"
)

// Checker is a guarded spell checker handle.
//
// A Checker is open when returned and becomes disposed on the first call to
// Dispose or Close. Every other method fails with a handle_disposed error
// afterwards.
type Checker struct {
	raw       capability.Checker
	logger    *zap.Logger
	onDispose func()
	language  string
	// mu is held shared by forwarded calls and exclusively by Dispose.
	mu       sync.RWMutex
	disposed atomic.Bool
}

// Wrap guards a raw checker created for language. The returned Checker owns
// raw: nothing else may call it afterwards. A nil raw is rejected with an
// invalid_argument error.
func Wrap(raw capability.Checker, language string) (*Checker, error) {
	if raw == nil {
		return nil, errors.InvalidArgument(errors.PhaseCreate, OpNew, "checker", nil, "checker is nil")
	}
	return wrap(raw, language, Logger(), nil), nil
}

func wrap(raw capability.Checker, language string, logger *zap.Logger, onDispose func()) *Checker {
	return &Checker{
		raw:       raw,
		logger:    logger,
		onDispose: onDispose,
		language:  language,
	}
}

// Language returns the language tag the checker was created for.
func (c *Checker) Language() string {
	return c.language
}

// Disposed reports whether the checker has been disposed.
func (c *Checker) Disposed() bool {
	return c.disposed.Load()
}

// guard checks the preconditions of op. The caller holds c.mu shared.
func (c *Checker) guard(op, word string) error {
	if c.disposed.Load() {
		return errors.HandleDisposed(op)
	}
	return validateString(errors.PhaseCall, op, "word", word)
}

// TestSpelling reports whether word is correctly spelled.
func (c *Checker) TestSpelling(word string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.guard(OpTestSpelling, word); err != nil {
		return false, err
	}
	return c.raw.TestSpelling(word)
}

// Suggestions returns candidate corrections for word in the order the
// native engine ranks them.
func (c *Checker) Suggestions(word string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.guard(OpSuggestions, word); err != nil {
		return nil, err
	}
	return c.raw.Suggestions(word)
}

// AddWord adds word to the engine's dictionary. Whether the change outlives
// the process is decided by the engine.
func (c *Checker) AddWord(word string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.guard(OpAddWord, word); err != nil {
		return err
	}
	return c.raw.AddWord(word)
}

// RemoveWord removes word from the engine's dictionary.
func (c *Checker) RemoveWord(word string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.guard(OpRemoveWord, word); err != nil {
		return err
	}
	return c.raw.RemoveWord(word)
}

// Dispose releases the native checker. Only the first call has an effect.
func (c *Checker) Dispose() {
	if !c.dispose() {
		return
	}
	c.logger.Debug("spell checker disposed", zap.String("language", c.language))
	if c.onDispose != nil {
		c.onDispose()
	}
}

func (c *Checker) dispose() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.disposed.CompareAndSwap(false, true) {
		return false
	}
	raw := c.raw
	c.raw = nil
	raw.Dispose()
	return true
}

// Close implements io.Closer. It disposes the checker and always returns nil.
func (c *Checker) Close() error {
	c.Dispose()
	return nil
}

// validateString rejects strings that cannot cross into native code intact:
// invalid UTF-8 is re-encoded lossily and NUL terminates C and UTF-16
// strings early.
func validateString(phase errors.Phase, op, param, s string) error {
	if !utf8.ValidString(s) {
		return errors.InvalidArgument(phase, op, param, s, "not a valid UTF-8 string")
	}
	if i := strings.IndexByte(s, 0); i >= 0 {
		return errors.New(phase, errors.KindInvalidArgument).
			Op(op).
			Param(param).
			Value(s).
			Detail("contains NUL byte at offset %d", i).
			Build()
	}
	return nil
}
