package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/errors"
)

// Checker is a raw checker living in its own guest instance.
type Checker struct {
	inst     *instance
	handle   uint32
	language string
}

// TestSpelling implements capability.Checker.
func (c *Checker) TestSpelling(word string) (bool, error) {
	code, err := c.wordCall(opTestSpelling, ExportTestSpelling, word)
	if err != nil {
		return false, err
	}
	switch {
	case code == 1:
		return true, nil
	case code == 0:
		return false, nil
	default:
		return false, c.guestError(opTestSpelling, int64(code))
	}
}

// Suggestions implements capability.Checker.
func (c *Checker) Suggestions(word string) ([]string, error) {
	c.inst.mu.Lock()
	defer c.inst.mu.Unlock()

	res, err := c.inst.withWord(word, func(ptr, length uint32) (uint64, error) {
		return c.inst.call(ExportSuggest, uint64(c.handle), uint64(ptr), uint64(length))
	})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCall, opSuggestions, err, "")
	}
	ptr, length, ok := unpackList(res)
	if !ok {
		return nil, c.guestError(opSuggestions, int64(res))
	}
	list, err := c.inst.readList(ptr, length)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCall, opSuggestions, err, "")
	}
	return list, nil
}

// AddWord implements capability.Checker.
func (c *Checker) AddWord(word string) error {
	code, err := c.wordCall(opAddWord, ExportAddWord, word)
	if err != nil {
		return err
	}
	if code != 0 {
		return c.guestError(opAddWord, int64(code))
	}
	return nil
}

// RemoveWord implements capability.Checker.
func (c *Checker) RemoveWord(word string) error {
	code, err := c.wordCall(opRemoveWord, ExportRemoveWord, word)
	if err != nil {
		return err
	}
	if code != 0 {
		return c.guestError(opRemoveWord, int64(code))
	}
	return nil
}

// Dispose releases the guest checker and its instance.
func (c *Checker) Dispose() {
	c.inst.mu.Lock()
	defer c.inst.mu.Unlock()

	if _, err := c.inst.call(ExportDisposeChecker, uint64(c.handle)); err != nil {
		Logger().Debug("guest dispose_checker failed", zap.String("language", c.language), zap.Error(err))
	}
	c.inst.close()
}

func (c *Checker) wordCall(op, export, word string) (int32, error) {
	c.inst.mu.Lock()
	defer c.inst.mu.Unlock()

	res, err := c.inst.withWord(word, func(ptr, length uint32) (uint64, error) {
		return c.inst.call(export, uint64(c.handle), uint64(ptr), uint64(length))
	})
	if err != nil {
		return 0, errors.Wrap(errors.PhaseCall, op, err, "")
	}
	return i32Result(res), nil
}

func (c *Checker) guestError(op string, code int64) error {
	return errors.NativeFailure(errors.PhaseCall, op, code,
		fmt.Sprintf("guest %s checker returned error", c.language))
}

var _ capability.Checker = (*Checker)(nil)
