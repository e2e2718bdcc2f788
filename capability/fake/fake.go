// Package fake provides an in-memory capability module for tests.
//
// The fake records every call that reaches it, so tests can assert that the
// guarded wrapper never forwards after disposal and never disposes twice.
package fake

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/errors"
)

// Module is a capability.Module backed by per-language word lists.
type Module struct {
	// LoadedErr, when set, is returned by IsLoaded.
	LoadedErr error
	// LanguagesErr, when set, is returned by SupportedLanguages.
	LanguagesErr error
	// PanicOnProbe makes IsLoaded panic.
	PanicOnProbe bool
	// NotLoaded makes IsLoaded report false.
	NotLoaded bool

	dicts    map[string]map[string]struct{}
	order    []string
	checkers []*Checker
	mu       sync.Mutex
}

// New creates a module. dicts maps a language tag to its known words.
// Languages are advertised in the order given by langs.
func New(langs []string, dicts map[string][]string) *Module {
	m := &Module{
		dicts: make(map[string]map[string]struct{}, len(dicts)),
		order: append([]string(nil), langs...),
	}
	for lang, words := range dicts {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[strings.ToLower(w)] = struct{}{}
		}
		m.dicts[lang] = set
	}
	return m
}

// English returns a module with a small en-US dictionary.
func English() *Module {
	return New([]string{"en-US", "en-GB"}, map[string][]string{
		"en-US": {"hello", "world", "help", "hall", "hell"},
		"en-GB": {"hello", "colour"},
	})
}

// SupportedLanguages implements capability.Module.
func (m *Module) SupportedLanguages() ([]string, error) {
	if m.LanguagesErr != nil {
		return nil, m.LanguagesErr
	}
	return append([]string(nil), m.order...), nil
}

// NewChecker implements capability.Module.
func (m *Module) NewChecker(language string) (capability.Checker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dict, ok := m.dicts[language]
	if !ok {
		return nil, errors.NativeFailure(errors.PhaseCreate, "new", 0,
			fmt.Sprintf("failed to initialize spell checker for %q", language))
	}
	words := make(map[string]struct{}, len(dict))
	for w := range dict {
		words[w] = struct{}{}
	}
	c := &Checker{language: language, words: words}
	m.checkers = append(m.checkers, c)
	return c, nil
}

// IsLoaded implements capability.Module.
func (m *Module) IsLoaded() (bool, error) {
	if m.PanicOnProbe {
		panic("fake: binding crashed")
	}
	if m.LoadedErr != nil {
		return false, m.LoadedErr
	}
	return !m.NotLoaded, nil
}

// Checkers returns every raw checker created so far.
func (m *Module) Checkers() []*Checker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Checker(nil), m.checkers...)
}

// Checker is a raw in-memory checker that counts what reaches it.
type Checker struct {
	// FailOps maps an operation name to an error returned by that operation.
	FailOps map[string]error

	language   string
	words      map[string]struct{}
	calls      map[string]int
	disposals  int
	afterClose int
	mu         sync.Mutex
}

func (c *Checker) enter(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[op]++
	if c.disposals > 0 {
		c.afterClose++
	}
	return c.FailOps[op]
}

// TestSpelling implements capability.Checker.
func (c *Checker) TestSpelling(word string) (bool, error) {
	if err := c.enter("test-spelling"); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.words[strings.ToLower(word)]
	return ok, nil
}

// Suggestions implements capability.Checker. Candidates are known words
// within edit distance one, ordered by sharing the longest prefix.
func (c *Checker) Suggestions(word string) ([]string, error) {
	if err := c.enter("suggestions"); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	lower := strings.ToLower(word)
	var out []string
	for w := range c.words {
		if w != lower && editDistanceOne(w, lower) {
			out = append(out, matchCase(word, w))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := commonPrefix(out[i], word), commonPrefix(out[j], word)
		if pi != pj {
			return pi > pj
		}
		return out[i] < out[j]
	})
	return out, nil
}

// AddWord implements capability.Checker.
func (c *Checker) AddWord(word string) error {
	if err := c.enter("add-word"); err != nil {
		return err
	}
	c.mu.Lock()
	c.words[strings.ToLower(word)] = struct{}{}
	c.mu.Unlock()
	return nil
}

// RemoveWord implements capability.Checker.
func (c *Checker) RemoveWord(word string) error {
	if err := c.enter("remove-word"); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.words, strings.ToLower(word))
	c.mu.Unlock()
	return nil
}

// Dispose implements capability.Checker.
func (c *Checker) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposals++
}

// Language returns the tag the checker was created for.
func (c *Checker) Language() string { return c.language }

// Disposals returns how many times Dispose reached the checker.
func (c *Checker) Disposals() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposals
}

// Calls returns how many times op reached the checker.
func (c *Checker) Calls(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

// TotalCalls returns the number of non-dispose calls that reached the checker.
func (c *Checker) TotalCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

// CallsAfterDispose returns how many calls arrived after disposal.
func (c *Checker) CallsAfterDispose() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.afterClose
}

func editDistanceOne(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	switch len(ra) - len(rb) {
	case 0:
		diff := 0
		for i := range ra {
			if ra[i] != rb[i] {
				diff++
			}
		}
		return diff == 1
	case 1:
		for i := range rb {
			if ra[i] != rb[i] {
				return string(ra[i+1:]) == string(rb[i:])
			}
		}
		return true
	}
	return false
}

func commonPrefix(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func matchCase(orig, w string) string {
	if orig != "" && strings.ToUpper(orig[:1]) == orig[:1] {
		return strings.ToUpper(w[:1]) + w[1:]
	}
	return w
}
