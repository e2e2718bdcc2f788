// Package capability defines the collaborator interfaces implemented by
// spell checking backends.
//
// A Module is the loaded, platform-specific binding. A Checker is one raw,
// stateful spell checking session created from a Module for one language.
// Raw checkers perform no lifecycle checks of their own: calling any method
// after Dispose, or calling Dispose twice, is undefined and may corrupt the
// native resource. Callers are expected to reach them only through the
// guarded wrapper in the spellcheck package.
package capability

// Module is a loaded capability module.
type Module interface {
	// SupportedLanguages returns the language tags the native engine
	// advertises, in native order.
	SupportedLanguages() ([]string, error)

	// NewChecker creates a raw checker for the language tag.
	NewChecker(language string) (Checker, error)

	// IsLoaded is a lightweight liveness check of the binding.
	IsLoaded() (bool, error)
}

// Checker is a raw spell checking session.
type Checker interface {
	// TestSpelling reports whether word is correctly spelled.
	TestSpelling(word string) (bool, error)

	// Suggestions returns candidate corrections ranked by the engine.
	Suggestions(word string) ([]string, error)

	// AddWord adds word to the engine's dictionary.
	AddWord(word string) error

	// RemoveWord removes word from the engine's dictionary.
	RemoveWord(word string) error

	// Dispose releases the native session. Must be called at most once.
	Dispose()
}
