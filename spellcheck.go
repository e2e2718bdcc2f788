package spellcheck

import (
	"sync"
)

var (
	defaultClient     *Client
	defaultClientOnce sync.Once
)

// Default returns the process-wide client used by the package-level
// functions. It is built on first use with the build-time resolver.
func Default() *Client {
	defaultClientOnce.Do(func() {
		defaultClient = NewClient()
	})
	return defaultClient
}

// SupportedLanguages returns the language tags the native spell checker
// supports, in native order. It fails with platform_unsupported when no
// capability module exists for this OS and architecture.
func SupportedLanguages() ([]string, error) {
	return Default().SupportedLanguages()
}

// IsAvailable reports whether a native spell checker can be used. It never
// fails.
func IsAvailable() bool {
	return Default().IsAvailable()
}

// New creates a guarded checker for the language tag, e.g. "en-US".
func New(language string) (*Checker, error) {
	return Default().New(language)
}
