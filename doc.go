// Package spellcheck exposes the operating system's spell checker through
// disposable, guarded handles.
//
// The package resolves a platform-specific capability module at runtime and
// wraps every raw checker it creates so that misuse cannot reach native code:
// operations on a disposed checker fail with a handle_disposed error, strings
// that cannot cross the native boundary fail with invalid_argument, and the
// native disposal routine runs at most once no matter how often Dispose is
// called.
//
// # Quick Start
//
//	if !spellcheck.IsAvailable() {
//	    return
//	}
//
//	langs, err := spellcheck.SupportedLanguages()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(langs) // [en-US de-DE ...]
//
//	checker, err := spellcheck.New("en-US")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer checker.Dispose()
//
//	ok, _ := checker.TestSpelling("Hellow")    // false
//	suggestions, _ := checker.Suggestions("Hellow") // [Hello ...]
//
// # Backends
//
// The capability module is picked from the running GOOS/GOARCH:
//
//	windows/amd64, windows/arm64, windows/386   Windows Spell Checking API (COM)
//	linux, darwin on amd64 and arm64            libenchant-2, loaded with purego
//
// Building with the spellcheck_single tag replaces the lookup table with a
// single WebAssembly capability module, read from the file named by the
// SPELLCHECK_MODULE environment variable and run with wazero on any
// architecture.
//
// # Errors
//
// Errors are *errors.Error values from the errors subpackage. Failures raised
// by the native engine are returned as-is. IsAvailable is the only function
// that never fails: it reduces every failure to false.
//
// # Thread Safety
//
// Client and Checker are safe for concurrent use. Dispose waits for calls
// already forwarded to the native checker and then releases it exactly once.
package spellcheck
