// Package testbed builds reference capability guests for exercising the
// WebAssembly engine without a real spell checking library.
//
// The reference guest knows two languages, en-US and fr-FR. Its checkers
// accept exactly the five letter words, suggest "Hello" and "Hallo" for
// anything, and report error code -5 for words longer than 20 bytes.
package testbed
