// Package enchant binds libenchant-2 at run time with purego, without cgo.
//
// It serves Linux and macOS on amd64 and arm64. The shared library is opened
// on first Load; if it cannot be found the backend reports a load failure
// and the platform is treated as unavailable. Personal word lists are kept
// by enchant itself, so words added through AddWord persist across runs.
//
// Language tags are exchanged in BCP 47 form ("en-US"). Enchant's own
// underscore form ("en_US") never leaves this package.
package enchant
