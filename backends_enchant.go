//go:build (linux || darwin) && (amd64 || arm64)

package spellcheck

import (
	"runtime"

	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/native/enchant"
	"github.com/wippyai/spellcheck/platform"
)

// NativeLoaders returns the lookup table of native capability modules
// compiled into this build.
func NativeLoaders(opts NativeOptions) map[platform.Target]platform.Loader {
	load := func() (capability.Module, error) {
		return enchant.Load(opts.EnchantLibrary, opts.logger())
	}
	return map[platform.Target]platform.Loader{
		{OS: runtime.GOOS, Arch: "amd64"}: load,
		{OS: runtime.GOOS, Arch: "arm64"}: load,
	}
}
