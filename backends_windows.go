//go:build windows

package spellcheck

import (
	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/native/winspell"
	"github.com/wippyai/spellcheck/platform"
)

// NativeLoaders returns the lookup table of native capability modules
// compiled into this build.
func NativeLoaders(opts NativeOptions) map[platform.Target]platform.Loader {
	load := func() (capability.Module, error) {
		return winspell.Load(opts.logger())
	}
	return map[platform.Target]platform.Loader{
		{OS: "windows", Arch: "amd64"}: load,
		{OS: "windows", Arch: "arm64"}: load,
		{OS: "windows", Arch: "386"}:   load,
	}
}
