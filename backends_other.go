//go:build !windows && !((linux || darwin) && (amd64 || arm64))

package spellcheck

import (
	"github.com/wippyai/spellcheck/platform"
)

// NativeLoaders returns the lookup table of native capability modules
// compiled into this build. No native backend exists for this platform.
func NativeLoaders(opts NativeOptions) map[platform.Target]platform.Loader {
	return nil
}
