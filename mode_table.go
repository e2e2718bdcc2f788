//go:build !spellcheck_single

package spellcheck

import (
	"go.uber.org/zap"

	"github.com/wippyai/spellcheck/platform"
)

// BuildMode is the resolution mode compiled into this build.
const BuildMode = platform.ModeTable

func defaultResolver(l *zap.Logger) Resolver {
	return platform.NewTable(NativeLoaders(NativeOptions{Logger: l}), platform.WithLogger(l))
}
