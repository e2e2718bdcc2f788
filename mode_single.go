//go:build spellcheck_single

package spellcheck

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/spellcheck/engine"
	"github.com/wippyai/spellcheck/platform"
)

// BuildMode is the resolution mode compiled into this build.
const BuildMode = platform.ModeSingle

// ModuleEnv names the environment variable holding the path of the bundled
// WebAssembly capability module.
const ModuleEnv = "SPELLCHECK_MODULE"

func defaultResolver(l *zap.Logger) Resolver {
	loader := engine.NewFileLoader(context.Background(), os.Getenv(ModuleEnv), &engine.Config{Logger: l})
	return platform.NewSingle(loader.Load, platform.WithLogger(l))
}
