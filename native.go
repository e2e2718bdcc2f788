package spellcheck

import (
	"go.uber.org/zap"
)

// NativeOptions tunes the native backends compiled into this build.
type NativeOptions struct {
	Logger *zap.Logger
	// EnchantLibrary overrides the shared library name or path tried for
	// libenchant. Ignored on Windows.
	EnchantLibrary string
}

func (o NativeOptions) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return Logger()
}
