// Package platform selects the capability module for the running operating
// system and CPU architecture.
//
// A Resolver works in one of two modes, fixed when it is constructed:
//
//	table   NewTable maps each supported (OS, arch) pair to its own loader
//	single  NewSingle uses one loader for every architecture
//
// Which mode the default client uses is decided at build time by the
// spellcheck package, never by the resolver itself.
//
// Resolve fails with a platform_unsupported error naming the detected OS and
// architecture when the table has no entry. It holds no cache: every call runs
// the loader again, and loaders are expected to be cheap to re-run.
package platform

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/errors"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package logger.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// Target is an operating system and CPU architecture pair, using Go's
// GOOS/GOARCH identifiers.
type Target struct {
	OS   string
	Arch string
}

// Current returns the target of the running process.
func Current() Target {
	return Target{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

func (t Target) String() string {
	return t.OS + "/" + t.Arch
}

// Loader loads a capability module.
type Loader func() (capability.Module, error)

// Mode is the resolution mode of a Resolver.
type Mode uint8

const (
	ModeTable Mode = iota
	ModeSingle
)

func (m Mode) String() string {
	switch m {
	case ModeTable:
		return "table"
	case ModeSingle:
		return "single"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTarget overrides the detected target. Intended for tests.
func WithTarget(t Target) Option {
	return func(r *Resolver) {
		r.target = t
	}
}

// WithLogger sets the logger used for resolution events.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// Resolver maps the current target to a capability module loader.
// It is safe for concurrent use; its table is immutable after construction.
type Resolver struct {
	logger *zap.Logger
	table  map[Target]Loader
	single Loader
	target Target
	mode   Mode
}

// NewTable creates a resolver in lookup-table mode.
func NewTable(entries map[Target]Loader, opts ...Option) *Resolver {
	table := make(map[Target]Loader, len(entries))
	for t, l := range entries {
		if l != nil {
			table[t] = l
		}
	}
	return newResolver(ModeTable, table, nil, opts)
}

// NewSingle creates a resolver that uses loader on every architecture.
func NewSingle(loader Loader, opts ...Option) *Resolver {
	return newResolver(ModeSingle, nil, loader, opts)
}

func newResolver(mode Mode, table map[Target]Loader, single Loader, opts []Option) *Resolver {
	r := &Resolver{
		logger: Logger(),
		table:  table,
		single: single,
		target: Current(),
		mode:   mode,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the resolution mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Target returns the detected target.
func (r *Resolver) Target() Target {
	return r.target
}

// Supports reports whether a loader exists for the detected target.
func (r *Resolver) Supports() bool {
	return r.lookup() != nil
}

// Targets returns the table entries in sorted order. In single mode it
// returns nil because every target is served by the same module.
func (r *Resolver) Targets() []Target {
	if r.mode == ModeSingle {
		return nil
	}
	out := make([]Target, 0, len(r.table))
	for t := range r.table {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OS != out[j].OS {
			return out[i].OS < out[j].OS
		}
		return out[i].Arch < out[j].Arch
	})
	return out
}

func (r *Resolver) lookup() Loader {
	if r.mode == ModeSingle {
		return r.single
	}
	return r.table[r.target]
}

// Resolve loads the capability module for the detected target.
func (r *Resolver) Resolve() (capability.Module, error) {
	load := r.lookup()
	if load == nil {
		r.logger.Debug("no capability module for platform",
			zap.String("os", r.target.OS),
			zap.String("arch", r.target.Arch),
			zap.Stringer("mode", r.mode))
		return nil, errors.PlatformUnsupported(r.target.OS, r.target.Arch)
	}

	mod, err := load()
	if err != nil {
		return nil, errors.New(errors.PhaseResolve, errors.KindNativeFailure).
			Op("load").
			Platform(r.target.OS, r.target.Arch).
			Detail("load capability module").
			Cause(err).
			Build()
	}
	if mod == nil {
		return nil, errors.New(errors.PhaseResolve, errors.KindNativeFailure).
			Op("load").
			Platform(r.target.OS, r.target.Arch).
			Detail("loader returned no module").
			Build()
	}

	r.logger.Debug("resolved capability module",
		zap.Stringer("target", r.target),
		zap.Stringer("mode", r.mode))
	return mod, nil
}
