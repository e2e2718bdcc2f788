package engine

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/errors"
)

// Config holds configuration for a Loader.
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32

	// DictionaryDir is a host directory mounted read-only into the guest.
	DictionaryDir string

	Logger *zap.Logger
}

// Loader compiles a capability guest on first use and hands out Modules
// backed by it. Failed loads are not cached; the next Load retries.
type Loader struct {
	ctx    context.Context
	source func() ([]byte, error)
	name   string
	cfg    Config
	logger *zap.Logger

	mu       sync.Mutex
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
}

// NewLoader creates a loader for an in-memory guest binary.
func NewLoader(ctx context.Context, wasm []byte, cfg *Config) *Loader {
	return newLoader(ctx, "<memory>", func() ([]byte, error) { return wasm, nil }, cfg)
}

// NewFileLoader creates a loader that reads the guest from path on first use.
func NewFileLoader(ctx context.Context, path string, cfg *Config) *Loader {
	return newLoader(ctx, path, func() ([]byte, error) {
		if path == "" {
			return nil, fmt.Errorf("module path is empty")
		}
		return os.ReadFile(path)
	}, cfg)
}

func newLoader(ctx context.Context, name string, source func() ([]byte, error), cfg *Config) *Loader {
	l := &Loader{ctx: ctx, name: name, source: source}
	if cfg != nil {
		l.cfg = *cfg
	}
	l.logger = l.cfg.Logger
	if l.logger == nil {
		l.logger = Logger()
	}
	return l
}

// Load compiles the guest if needed and returns a capability module for it.
// Its signature matches platform.Loader.
func (l *Loader) Load() (capability.Module, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.compiled == nil {
		if err := l.compile(); err != nil {
			return nil, err
		}
	}
	return &Module{loader: l}, nil
}

// compile builds the runtime and compiled module. The caller holds mu.
func (l *Loader) compile() error {
	wasm, err := l.source()
	if err != nil {
		return errors.Wrap(errors.PhaseLoad, opLoad, err, "read guest "+l.name)
	}

	runtimeCfg := wazero.NewRuntimeConfig()
	if l.cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(l.cfg.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(l.ctx, runtimeCfg)

	if _, err := wasi_snapshot_preview1.Instantiate(l.ctx, rt); err != nil {
		rt.Close(l.ctx)
		return errors.Wrap(errors.PhaseLoad, opLoad, err, "instantiate WASI")
	}

	compiled, err := rt.CompileModule(l.ctx, wasm)
	if err != nil {
		rt.Close(l.ctx)
		return errors.Wrap(errors.PhaseLoad, opLoad, err, "compile guest "+l.name)
	}

	if err := validateExports(compiled); err != nil {
		rt.Close(l.ctx)
		return err
	}

	l.runtime = rt
	l.compiled = compiled
	l.logger.Debug("capability guest compiled",
		zap.String("module", l.name),
		zap.Int("size", len(wasm)),
		zap.Uint32("memory_limit_pages", l.cfg.MemoryLimitPages))
	return nil
}

func validateExports(compiled wazero.CompiledModule) error {
	if _, ok := compiled.ExportedMemories()[ExportMemory]; !ok {
		return errors.NativeFailure(errors.PhaseLoad, opLoad, 0, "guest does not export memory")
	}
	funcs := compiled.ExportedFunctions()
	for name, sig := range requiredExports {
		def, ok := funcs[name]
		if !ok {
			return errors.NativeFailure(errors.PhaseLoad, opLoad, 0, fmt.Sprintf("guest does not export %q", name))
		}
		if !sig.matches(def) {
			return errors.NativeFailure(errors.PhaseLoad, opLoad, 0,
				fmt.Sprintf("guest export %q has signature (%s) -> (%s), want %s",
					name, valueTypeNames(def.ParamTypes()), valueTypeNames(def.ResultTypes()), sig))
		}
	}
	return nil
}

// instantiate creates a fresh guest instance.
func (l *Loader) instantiate(phase errors.Phase, op string) (*instance, error) {
	l.mu.Lock()
	rt, compiled := l.runtime, l.compiled
	l.mu.Unlock()
	if compiled == nil {
		return nil, errors.New(phase, errors.KindNativeFailure).
			Op(op).
			Detail("loader is closed").
			Build()
	}

	modCfg := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions("_initialize")
	if l.cfg.DictionaryDir != "" {
		modCfg = modCfg.
			WithFSConfig(wazero.NewFSConfig().WithReadOnlyDirMount(l.cfg.DictionaryDir, DictionaryMount)).
			WithEnv("DICPATH", DictionaryMount)
	}

	mod, err := rt.InstantiateModule(l.ctx, compiled, modCfg)
	if err != nil {
		return nil, errors.Wrap(phase, op, err, "instantiate guest")
	}
	inst, err := newInstance(l.ctx, mod)
	if err != nil {
		mod.Close(l.ctx)
		return nil, errors.Wrap(phase, op, err, "bind guest exports")
	}
	return inst, nil
}

// Close releases the runtime. Modules and checkers obtained earlier fail
// afterwards; a later Load compiles the guest again.
func (l *Loader) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.runtime == nil {
		return nil
	}
	err := l.runtime.Close(ctx)
	l.runtime = nil
	l.compiled = nil
	return err
}

var _ api.Closer = (*Loader)(nil)
