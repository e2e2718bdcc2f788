package spellcheck

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/errors"
	"github.com/wippyai/spellcheck/platform"
	"github.com/wippyai/spellcheck/resource"
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

// Resolver produces the capability module for the running platform.
// *platform.Resolver implements it.
type Resolver interface {
	Resolve() (capability.Module, error)
}

// Option configures a Client.
type Option func(*Client)

// WithResolver sets the resolver. Without it the client uses the resolver
// chosen at build time.
func WithResolver(r Resolver) Option {
	return func(c *Client) {
		c.resolver = r
	}
}

// WithObserver registers o for checker lifecycle events. Each event carries
// the *Checker as its Value: EventOpened after New, EventClosed once the
// checker is disposed.
func WithObserver(o resource.Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client creates guarded checkers and answers module-level queries.
// It keeps track of the checkers it created so Close can release any that
// callers leaked.
type Client struct {
	resolver  Resolver
	logger    *zap.Logger
	handles   *resource.Table
	observers []resource.Observer
}

// NewClient creates a client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		logger:  Logger(),
		handles: resource.NewTable(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.resolver == nil {
		c.resolver = defaultResolver(c.logger)
	}
	c.handles.Subscribe(resource.ObserverFunc(c.logEvent))
	for _, o := range c.observers {
		c.handles.Subscribe(o)
	}
	return c
}

func (c *Client) logEvent(e resource.Event) {
	checker, ok := e.Value.(*Checker)
	if !ok {
		return
	}
	switch e.Type {
	case resource.EventOpened:
		c.logger.Debug("spell checker created", zap.String("language", checker.Language()), zap.Uint32("handle", uint32(e.Handle)))
	case resource.EventClosed:
		c.logger.Debug("spell checker disposed", zap.String("language", checker.Language()), zap.Uint32("handle", uint32(e.Handle)))
	}
}

// SupportedLanguages returns the language tags advertised by the capability
// module, in native order.
func (c *Client) SupportedLanguages() ([]string, error) {
	mod, err := c.resolver.Resolve()
	if err != nil {
		return nil, err
	}
	return mod.SupportedLanguages()
}

// IsAvailable reports whether the capability module resolves and reports
// itself loaded. It never fails and never panics: every failure, including an
// unsupported platform, becomes false. The reason is only logged at debug
// level.
func (c *Client) IsAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Debug("availability probe panicked", zap.Any("panic", r))
			available = false
		}
	}()

	mod, err := c.resolver.Resolve()
	if err != nil {
		c.logger.Debug("availability probe failed",
			zap.String("phase", string(errors.PhaseResolve)),
			zap.String("kind", string(errors.KindOf(err))),
			zap.Error(err))
		return false
	}

	loaded, err := mod.IsLoaded()
	if err != nil {
		c.logger.Debug("availability probe failed",
			zap.String("phase", string(errors.PhaseProbe)),
			zap.String("kind", string(errors.KindOf(err))),
			zap.Error(err))
		return false
	}
	return loaded
}

// New creates a guarded checker for language. Errors raised by the native
// engine for unknown tags are returned unchanged.
func (c *Client) New(language string) (*Checker, error) {
	if err := validateString(errors.PhaseCreate, OpNew, "language", language); err != nil {
		return nil, err
	}
	if c.handles.Closed() {
		return nil, clientClosed()
	}

	mod, err := c.resolver.Resolve()
	if err != nil {
		return nil, err
	}

	raw, err := mod.NewChecker(language)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.NativeFailure(errors.PhaseCreate, OpNew, 0,
			fmt.Sprintf("capability module returned no checker for %q", language))
	}

	var registered atomic.Uint32
	checker := wrap(raw, language, c.logger, func() {
		c.handles.Remove(resource.Handle(registered.Load()))
	})
	handle := c.handles.Insert(checker)
	registered.Store(uint32(handle))
	if handle == 0 {
		checker.Dispose()
		return nil, clientClosed()
	}

	return checker, nil
}

// Open returns the number of checkers created by this client and not yet
// disposed.
func (c *Client) Open() int {
	return c.handles.Len()
}

// Close disposes every checker still open and makes later New calls fail.
func (c *Client) Close() error {
	c.handles.Each(func(h resource.Handle, v any) bool {
		if checker, ok := v.(*Checker); ok {
			c.logger.Debug("disposing leaked spell checker", zap.String("language", checker.Language()), zap.Uint32("handle", uint32(h)))
		}
		return true
	})
	return c.handles.Close()
}

func clientClosed() error {
	return errors.New(errors.PhaseCreate, errors.KindHandleDisposed).
		Op(OpNew).
		Detail("client is closed").
		Build()
}

var _ Resolver = (*platform.Resolver)(nil)
