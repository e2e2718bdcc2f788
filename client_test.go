package spellcheck

import (
	stderrors "errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/capability/fake"
	"github.com/wippyai/spellcheck/errors"
	"github.com/wippyai/spellcheck/platform"
	"github.com/wippyai/spellcheck/resource"
)

func fakeClient(mod *fake.Module, opts ...Option) *Client {
	r := platform.NewSingle(func() (capability.Module, error) { return mod, nil })
	return NewClient(append([]Option{WithResolver(r)}, opts...)...)
}

func TestClient_Scenario(t *testing.T) {
	mod := fake.English()
	client := fakeClient(mod)
	defer client.Close()

	langs, err := client.SupportedLanguages()
	if err != nil {
		t.Fatalf("SupportedLanguages: %v", err)
	}
	if len(langs) != 2 || langs[0] != "en-US" || langs[1] != "en-GB" {
		t.Fatalf("SupportedLanguages = %v, want native order [en-US en-GB]", langs)
	}

	checker, err := client.New("en-US")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer checker.Dispose()

	if ok, err := checker.TestSpelling("Hello"); err != nil || !ok {
		t.Fatalf("TestSpelling(Hello) = %v, %v", ok, err)
	}
	if ok, err := checker.TestSpelling("Hellow"); err != nil || ok {
		t.Fatalf("TestSpelling(Hellow) = %v, %v", ok, err)
	}
	suggestions, err := checker.Suggestions("Hellow")
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(suggestions) == 0 || !contains(suggestions, "Hello") {
		t.Fatalf("Suggestions = %v", suggestions)
	}
}

func TestClient_InvalidLanguage(t *testing.T) {
	client := fakeClient(fake.English())
	defer client.Close()

	checker, err := client.New("xx-INVALID")
	if err == nil {
		checker.Dispose()
		t.Fatal("expected failure for unknown language")
	}
	if !stderrors.Is(err, errors.ErrNativeFailure) {
		t.Fatalf("err = %v, want the native failure", err)
	}
	if client.Open() != 0 {
		t.Fatalf("Open = %d after failed creation", client.Open())
	}
}

func TestClient_LanguageNotAString(t *testing.T) {
	mod := fake.English()
	client := fakeClient(mod)
	defer client.Close()

	_, err := client.New("en-US\x00")
	if !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want invalid_argument", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Param != "language" || e.Phase != errors.PhaseCreate {
		t.Fatalf("unexpected error fields: %v", err)
	}
	if len(mod.Checkers()) != 0 {
		t.Fatal("native module reached with invalid tag")
	}
}

func TestClient_UnsupportedPlatform(t *testing.T) {
	r := platform.NewTable(map[platform.Target]platform.Loader{
		{OS: "windows", Arch: "amd64"}: func() (capability.Module, error) { return fake.English(), nil },
	}, platform.WithTarget(platform.Target{OS: "haiku", Arch: "amd64"}))
	client := NewClient(WithResolver(r))

	_, err := client.SupportedLanguages()
	if !stderrors.Is(err, errors.ErrPlatformUnsupported) {
		t.Fatalf("err = %v, want platform_unsupported", err)
	}
	if !strings.Contains(err.Error(), "haiku") || !strings.Contains(err.Error(), "amd64") {
		t.Fatalf("message %q does not name OS and arch", err.Error())
	}

	if _, err := client.New("en-US"); !stderrors.Is(err, errors.ErrPlatformUnsupported) {
		t.Fatalf("New err = %v, want platform_unsupported", err)
	}
	if client.IsAvailable() {
		t.Fatal("IsAvailable should be false on an unsupported platform")
	}
}

func TestClient_IsAvailable(t *testing.T) {
	loadErr := stderrors.New("libenchant-2.so.2: cannot open shared object file")

	tests := []struct {
		name     string
		resolver Resolver
		want     bool
	}{
		{
			name:     "loaded",
			resolver: platform.NewSingle(func() (capability.Module, error) { return fake.English(), nil }),
			want:     true,
		},
		{
			name:     "load failure",
			resolver: platform.NewSingle(func() (capability.Module, error) { return nil, loadErr }),
		},
		{
			name:     "loader panics",
			resolver: platform.NewSingle(func() (capability.Module, error) { panic("segfault in binding") }),
		},
		{
			name: "liveness error",
			resolver: platform.NewSingle(func() (capability.Module, error) {
				m := fake.English()
				m.LoadedErr = stderrors.New("CoInitializeEx failed")
				return m, nil
			}),
		},
		{
			name: "liveness panics",
			resolver: platform.NewSingle(func() (capability.Module, error) {
				m := fake.English()
				m.PanicOnProbe = true
				return m, nil
			}),
		},
		{
			name: "liveness false",
			resolver: platform.NewSingle(func() (capability.Module, error) {
				m := fake.English()
				m.NotLoaded = true
				return m, nil
			}),
		},
		{
			name:     "unsupported platform",
			resolver: platform.NewTable(nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			client := NewClient(WithResolver(tt.resolver), WithLogger(zap.New(core)))

			var got bool
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Fatalf("IsAvailable panicked: %v", r)
					}
				}()
				got = client.IsAvailable()
			}()

			if got != tt.want {
				t.Fatalf("IsAvailable = %v, want %v", got, tt.want)
			}
			if !tt.want && tt.name != "liveness false" && logs.Len() == 0 {
				t.Fatal("discarded failure was not logged")
			}
		})
	}
}

func TestClient_IsAvailableLogsKind(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	client := NewClient(WithResolver(platform.NewTable(nil)), WithLogger(zap.New(core)))

	if client.IsAvailable() {
		t.Fatal("IsAvailable = true on an unsupported platform")
	}
	entries := logs.FilterMessage("availability probe failed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d probe failure logs, want 1", len(entries))
	}
	if kind := entries[0].ContextMap()["kind"]; kind != string(errors.KindPlatformUnsupported) {
		t.Fatalf("kind = %v, want %s", kind, errors.KindPlatformUnsupported)
	}
}

func TestClient_Observer(t *testing.T) {
	type event struct {
		typ      resource.EventType
		language string
	}
	var events []event
	obs := resource.ObserverFunc(func(e resource.Event) {
		events = append(events, event{e.Type, e.Value.(*Checker).Language()})
	})
	core, logs := observer.New(zap.DebugLevel)
	client := fakeClient(fake.English(), WithObserver(obs), WithLogger(zap.New(core)))

	a, err := client.New("en-US")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.New("en-GB"); err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Dispose()
	a.Dispose()
	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := []event{
		{resource.EventOpened, "en-US"},
		{resource.EventOpened, "en-GB"},
		{resource.EventClosed, "en-US"},
		{resource.EventClosed, "en-GB"},
	}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}

	if n := logs.FilterMessage("spell checker created").Len(); n != 2 {
		t.Fatalf("created logs = %d, want 2", n)
	}
	if n := logs.FilterMessage("spell checker disposed").Len(); n != 2 {
		t.Fatalf("disposed logs = %d, want 2", n)
	}
	leaked := logs.FilterMessage("disposing leaked spell checker").All()
	if len(leaked) != 1 || leaked[0].ContextMap()["language"] != "en-GB" {
		t.Fatalf("leaked logs = %v", leaked)
	}
}

func TestClient_TracksHandles(t *testing.T) {
	mod := fake.English()
	client := fakeClient(mod)

	a, err := client.New("en-US")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := client.New("en-GB")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if client.Open() != 2 {
		t.Fatalf("Open = %d, want 2", client.Open())
	}

	a.Dispose()
	a.Dispose()
	if client.Open() != 1 {
		t.Fatalf("Open = %d after dispose, want 1", client.Open())
	}

	// b is leaked; Close must release it exactly once
	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !b.Disposed() {
		t.Fatal("leaked checker not disposed by Close")
	}
	b.Dispose()

	for _, raw := range mod.Checkers() {
		if raw.Disposals() != 1 {
			t.Fatalf("%s: native dispose ran %d times", raw.Language(), raw.Disposals())
		}
	}

	if _, err := b.TestSpelling("hello"); !stderrors.Is(err, errors.ErrHandleDisposed) {
		t.Fatalf("err = %v, want handle_disposed", err)
	}
	if _, err := client.New("en-US"); !stderrors.Is(err, errors.ErrHandleDisposed) {
		t.Fatalf("New after Close err = %v, want handle_disposed", err)
	}
}

func TestClient_ResolvesEachCall(t *testing.T) {
	loads := 0
	r := platform.NewSingle(func() (capability.Module, error) {
		loads++
		return fake.English(), nil
	})
	client := NewClient(WithResolver(r))
	defer client.Close()

	client.SupportedLanguages()
	client.SupportedLanguages()
	client.IsAvailable()
	if loads != 3 {
		t.Fatalf("loads = %d, want 3", loads)
	}
}

type nilModule struct{ *fake.Module }

func (nilModule) NewChecker(string) (capability.Checker, error) { return nil, nil }

func TestClient_NilChecker(t *testing.T) {
	r := platform.NewSingle(func() (capability.Module, error) { return nilModule{fake.English()}, nil })
	client := NewClient(WithResolver(r))
	defer client.Close()

	if _, err := client.New("en-US"); !stderrors.Is(err, errors.ErrNativeFailure) {
		t.Fatalf("err = %v, want native_failure", err)
	}
}

func TestDefaultClient(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default should return the same client")
	}
	// Must not panic regardless of the host platform.
	_ = IsAvailable()
}
