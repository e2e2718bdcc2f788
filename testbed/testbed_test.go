package testbed

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/wippyai/spellcheck"
	"github.com/wippyai/spellcheck/engine"
	"github.com/wippyai/spellcheck/errors"
	"github.com/wippyai/spellcheck/platform"
)

func newClient(t *testing.T, opts Options) *spellcheck.Client {
	t.Helper()
	ctx := context.Background()
	loader := engine.NewLoader(ctx, Guest(opts), nil)
	client := spellcheck.NewClient(spellcheck.WithResolver(platform.NewSingle(loader.Load)))
	t.Cleanup(func() {
		client.Close()
		loader.Close(ctx)
	})
	return client
}

func TestGuest_ThroughClient(t *testing.T) {
	client := newClient(t, Options{})

	if !client.IsAvailable() {
		t.Fatal("IsAvailable = false")
	}

	langs, err := client.SupportedLanguages()
	if err != nil {
		t.Fatalf("SupportedLanguages: %v", err)
	}
	if len(langs) != 2 || langs[0] != "en-US" {
		t.Fatalf("SupportedLanguages = %v", langs)
	}

	checker, err := client.New("en-US")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if ok, err := checker.TestSpelling("Hello"); err != nil || !ok {
		t.Fatalf("TestSpelling(Hello) = %v, %v", ok, err)
	}
	if ok, err := checker.TestSpelling("Hellow"); err != nil || ok {
		t.Fatalf("TestSpelling(Hellow) = %v, %v", ok, err)
	}
	suggestions, err := checker.Suggestions("Hellow")
	if err != nil || len(suggestions) == 0 || suggestions[0] != "Hello" {
		t.Fatalf("Suggestions = %v, %v", suggestions, err)
	}

	checker.Dispose()
	checker.Dispose()

	if _, err := checker.TestSpelling("Hello"); !stderrors.Is(err, errors.ErrHandleDisposed) {
		t.Fatalf("err = %v, want handle_disposed", err)
	}
	if client.Open() != 0 {
		t.Fatalf("Open = %d", client.Open())
	}
}

func TestGuest_InvalidLanguageThroughClient(t *testing.T) {
	client := newClient(t, Options{})

	if _, err := client.New("xx-INVALID"); !stderrors.Is(err, errors.ErrNativeFailure) {
		t.Fatalf("err = %v, want native_failure", err)
	}
}

func TestGuest_Unavailable(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"not loaded", Options{NotLoaded: true}},
		{"missing export", Options{Omit: "suggest"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if newClient(t, tt.opts).IsAvailable() {
				t.Fatal("IsAvailable = true")
			}
		})
	}
}

func TestGuest_LeakedCheckerReleasedByClose(t *testing.T) {
	ctx := context.Background()
	loader := engine.NewLoader(ctx, Guest(Options{}), nil)
	defer loader.Close(ctx)
	client := spellcheck.NewClient(spellcheck.WithResolver(platform.NewSingle(loader.Load)))

	checker, err := client.New("fr-FR")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !checker.Disposed() {
		t.Fatal("checker not disposed by Close")
	}
}
