package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/spellcheck"
	"github.com/wippyai/spellcheck/capability"
	"github.com/wippyai/spellcheck/capability/fake"
	"github.com/wippyai/spellcheck/platform"
)

func newTestApp(t *testing.T, mod *fake.Module) (*app, *bytes.Buffer) {
	t.Helper()
	r := platform.NewSingle(func() (capability.Module, error) { return mod, nil })
	client := spellcheck.NewClient(spellcheck.WithResolver(r))
	t.Cleanup(func() { client.Close() })
	var out bytes.Buffer
	return &app{client: client, resolver: r, out: &out, lang: "en-US"}, &out
}

func TestDemo(t *testing.T) {
	a, out := newTestApp(t, fake.English())

	code, err := a.demo()
	if err != nil || code != 0 {
		t.Fatalf("demo = %d, %v", code, err)
	}
	want := []string{
		"Supported languages: en-US, en-GB",
		`TestSpelling("Hello") = true`,
		`TestSpelling("Hellow") = false`,
		`Suggestions("Hellow") = [Hello`,
	}
	for _, w := range want {
		if !strings.Contains(out.String(), w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestCheck(t *testing.T) {
	a, out := newTestApp(t, fake.English())

	code, err := a.check([]string{"hello", "wrold"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if code != 1 {
		t.Fatalf("code = %d, want 1 for a misspelling", code)
	}
	if !strings.Contains(out.String(), "ok    hello") || !strings.Contains(out.String(), "wrong wrold") {
		t.Fatalf("output:\n%s", out)
	}

	out.Reset()
	if code, _ := a.check([]string{"world"}); code != 0 {
		t.Fatalf("code = %d, want 0", code)
	}
}

func TestCheck_UnknownLanguage(t *testing.T) {
	a, _ := newTestApp(t, fake.English())
	a.lang = "xx-INVALID"

	if _, err := a.check([]string{"hello"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestMutate(t *testing.T) {
	mod := fake.English()
	a, out := newTestApp(t, mod)

	code, err := a.mutate("wrold", (*spellcheck.Checker).AddWord, "added")
	if err != nil || code != 0 {
		t.Fatalf("mutate = %d, %v", code, err)
	}
	if !strings.Contains(out.String(), `added "wrold" (en-US)`) {
		t.Fatalf("output: %s", out)
	}
	if a.client.Open() != 0 {
		t.Fatal("checker left open")
	}
}

func TestProbeAndList(t *testing.T) {
	a, out := newTestApp(t, fake.English())
	if code := a.probe(); code != 0 || !strings.Contains(out.String(), "available") {
		t.Fatalf("probe = %d, %s", code, out)
	}

	out.Reset()
	if code, err := a.list(); code != 0 || err != nil || out.String() != "en-US\nen-GB\n" {
		t.Fatalf("list = %d, %v, %q", code, err, out)
	}

	mod := fake.English()
	mod.NotLoaded = true
	a, out = newTestApp(t, mod)
	if code := a.probe(); code != 1 || !strings.Contains(out.String(), "unavailable") {
		t.Fatalf("probe = %d, %s", code, out)
	}
}

func TestPrintPlatforms(t *testing.T) {
	load := func() (capability.Module, error) { return fake.English(), nil }
	r := platform.NewTable(map[platform.Target]platform.Loader{
		{OS: "linux", Arch: "amd64"}:   load,
		{OS: "windows", Arch: "amd64"}: load,
	}, platform.WithTarget(platform.Target{OS: "linux", Arch: "amd64"}))
	var out bytes.Buffer
	a := &app{client: spellcheck.NewClient(spellcheck.WithResolver(r)), resolver: r, out: &out}

	if code := a.printPlatforms(); code != 0 {
		t.Fatalf("code = %d", code)
	}
	if !strings.Contains(out.String(), "* linux/amd64") || !strings.Contains(out.String(), "  windows/amd64") {
		t.Fatalf("output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Build: "+spellcheck.BuildMode.String()) {
		t.Fatalf("output lacks the build mode:\n%s", out.String())
	}
}

func TestRun_UsesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spellcheck.toml")
	if err := os.WriteFile(path, []byte("log_level = \"error\"\nwasm_module = \"/nonexistent/guest.wasm\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	code, err := run(options{configPath: path, probe: true}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if code != 1 || !strings.Contains(out.String(), "unavailable") {
		t.Fatalf("probe with missing guest = %d, %q", code, out.String())
	}
}

func TestSplitWords(t *testing.T) {
	got := splitWords("Hello, wrold! It's a well-known -test- 42.")
	want := []string{"Hello", "wrold", "It's", "a", "well-known", "test", "42"}
	if len(got) != len(want) {
		t.Fatalf("splitWords = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("splitWords = %q, want %q", got, want)
		}
	}
}

func TestInteractiveModel(t *testing.T) {
	a, _ := newTestApp(t, fake.English())
	m := newInteractiveModel(a.client, "en-GB")

	m.Update(m.loadLanguages())
	if m.selected != 1 {
		t.Fatalf("selected = %d, want preferred en-GB", m.selected)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should open a checker")
	}
	m.Update(cmd())
	if m.state != stateCheck || m.checker == nil || m.checker.Language() != "en-GB" {
		t.Fatalf("state = %v, checker = %v", m.state, m.checker)
	}

	m.input.SetValue("hello colour wrold")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())
	if len(m.results) != 3 || !m.results[0].correct || m.results[2].correct {
		t.Fatalf("results = %+v", m.results)
	}
	if !strings.Contains(m.View(), "wrold") {
		t.Fatal("view does not show the misspelled word")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	if cmd == nil {
		t.Fatal("ctrl+a should add a word")
	}
	m.Update(cmd())
	if m.status != `added "wrold"` {
		t.Fatalf("status = %q", m.status)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateSelectLang || m.checker != nil {
		t.Fatal("esc should dispose the checker and go back")
	}
	if a.client.Open() != 0 {
		t.Fatalf("Open = %d", a.client.Open())
	}
}

func openInteractive(t *testing.T, a *app) *interactiveModel {
	t.Helper()
	m := newInteractiveModel(a.client, "en-US")
	m.Update(m.loadLanguages())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(cmd())
	if m.state != stateCheck {
		t.Fatalf("state = %v, err = %v", m.state, m.err)
	}
	return m
}

func TestInteractiveModel_CommandCapturesInput(t *testing.T) {
	a, _ := newTestApp(t, fake.English())
	m := openInteractive(t, a)

	m.input.SetValue("Hellow world")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.input.SetValue("")

	msg, ok := cmd().(resultsMsg)
	if !ok {
		t.Fatalf("command returned %T", msg)
	}
	if msg.err != nil || len(msg.results) != 2 || msg.results[0].word != "Hellow" {
		t.Fatalf("results = %+v, %v", msg.results, msg.err)
	}
}

func TestInteractiveModel_DropsRepliesForClosedChecker(t *testing.T) {
	a, _ := newTestApp(t, fake.English())
	m := openInteractive(t, a)

	m.input.SetValue("Hellow world")
	_, check := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.results = []wordResult{{word: "Hellow"}}
	_, add := m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	for _, cmd := range []tea.Cmd{check, add} {
		_, next := m.Update(cmd())
		if next != nil {
			t.Fatal("reply for a closed checker scheduled more work")
		}
		if m.state != stateSelectLang || m.results != nil || m.err != nil || m.status != "" {
			t.Fatalf("state = %v, results = %+v, err = %v, status = %q", m.state, m.results, m.err, m.status)
		}
	}
}
