package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/spellcheck"
	"github.com/wippyai/spellcheck/engine"
	"github.com/wippyai/spellcheck/internal/config"
	"github.com/wippyai/spellcheck/platform"
)

type options struct {
	configPath  string
	lang        string
	wasm        string
	add         string
	remove      string
	list        bool
	probe       bool
	platforms   bool
	interactive bool
	verbose     bool
	words       []string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to TOML config (default $"+config.EnvPath+")")
	flag.StringVar(&opts.lang, "lang", "", "Language tag, e.g. en-US")
	flag.StringVar(&opts.wasm, "wasm", "", "Serve every platform from this WebAssembly guest")
	flag.StringVar(&opts.add, "add", "", "Add a word to the dictionary")
	flag.StringVar(&opts.remove, "remove", "", "Remove a word from the dictionary")
	flag.BoolVar(&opts.list, "list", false, "List supported languages and exit")
	flag.BoolVar(&opts.probe, "probe", false, "Report availability; exit status 1 when unavailable")
	flag.BoolVar(&opts.platforms, "platforms", false, "List compiled-in platforms and exit")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive mode with TUI")
	flag.BoolVar(&opts.verbose, "v", false, "Debug logging")
	flag.Usage = usage
	flag.Parse()
	opts.words = flag.Args()

	code, err := run(opts, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: spellcheck [-lang tag] [word ...]")
	fmt.Fprintln(os.Stderr, "       spellcheck -list | -probe | -platforms")
	fmt.Fprintln(os.Stderr, "       spellcheck -lang tag -add word | -remove word")
	fmt.Fprintln(os.Stderr, "       spellcheck -i  (interactive mode)")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

func run(opts options, out io.Writer) (int, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return 1, err
	}
	if opts.lang != "" {
		cfg.Language = opts.lang
	}
	if opts.wasm != "" {
		cfg.WasmModule = opts.wasm
	}

	logger, err := newLogger(cfg, opts.verbose)
	if err != nil {
		return 1, err
	}
	defer logger.Sync()

	resolver, cleanup := newResolver(cfg, logger)
	defer cleanup()

	client := spellcheck.NewClient(spellcheck.WithResolver(resolver), spellcheck.WithLogger(logger))
	defer client.Close()

	a := &app{client: client, resolver: resolver, out: out, lang: cfg.Language}
	switch {
	case opts.platforms:
		return a.printPlatforms(), nil
	case opts.probe:
		return a.probe(), nil
	case opts.list:
		return a.list()
	case opts.add != "":
		return a.mutate(opts.add, (*spellcheck.Checker).AddWord, "added")
	case opts.remove != "":
		return a.mutate(opts.remove, (*spellcheck.Checker).RemoveWord, "removed")
	case opts.interactive:
		if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
			return 1, fmt.Errorf("interactive mode needs a terminal")
		}
		return 0, runInteractive(client, cfg.Language)
	case len(opts.words) > 0:
		return a.check(opts.words)
	default:
		return a.demo()
	}
}

func newLogger(cfg config.Config, verbose bool) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if verbose || level == zap.DebugLevel {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// newResolver picks the WebAssembly guest when one is configured and the
// native table otherwise.
func newResolver(cfg config.Config, logger *zap.Logger) (*platform.Resolver, func()) {
	if cfg.WasmModule != "" {
		ctx := context.Background()
		loader := engine.NewFileLoader(ctx, cfg.WasmModule, &engine.Config{
			MemoryLimitPages: cfg.MemoryLimitPages,
			DictionaryDir:    cfg.DictionaryDir,
			Logger:           logger,
		})
		return platform.NewSingle(loader.Load, platform.WithLogger(logger)), func() { loader.Close(ctx) }
	}

	loaders := spellcheck.NativeLoaders(spellcheck.NativeOptions{
		Logger:         logger,
		EnchantLibrary: cfg.EnchantLibrary,
	})
	return platform.NewTable(loaders, platform.WithLogger(logger)), func() {}
}

type app struct {
	client   *spellcheck.Client
	resolver *platform.Resolver
	out      io.Writer
	lang     string
}

func (a *app) printPlatforms() int {
	fmt.Fprintf(a.out, "Build: %s\n", spellcheck.BuildMode)
	fmt.Fprintf(a.out, "Mode: %s\n", a.resolver.Mode())
	fmt.Fprintf(a.out, "Current: %s\n", a.resolver.Target())
	targets := a.resolver.Targets()
	if a.resolver.Mode() == platform.ModeSingle {
		fmt.Fprintln(a.out, "Targets: any")
		return 0
	}
	fmt.Fprintln(a.out, "Targets:")
	for _, t := range targets {
		mark := " "
		if t == a.resolver.Target() {
			mark = "*"
		}
		fmt.Fprintf(a.out, " %s %s\n", mark, t)
	}
	if !a.resolver.Supports() {
		return 1
	}
	return 0
}

func (a *app) probe() int {
	if a.client.IsAvailable() {
		fmt.Fprintln(a.out, "available")
		return 0
	}
	fmt.Fprintln(a.out, "unavailable")
	return 1
}

func (a *app) list() (int, error) {
	langs, err := a.client.SupportedLanguages()
	if err != nil {
		return 1, fmt.Errorf("list languages: %w", err)
	}
	for _, l := range langs {
		fmt.Fprintln(a.out, l)
	}
	return 0, nil
}

func (a *app) mutate(word string, fn func(*spellcheck.Checker, string) error, verb string) (int, error) {
	checker, err := a.client.New(a.lang)
	if err != nil {
		return 1, fmt.Errorf("create checker: %w", err)
	}
	defer checker.Dispose()

	if err := fn(checker, word); err != nil {
		return 1, err
	}
	fmt.Fprintf(a.out, "%s %q (%s)\n", verb, word, a.lang)
	return 0, nil
}

// check prints one line per word and returns 1 when any is misspelled.
func (a *app) check(words []string) (int, error) {
	checker, err := a.client.New(a.lang)
	if err != nil {
		return 1, fmt.Errorf("create checker: %w", err)
	}
	defer checker.Dispose()

	results, err := checkWords(checker, words)
	if err != nil {
		return 1, err
	}
	code := 0
	for _, r := range results {
		if r.correct {
			fmt.Fprintf(a.out, "ok    %s\n", r.word)
			continue
		}
		code = 1
		fmt.Fprintf(a.out, "wrong %s: %s\n", r.word, strings.Join(r.suggestions, ", "))
	}
	return code, nil
}

// demo lists languages, then checks and corrects a sample word.
func (a *app) demo() (int, error) {
	langs, err := a.client.SupportedLanguages()
	if err != nil {
		return 1, fmt.Errorf("list languages: %w", err)
	}
	fmt.Fprintf(a.out, "Supported languages: %s\n", strings.Join(langs, ", "))

	checker, err := a.client.New(a.lang)
	if err != nil {
		return 1, fmt.Errorf("create checker: %w", err)
	}
	defer checker.Dispose()

	for _, word := range []string{"Hello", "Hellow"} {
		ok, err := checker.TestSpelling(word)
		if err != nil {
			return 1, err
		}
		fmt.Fprintf(a.out, "TestSpelling(%q) = %v\n", word, ok)
	}
	suggestions, err := checker.Suggestions("Hellow")
	if err != nil {
		return 1, err
	}
	fmt.Fprintf(a.out, "Suggestions(%q) = [%s]\n", "Hellow", strings.Join(suggestions, ", "))
	return 0, nil
}
