package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webseed"
	"github.com/fwojciec/webseed/fs"
	"github.com/fwojciec/webseed/gemini"
	"github.com/fwojciec/webseed/goquery"
	"github.com/fwojciec/webseed/htmltomarkdown"
	wshttp "github.com/fwojciec/webseed/http"
	"github.com/fwojciec/webseed/readability"
	"github.com/fwojciec/webseed/rod"
	wsslog "github.com/fwojciec/webseed/slog"
	"github.com/fwojciec/webseed/sqlite"
	"github.com/fwojciec/webseed/trafilatura"
	"github.com/fwojciec/webseed/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPath overrides config file discovery. Set before calling Run().
	ConfigPath string

	// CachePath overrides cache location resolution. Set before calling Run().
	CachePath string

	// SQLite database backing the document cache.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webseed"),
		kong.Description("Turn web pages and transcripts into clean documents for language models"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webseed --help' to see available commands")
	}
	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cmd := firstCommand(args)

	// Configuration: defaults, then the YAML file, then flags.
	configPath := m.ConfigPath
	if configPath == "" {
		configPath = yaml.Find()
	}
	cfg, err := yaml.Load(configPath, webseed.DefaultConfig())
	if err != nil {
		return err
	}

	switch cmd {
	case "fetch":
		cfg = cli.Fetch.apply(cfg)
	case "transcript":
		cfg = cli.Transcript.apply(cfg)
	case "probe":
		if cli.Probe.Mode != nil {
			cfg.Mode = webseed.Mode(*cli.Probe.Mode)
		}
	}
	if cmd == "fetch" || cmd == "transcript" || cmd == "probe" {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	deps.Config = cfg

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	cachePath := m.CachePath
	if cachePath == "" {
		cachePath = resolveCachePath(cfg)
	}
	deps.CachePath = cachePath

	// Wire command-specific dependencies based on command
	if cmd == "fetch" || cmd == "probe" {
		fetcher, err := newPageFetcher(cfg)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		deps.Fetcher = fetcher
		if cli.Verbose {
			deps.Fetcher = wsslog.NewLoggingFetcher(deps.Fetcher, logger)
		}
	}

	if cmd == "probe" {
		deps.Prober = goquery.NewExtractor(nil, false)
		deps.Converter = htmltomarkdown.NewConverter()
	}

	if cmd == "fetch" {
		deps.Extractor = newExtractor(cfg.ExtractMetadata)
		if cli.Verbose {
			deps.Extractor = wsslog.NewLoggingExtractor(deps.Extractor, logger)
		}

		deps.Images = wshttp.NewImageFetcher(wshttp.WithTimeout(cfg.FetchTimeout))

		if cfg.CacheEnabled {
			m.DB = sqlite.NewDB(cachePath)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintf(stderr, "Hint: Set WEBSEED_CACHE to use a different cache path\n")
				return fmt.Errorf("failed to open cache at %q: %w", cachePath, err)
			}
			defer m.Close()
			deps.Cache = sqlite.NewCache(m.DB)
			if cli.Verbose {
				deps.Cache = wsslog.NewLoggingCache(deps.Cache, logger)
			}
		}
	}

	if cmd == "transcript" {
		dir := cfg.TranscriptDir
		if dir == "" {
			dir = "."
		}
		deps.Transcripts = fs.NewTranscriptService(dir)
	}

	if cmd == "fetch" || cmd == "transcript" {
		if counter, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
			deps.Tokens = counter
		} else if cli.Verbose {
			fmt.Fprintf(stderr, "tokenizer unavailable (%v), using byte-length estimate\n", err)
		}
	}

	if kongCtx.Command() == "cache clean" {
		m.DB = sqlite.NewDB(cachePath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set WEBSEED_CACHE to use a different cache path\n")
			return fmt.Errorf("failed to open cache at %q: %w", cachePath, err)
		}
		defer m.Close()
		deps.Cache = sqlite.NewCache(m.DB)
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting. Documents fall back to a
// byte-length estimate when the tokenizer cannot be initialized.
const tokenizerModel = "gemini-2.5-flash"

// firstCommand returns the first non-flag argument, which Kong resolves
// as the command name.
func firstCommand(args []string) string {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			return arg
		}
	}
	return ""
}

// newPageFetcher builds the fetcher for the configured mode: plain
// HTTP for basic, a headless browser for advanced, and a browser with
// DOM stabilization for super.
func newPageFetcher(cfg webseed.Config) (webseed.Fetcher, error) {
	switch cfg.Mode {
	case webseed.ModeAdvanced:
		return rod.NewFetcher(rod.WithFetchTimeout(cfg.FetchTimeout))
	case webseed.ModeSuper:
		return rod.NewFetcher(rod.WithFetchTimeout(cfg.FetchTimeout), rod.WithStabilization())
	default:
		return wshttp.NewFetcher(wshttp.WithTimeout(cfg.FetchTimeout)), nil
	}
}

// newExtractor builds the extraction chain: the native DOM pipeline
// first, with trafilatura and readability as fallbacks for pages the
// density heuristic reduces to nothing.
func newExtractor(withMetadata bool) webseed.Extractor {
	return &webseed.ChainExtractor{
		Primary: goquery.NewExtractor(nil, withMetadata),
		Fallback: &webseed.ChainExtractor{
			Primary:  trafilatura.NewExtractor(),
			Fallback: readability.NewExtractor(),
		},
	}
}

// resolveCachePath picks the cache database location: $WEBSEED_CACHE,
// then the config file value, then ~/.webseed/cache.db.
func resolveCachePath(cfg webseed.Config) string {
	if path := os.Getenv("WEBSEED_CACHE"); path != "" {
		return path
	}
	if cfg.CachePath != "" {
		return cfg.CachePath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "webseed-cache.db"
	}
	dir := filepath.Join(home, ".webseed")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "cache.db")
}
