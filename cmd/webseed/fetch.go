package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/webseed"
	"github.com/fwojciec/webseed/etree"
	"github.com/fwojciec/webseed/fs"
	"github.com/fwojciec/webseed/scrape"
)

// apply overlays the flags that were actually passed onto the config.
func (c *FetchCmd) apply(cfg webseed.Config) webseed.Config {
	if c.Format != nil {
		cfg.Format = webseed.Format(*c.Format)
	}
	if c.Mode != nil {
		cfg.Mode = webseed.Mode(*c.Mode)
	}
	if c.Output != nil {
		cfg.OutputDir = *c.Output
	}
	if c.Name != nil {
		cfg.OutputName = *c.Name
	}
	if c.SingleFile {
		cfg.SingleFile = true
	}
	if c.Images {
		cfg.IncludeImages = true
	}
	if c.NoMetadata {
		cfg.ExtractMetadata = false
	}
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, c.Ignore...)
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.NoCache {
		cfg.CacheEnabled = false
	}
	if c.FailOnEmpty {
		cfg.FailOnEmpty = true
	}
	if c.Timeout > 0 {
		cfg.FetchTimeout = c.Timeout
	}
	return cfg
}

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	cfg := deps.Config

	filter, err := webseed.NewSourceFilter(cfg.IgnorePatterns)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webseed.ErrorMessage(err))
		return err
	}

	limiter := scrape.NewDomainLimiter(cfg.RateLimit)
	for domain, perMinute := range cfg.DomainRateLimits {
		limiter.Configure(domain, perMinute)
	}

	formatter := newFormatter(cfg.Format)
	writer := newWriter(cfg, formatter)

	var images *scrape.ImageStore
	if cfg.IncludeImages {
		if writer == nil {
			fmt.Fprintln(deps.Stderr, "images require --output; skipping image download")
		} else {
			images = scrape.NewImageStore(deps.Images, writer)
		}
	}

	pipeline := &scrape.Pipeline{
		Fetcher:     deps.Fetcher,
		Extractor:   deps.Extractor,
		Formatter:   formatter,
		Cache:       deps.Cache,
		Limiter:     limiter,
		Images:      images,
		Tokens:      deps.Tokens,
		Filter:      filter,
		Concurrency: cfg.Concurrency,
		RetryDelays: cfg.RetryDelays,
		CacheTTL:    cfg.CacheTTL,
		FailOnEmpty: cfg.FailOnEmpty,
	}
	// A nil *fs.Writer must not become a non-nil OutputWriter.
	if writer != nil {
		pipeline.Output = writer
	}

	summary, err := pipeline.Run(deps.Ctx, c.URLs, newProgress(deps.Stderr))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webseed.ErrorMessage(err))
		return err
	}

	if writer == nil {
		printDocuments(deps.Stdout, summary)
	}
	printSummary(deps.Stderr, summary)

	if summary.Failed > 0 {
		return webseed.Errorf(webseed.EINTERNAL, "%d of %d sources failed", summary.Failed, len(c.URLs))
	}
	return nil
}

// newFormatter maps the configured format to its serializer. Validate
// has already rejected anything else.
func newFormatter(format webseed.Format) webseed.Formatter {
	switch format {
	case webseed.FormatXML:
		return etree.NewFormatter()
	case webseed.FormatRaw:
		return webseed.NewRawFormatter()
	default:
		return webseed.NewMarkdownFormatter()
	}
}

// newWriter builds the output writer, or nil when output goes to stdout.
func newWriter(cfg webseed.Config, formatter webseed.Formatter) *fs.Writer {
	if cfg.OutputDir == "" {
		return nil
	}
	name := cfg.OutputName
	if name == "" {
		name = "webseed-" + time.Now().Format("2006-01-02")
	}
	var opts []fs.WriterOption
	if cfg.SingleFile {
		opts = append(opts, fs.WithSingleFile(name+"."+formatter.Extension()))
	}
	return fs.NewWriter(cfg.OutputDir, name, opts...)
}

// newProgress reports batch progress on stderr, keeping stdout clean
// for document output.
func newProgress(stderr io.Writer) scrape.ProgressFunc {
	return func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(stderr, "Processing %d sources\n", event.Total)
		case scrape.ProgressFailed:
			fmt.Fprintf(stderr, "  fail %s: %v\n", event.Source, event.Error)
		case scrape.ProgressFinished:
			// Summary printed after the batch completes
		}
	}
}

// printDocuments writes the formatted documents to stdout in input
// order, separated by blank lines.
func printDocuments(stdout io.Writer, summary *scrape.Summary) {
	first := true
	for i := range summary.Results {
		result := &summary.Results[i]
		if result.Status != scrape.StatusSucceeded && result.Status != scrape.StatusEmpty {
			continue
		}
		if !first {
			fmt.Fprint(stdout, "\n\n")
		}
		first = false
		_, _ = stdout.Write(result.Output)
	}
	if !first {
		fmt.Fprintln(stdout)
	}
}

// printSummary reports the batch outcome on stderr.
func printSummary(stderr io.Writer, summary *scrape.Summary) {
	total := len(summary.Results)
	fmt.Fprintf(stderr, "Processed %d sources: %d succeeded, %d empty, %d skipped, %d failed (%s, %s)\n",
		total, summary.Succeeded, summary.Empty, summary.Skipped, summary.Failed,
		scrape.FormatBytes(summary.Bytes), scrape.FormatTokens(summary.Tokens))
}
