package main

import (
	"fmt"

	"github.com/fwojciec/webseed"
	"github.com/fwojciec/webseed/scrape"
)

// apply overlays the flags that were actually passed onto the config.
func (c *TranscriptCmd) apply(cfg webseed.Config) webseed.Config {
	if c.Format != nil {
		cfg.Format = webseed.Format(*c.Format)
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
	if c.MaxComments != nil {
		cfg.MaxComments = *c.MaxComments
	}
	if c.Timestamps {
		cfg.Timestamps = true
	}
	if c.Dir != nil {
		cfg.TranscriptDir = *c.Dir
	}
	return cfg
}

// Run executes the transcript command.
func (c *TranscriptCmd) Run(deps *Dependencies) error {
	cfg := deps.Config

	opts := webseed.TranscriptOptions{Timestamps: cfg.Timestamps}
	// Comments stay off unless asked for; --max-comments alone implies
	// --comments.
	if c.Comments || c.MaxComments != nil {
		opts.MaxComments = cfg.MaxComments
	}

	formatter := newFormatter(cfg.Format)
	writer := newWriter(cfg, formatter)

	pipeline := &scrape.Pipeline{
		Formatter:      formatter,
		Tokens:         deps.Tokens,
		Transcripts:    deps.Transcripts,
		Concurrency:    cfg.Concurrency,
		TranscriptOpts: opts,
		FailOnEmpty:    cfg.FailOnEmpty,
	}
	if writer != nil {
		pipeline.Output = writer
	}

	summary, err := pipeline.RunTranscripts(deps.Ctx, c.IDs, newProgress(deps.Stderr))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webseed.ErrorMessage(err))
		return err
	}

	if writer == nil {
		printDocuments(deps.Stdout, summary)
	}
	printSummary(deps.Stderr, summary)

	if summary.Failed > 0 {
		return webseed.Errorf(webseed.EINTERNAL, "%d of %d transcripts failed", summary.Failed, len(c.IDs))
	}
	return nil
}
