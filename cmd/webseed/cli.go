package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/webseed"
	"github.com/fwojciec/webseed/goquery"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	// Config is the merged configuration: defaults, then the YAML file,
	// then command-line flags.
	Config webseed.Config

	// CachePath is the resolved cache database location, set even when
	// the cache itself is disabled.
	CachePath string

	Cache       webseed.Cache
	Fetcher     webseed.Fetcher
	Images      webseed.ImageFetcher
	Extractor   webseed.Extractor
	Prober      *goquery.Extractor
	Converter   webseed.Converter
	Tokens      webseed.TokenCounter
	Transcripts webseed.TranscriptService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log each fetch, extraction, and cache operation"`

	Fetch      FetchCmd      `cmd:"" help:"Fetch web pages and normalize them into clean documents"`
	Transcript TranscriptCmd `cmd:"" help:"Normalize platform transcripts from the transcript directory"`
	Cache      CacheCmd      `cmd:"" help:"Manage the document cache"`
	Probe      ProbeCmd      `cmd:"" help:"Preview the content a full run would extract from one URL"`
}

// FetchCmd is the "fetch" subcommand. Pointer flags distinguish "not
// given" from zero values so flags override the config file only when
// actually passed.
type FetchCmd struct {
	URLs []string `arg:"" name:"url" help:"Page URLs to process"`

	Format      *string       `short:"f" help:"Output format: markdown, xml, or raw"`
	Mode        *string       `short:"m" help:"Fetch mode: basic, advanced, or super"`
	Output      *string       `short:"o" help:"Output directory (default: print to stdout)"`
	Name        *string       `short:"n" help:"Name for the output directory"`
	SingleFile  bool          `help:"Concatenate all documents into one file"`
	Images      bool          `short:"i" help:"Download and deduplicate referenced images"`
	NoMetadata  bool          `help:"Skip OpenGraph metadata extraction"`
	Ignore      []string      `help:"Skip sources matching regex (repeatable)"`
	Concurrency int           `short:"c" help:"Concurrent fetch limit"`
	NoCache     bool          `help:"Bypass the document cache"`
	FailOnEmpty bool          `help:"Count sources with no extractable content as failures"`
	Timeout     time.Duration `short:"t" help:"Fetch timeout per page"`
}

// TranscriptCmd is the "transcript" subcommand.
type TranscriptCmd struct {
	IDs []string `arg:"" name:"id" help:"Transcript IDs to process"`

	Format      *string `short:"f" help:"Output format: markdown, xml, or raw"`
	Output      *string `short:"o" help:"Output directory (default: print to stdout)"`
	Name        *string `short:"n" help:"Name for the output directory"`
	SingleFile  bool    `help:"Concatenate all documents into one file"`
	Comments    bool    `help:"Include top comments"`
	MaxComments *int    `help:"Cap included comments (implies --comments)"`
	Timestamps  bool    `help:"Prefix caption paragraphs with start times"`
	Dir         *string `help:"Transcript directory (default: current directory)"`
}

// CacheCmd groups the cache maintenance subcommands.
type CacheCmd struct {
	Clean CacheCleanCmd `cmd:"" help:"Remove every cached document"`
	Path  CachePathCmd  `cmd:"" help:"Print the cache database location"`
}

// CacheCleanCmd is the "cache clean" subcommand.
type CacheCleanCmd struct{}

// CachePathCmd is the "cache path" subcommand.
type CachePathCmd struct{}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL  string  `arg:"" help:"Page URL to probe"`
	Mode *string `short:"m" help:"Fetch mode: basic, advanced, or super"`
}
