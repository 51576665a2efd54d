package webseed

import "time"

// Config holds every option recognized by the pipeline. It is threaded
// explicitly from the entry point; there is no ambient global
// configuration.
type Config struct {
	// Mode selects the fetch strategy (basic, advanced, super).
	Mode Mode

	// Format selects the output serialization (markdown, xml, raw).
	Format Format

	// IncludeImages enables image download, dedup, and local storage.
	IncludeImages bool

	// ExtractMetadata enables OpenGraph metadata extraction.
	ExtractMetadata bool

	// IgnorePatterns are regexps; sources matching any are skipped.
	IgnorePatterns []string

	// MaxComments caps transcript comments; zero disables them.
	MaxComments int

	// Timestamps prefixes transcript paragraphs with start times.
	Timestamps bool

	// CacheEnabled turns the normalization cache on.
	CacheEnabled bool

	// CacheTTL is how long cache entries stay fresh.
	CacheTTL time.Duration

	// CachePath is the cache database location. Empty selects the
	// default under the user's home directory.
	CachePath string

	// RateLimit is the default requests-per-minute per domain.
	RateLimit int

	// DomainRateLimits overrides RateLimit for specific domains.
	DomainRateLimits map[string]int

	// Concurrency bounds the batch worker pool.
	Concurrency int

	// SingleFile concatenates all batch output into one file.
	SingleFile bool

	// OutputDir is where formatted documents and image assets land.
	// Empty means stdout.
	OutputDir string

	// OutputName overrides the derived output file name.
	OutputName string

	// TranscriptDir is where transcript JSON dumps are read from.
	TranscriptDir string

	// FailOnEmpty counts empty-content sources as failures in the batch
	// summary instead of successes.
	FailOnEmpty bool

	// FetchTimeout bounds a single fetch attempt.
	FetchTimeout time.Duration

	// RetryDelays are the backoff delays between fetch attempts. Nil
	// selects the default schedule.
	RetryDelays []time.Duration
}

// DefaultConfig returns the configuration used when no file or flags
// override it. The per-domain rate limits carry conservative defaults
// for rate-sensitive hosts.
func DefaultConfig() Config {
	return Config{
		Mode:            ModeBasic,
		Format:          FormatMarkdown,
		ExtractMetadata: true,
		MaxComments:     30,
		CacheEnabled:    true,
		CacheTTL:        time.Hour,
		RateLimit:       10,
		DomainRateLimits: map[string]int{
			"github.com":  5,
			"youtube.com": 3,
		},
		Concurrency:  10,
		FetchTimeout: 30 * time.Second,
	}
}

// Validate rejects configurations that would fail mid-batch. Returns
// EINVALID; called once before any processing starts.
func (c *Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if _, err := ParseFormat(string(c.Format)); err != nil {
		return err
	}
	if c.RateLimit <= 0 {
		return Errorf(EINVALID, "rate limit must be positive, got %d", c.RateLimit)
	}
	for domain, limit := range c.DomainRateLimits {
		if limit <= 0 {
			return Errorf(EINVALID, "rate limit for %q must be positive, got %d", domain, limit)
		}
	}
	if c.Concurrency <= 0 {
		return Errorf(EINVALID, "concurrency must be positive, got %d", c.Concurrency)
	}
	if c.MaxComments < 0 {
		return Errorf(EINVALID, "max comments must not be negative, got %d", c.MaxComments)
	}
	if _, err := NewSourceFilter(c.IgnorePatterns); err != nil {
		return err
	}
	return nil
}
