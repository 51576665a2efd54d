// Package yaml loads pipeline configuration from YAML files.
package yaml

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/webseed"
	"gopkg.in/yaml.v3"
)

// Find returns the path of the first config file present in the
// standard locations: ./webseed.yaml, ./webseed.yml, ~/.webseed.yaml,
// then $WEBSEED_CONFIG. Returns an empty string when none exists.
func Find() string {
	for _, p := range []string{"webseed.yaml", "webseed.yml"} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".webseed.yaml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if p := os.Getenv("WEBSEED_CONFIG"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load overlays base with values from the YAML file at path. Options
// absent from the file keep their base values; domain rate limits merge
// per domain rather than replacing the whole map. An empty path means
// no config file: base is returned unchanged.
func Load(path string, base webseed.Config) (webseed.Config, error) {
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return base, webseed.Errorf(webseed.EINVALID, "reading config file %s: %v", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, webseed.Errorf(webseed.EINVALID, "parsing config file %s: %v", path, err)
	}

	return fc.apply(base, path)
}

// fileConfig mirrors the config file layout. Pointer fields distinguish
// "absent" from zero values so a file only overrides what it names.
type fileConfig struct {
	Scraping struct {
		DefaultMode     *string  `yaml:"default_mode"`
		Timeout         *int     `yaml:"timeout"`
		IncludeImages   *bool    `yaml:"include_images"`
		IgnorePatterns  []string `yaml:"ignore_patterns"`
		ExtractMetadata *bool    `yaml:"extract_metadata"`
		Concurrency     *int     `yaml:"concurrency"`
		FailOnEmpty     *bool    `yaml:"fail_on_empty"`
	} `yaml:"scraping"`

	Output struct {
		DefaultFormat *string `yaml:"default_format"`
		Directory     *string `yaml:"directory"`
		SingleFile    *bool   `yaml:"single_file"`
	} `yaml:"output"`

	RateLimiting struct {
		RequestsPerMinute *int           `yaml:"requests_per_minute"`
		DomainSpecific    map[string]int `yaml:"domain_specific"`
	} `yaml:"rate_limiting"`

	Cache struct {
		Enabled *bool   `yaml:"enabled"`
		TTL     *string `yaml:"ttl"`
		Path    *string `yaml:"path"`
	} `yaml:"cache"`

	Transcripts struct {
		MaxComments *int    `yaml:"max_comments"`
		Timestamps  *bool   `yaml:"timestamps"`
		Directory   *string `yaml:"directory"`
	} `yaml:"transcripts"`
}

func (fc *fileConfig) apply(base webseed.Config, path string) (webseed.Config, error) {
	cfg := base

	if fc.Scraping.DefaultMode != nil {
		cfg.Mode = webseed.Mode(*fc.Scraping.DefaultMode)
	}
	if fc.Scraping.Timeout != nil {
		cfg.FetchTimeout = time.Duration(*fc.Scraping.Timeout) * time.Second
	}
	if fc.Scraping.IncludeImages != nil {
		cfg.IncludeImages = *fc.Scraping.IncludeImages
	}
	if fc.Scraping.IgnorePatterns != nil {
		cfg.IgnorePatterns = fc.Scraping.IgnorePatterns
	}
	if fc.Scraping.ExtractMetadata != nil {
		cfg.ExtractMetadata = *fc.Scraping.ExtractMetadata
	}
	if fc.Scraping.Concurrency != nil {
		cfg.Concurrency = *fc.Scraping.Concurrency
	}
	if fc.Scraping.FailOnEmpty != nil {
		cfg.FailOnEmpty = *fc.Scraping.FailOnEmpty
	}

	if fc.Output.DefaultFormat != nil {
		cfg.Format = webseed.Format(*fc.Output.DefaultFormat)
	}
	if fc.Output.Directory != nil {
		cfg.OutputDir = *fc.Output.Directory
	}
	if fc.Output.SingleFile != nil {
		cfg.SingleFile = *fc.Output.SingleFile
	}

	if fc.RateLimiting.RequestsPerMinute != nil {
		cfg.RateLimit = *fc.RateLimiting.RequestsPerMinute
	}
	if len(fc.RateLimiting.DomainSpecific) > 0 {
		merged := make(map[string]int, len(base.DomainRateLimits)+len(fc.RateLimiting.DomainSpecific))
		for domain, limit := range base.DomainRateLimits {
			merged[domain] = limit
		}
		for domain, limit := range fc.RateLimiting.DomainSpecific {
			merged[domain] = limit
		}
		cfg.DomainRateLimits = merged
	}

	if fc.Cache.Enabled != nil {
		cfg.CacheEnabled = *fc.Cache.Enabled
	}
	if fc.Cache.TTL != nil {
		ttl, err := time.ParseDuration(*fc.Cache.TTL)
		if err != nil {
			return base, webseed.Errorf(webseed.EINVALID, "invalid cache ttl %q in %s", *fc.Cache.TTL, path)
		}
		cfg.CacheTTL = ttl
	}
	if fc.Cache.Path != nil {
		cfg.CachePath = *fc.Cache.Path
	}

	if fc.Transcripts.MaxComments != nil {
		cfg.MaxComments = *fc.Transcripts.MaxComments
	}
	if fc.Transcripts.Timestamps != nil {
		cfg.Timestamps = *fc.Transcripts.Timestamps
	}
	if fc.Transcripts.Directory != nil {
		cfg.TranscriptDir = *fc.Transcripts.Directory
	}

	return cfg, nil
}
