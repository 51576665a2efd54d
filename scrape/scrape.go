// Package scrape orchestrates batch processing of web pages and
// platform transcripts. It coordinates source deduplication,
// rate-limited fetching with retries, cache consultation, content
// extraction, image resolution, formatting, metrics, and atomic
// output writing.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/webseed"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pipeline processes a batch of sources. The hard work (extraction,
// formatting) is pure and synchronous; concurrency is confined to the
// worker pool around fetching, with the rate limiter's Acquire as the
// only blocking point.
type Pipeline struct {
	Fetcher     webseed.Fetcher
	Extractor   webseed.Extractor
	Formatter   webseed.Formatter
	Cache       webseed.Cache             // optional; nil disables caching
	Limiter     webseed.DomainLimiter     // optional; nil disables rate limiting
	Images      *ImageStore               // optional; nil disables image resolution
	Tokens      webseed.TokenCounter      // optional; nil falls back to the estimator
	Filter      *webseed.SourceFilter     // optional ignore patterns
	Transcripts webseed.TranscriptService // transcript batches only
	Output      webseed.OutputWriter      // optional; results always carry formatted bytes

	Concurrency    int
	RetryDelays    []time.Duration
	CacheTTL       time.Duration
	TranscriptOpts webseed.TranscriptOptions

	// FailOnEmpty counts sources whose extraction yields no visible
	// text as failures instead of successes with empty content.
	FailOnEmpty bool
}

// Status classifies the outcome of one batch source.
type Status string

// Source outcomes.
const (
	StatusSucceeded Status = "succeeded"
	StatusEmpty     Status = "empty"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result holds the outcome of processing a single source.
type Result struct {
	Position int
	Source   string
	Status   Status

	// Reason explains a skip: "duplicate" or "ignored".
	Reason string

	// Cached reports that the document came from the cache.
	Cached bool

	Document *webseed.Document
	Output   []byte
	Err      error
}

// Summary aggregates one batch run. Empty sources are successes with
// no visible content; they are counted separately and never as failed
// unless the pipeline runs with FailOnEmpty.
type Summary struct {
	Results   []Result
	Succeeded int
	Empty     int
	Skipped   int
	Failed    int
	Bytes     int
	Tokens    int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Cached    bool
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Run processes a batch of page URLs and returns the summary. Results
// come back in input order regardless of completion order. Per-source
// failures are isolated; only context cancellation or an output write
// failure aborts the run, and either leaves previously committed
// output and the cache intact.
func (p *Pipeline) Run(ctx context.Context, sources []string, progress ProgressFunc) (*Summary, error) {
	return p.run(ctx, sources, progress, p.processPage)
}

// RunTranscripts processes a batch of transcript IDs through the same
// stages as Run, minus fetching, caching, and image resolution: the
// transcript service is a local store and its documents carry no
// fetchable references.
func (p *Pipeline) RunTranscripts(ctx context.Context, ids []string, progress ProgressFunc) (*Summary, error) {
	return p.run(ctx, ids, progress, p.processTranscript)
}

func (p *Pipeline) run(ctx context.Context, sources []string, progress ProgressFunc, process func(ctx context.Context, position int, source string) Result) (*Summary, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	// Admission runs sequentially in input order so deduplication is
	// deterministic: the first occurrence is processed, later ones skip.
	queue := NewQueue(p.Filter)
	results := make([]Result, len(sources))
	var pending []int
	for i, source := range sources {
		results[i] = Result{Position: i, Source: source}
		if ok, reason := queue.Admit(source); !ok {
			results[i].Status = StatusSkipped
			results[i].Reason = reason
			continue
		}
		pending = append(pending, i)
	}

	total := len(pending)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan Result, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, i := range pending {
			position, source := i, sources[i]
			g.Go(func() error {
				resultCh <- process(gctx, position, source)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	for result := range resultCh {
		completed.Add(1)
		results[result.Position] = result

		if progress != nil {
			event := ProgressEvent{
				Completed: int(completed.Load()),
				Total:     total,
				Source:    result.Source,
				Cached:    result.Cached,
			}
			if result.Err != nil {
				event.Type = ProgressFailed
				event.Error = result.Err
			} else {
				event.Type = ProgressCompleted
			}
			progress(event)
		}
	}

	// Cancellation abandons in-flight work only: staged output is
	// discarded, previously committed output and the cache stay intact.
	if err := ctx.Err(); err != nil {
		if p.Output != nil {
			_ = p.Output.Abort()
		}
		return nil, err
	}

	if p.Output != nil {
		if err := p.write(results); err != nil {
			_ = p.Output.Abort()
			return nil, err
		}
		if err := p.Output.Commit(); err != nil {
			return nil, fmt.Errorf("committing output: %w", err)
		}
	}

	summary := summarize(results)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return summary, nil
}

// write stages every successful document in input order, so single-file
// concatenation is deterministic.
func (p *Pipeline) write(results []Result) error {
	for i := range results {
		result := &results[i]
		if result.Status != StatusSucceeded && result.Status != StatusEmpty {
			continue
		}
		name := OutputName(result.Source, p.Formatter.Extension())
		if err := p.Output.WriteDocument(name, result.Output); err != nil {
			return fmt.Errorf("writing %s: %w", result.Source, err)
		}
	}
	return nil
}

// processPage handles one URL: cache consult, rate-limited fetch with
// retry, extraction, image resolution, formatting, metrics, cache write.
func (p *Pipeline) processPage(ctx context.Context, position int, source string) Result {
	result := Result{Position: position, Source: source}

	key := webseed.CacheKey(source)
	if p.Cache != nil {
		// Cache I/O errors are treated as misses; the pipeline
		// recomputes rather than failing the request.
		if entry, err := p.Cache.Get(ctx, key); err == nil && entry.Document != nil {
			result.Cached = true
			result.Document = entry.Document
			return p.finish(ctx, result)
		}
	}

	if p.Limiter != nil {
		if err := p.Limiter.Acquire(ctx, sourceDomain(source)); err != nil {
			result.Status = StatusFailed
			result.Err = err
			return result
		}
	}

	html, err := FetchWithRetry(ctx, source, p.Fetcher.Fetch, p.RetryDelays)
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	began := time.Now()
	extraction, err := p.Extractor.Extract(html, source)
	if err != nil {
		// A malformed page degrades to an empty document; the batch
		// continues and metrics report zero content.
		extraction = &webseed.Extraction{}
	}

	doc := &webseed.Document{
		ID:        uuid.New().String(),
		SourceID:  source,
		Metadata:  extraction.Metadata,
		Nodes:     extraction.Nodes,
		FetchedAt: time.Now().UTC(),
	}
	if p.Images != nil {
		p.Images.Resolve(ctx, doc)
	}
	doc.ContentHash = ContentHash(doc.Nodes)
	doc.Duration = time.Since(began)
	result.Document = doc

	result = p.finish(ctx, result)

	if p.Cache != nil && result.Err == nil {
		_ = p.Cache.Put(ctx, &webseed.CacheEntry{
			Key:      key,
			Document: doc,
			TTL:      p.CacheTTL,
		})
	}

	return result
}

// processTranscript handles one transcript ID: load, normalize,
// format, metrics.
func (p *Pipeline) processTranscript(ctx context.Context, position int, id string) Result {
	result := Result{Position: position, Source: id}

	transcript, err := p.Transcripts.Transcript(ctx, id)
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	began := time.Now()
	doc := transcript.Normalize(p.TranscriptOpts)
	doc.ID = uuid.New().String()
	doc.FetchedAt = time.Now().UTC()
	doc.ContentHash = ContentHash(doc.Nodes)
	doc.Duration = time.Since(began)
	result.Document = doc

	return p.finish(ctx, result)
}

// finish formats the result's document, computes metrics, and assigns
// the final status. Formatting errors are isolated per-source failures.
func (p *Pipeline) finish(ctx context.Context, result Result) Result {
	output, err := p.Formatter.Format(result.Document)
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	result.Output = output
	result.Document.ByteSize = len(output)

	counter := p.Tokens
	if counter == nil {
		counter = webseed.TokenEstimator{}
	}
	if tokens, err := counter.CountTokens(ctx, string(output)); err == nil {
		result.Document.TokenCount = tokens
	}

	if result.Document.Empty() {
		if p.FailOnEmpty {
			result.Status = StatusFailed
			result.Err = webseed.Errorf(webseed.ENOTFOUND, "no content extracted from %s", result.Source)
		} else {
			result.Status = StatusEmpty
		}
		return result
	}

	result.Status = StatusSucceeded
	return result
}

func summarize(results []Result) *Summary {
	summary := &Summary{Results: results}
	for i := range results {
		result := &results[i]
		switch result.Status {
		case StatusSucceeded:
			summary.Succeeded++
		case StatusEmpty:
			summary.Empty++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
		}
		if result.Document != nil && result.Err == nil {
			summary.Bytes += result.Document.ByteSize
			summary.Tokens += result.Document.TokenCount
		}
	}
	return summary
}

// sourceDomain extracts the host for rate limiting, without the port,
// so configured limits for bare domains apply to every port variant.
// Unparseable sources rate-limit under their own literal value.
func sourceDomain(source string) string {
	u, err := url.Parse(source)
	if err != nil || u.Hostname() == "" {
		return source
	}
	return u.Hostname()
}
