package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/webseed"
)

var _ webseed.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor logs each extraction with its node count.
type LoggingExtractor struct {
	next   webseed.Extractor
	logger *slog.Logger
}

func NewLoggingExtractor(next webseed.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

func (e *LoggingExtractor) Extract(html, baseURL string) (*webseed.Extraction, error) {
	begin := time.Now()
	extraction, err := e.next.Extract(html, baseURL)
	nodes := 0
	if extraction != nil {
		nodes = len(extraction.Nodes)
	}
	e.logger.Info("extract",
		"url", baseURL,
		"nodes", nodes,
		"duration", time.Since(begin),
		"err", err,
	)
	return extraction, err
}
