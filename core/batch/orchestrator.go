package batch

import (
	"context"
	"fmt"
	"time"

	"shop-transformer/core/matching"

	"go.uber.org/zap"
)

// Item is one record to match: a stable record id plus its descriptor.
type Item[D any] struct {
	ID         int
	Descriptor D
}

// Matcher resolves one descriptor. The vehicle and parts matchers satisfy
// this directly.
type Matcher[D any, T matching.Canonical[T]] interface {
	Match(ctx context.Context, d D) matching.Result[T]
}

// Prematcher resolves many descriptors in one pass, keyed by record id.
// Records it cannot resolve are simply absent from the returned map.
type Prematcher[D any, T matching.Canonical[T]] interface {
	PrematchBatch(ctx context.Context, items map[int]D) (map[int]matching.Result[T], error)
}

// Orchestrator drives one matcher over a record set.
type Orchestrator[D any, T matching.Canonical[T]] struct {
	name       string
	matcher    Matcher[D, T]
	prematcher Prematcher[D, T]
	cfg        Config
	logger     *zap.Logger
}

// New builds an orchestrator. name labels the run in logs ("vehicles",
// "parts").
func New[D any, T matching.Canonical[T]](name string, matcher Matcher[D, T], cfg Config, logger *zap.Logger) *Orchestrator[D, T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator[D, T]{
		name:    name,
		matcher: matcher,
		cfg:     cfg.withDefaults(),
		logger:  logger,
	}
}

// WithPrematcher enables the batch fast path and returns the orchestrator.
func (o *Orchestrator[D, T]) WithPrematcher(p Prematcher[D, T]) *Orchestrator[D, T] {
	o.prematcher = p
	return o
}

// Run matches every item and returns the results keyed by record id along
// with the statistics of the run. Duplicate ids collapse to their last
// occurrence before any matching happens, so each id is matched and counted
// exactly once. The only error Run returns is context cancellation; the
// partial results and statistics accumulated up to that point come with it.
func (o *Orchestrator[D, T]) Run(ctx context.Context, items []Item[D]) (map[int]matching.Result[T], *matching.Statistics, error) {
	stats := matching.NewStatistics()
	unique := dedupe(items)
	results := make(map[int]matching.Result[T], len(unique))

	if dropped := len(items) - len(unique); dropped > 0 {
		o.logger.Debug("duplicate record ids collapsed",
			zap.String("matcher", o.name),
			zap.Int("dropped", dropped))
	}
	if len(unique) == 0 {
		return results, stats, nil
	}

	chunks := chunk(unique, o.cfg.ChunkSize)
	start := time.Now()

	for i, records := range chunks {
		if err := ctx.Err(); err != nil {
			return results, stats, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}

		chunkStart := time.Now()
		prematched := o.prematch(ctx, records)

		accepted := 0
		for _, item := range records {
			r, ok := prematched[item.ID]
			if ok && r.Matched && r.Confidence >= o.cfg.PrematchThreshold {
				accepted++
			} else {
				r = o.matcher.Match(ctx, item.Descriptor)
			}
			results[item.ID] = r
			matching.Observe(stats, r)
		}

		o.logger.Info("chunk processed",
			zap.String("matcher", o.name),
			zap.Int("chunk", i+1),
			zap.Int("chunks", len(chunks)),
			zap.Int("records", len(records)),
			zap.Int("prematched", accepted),
			zap.Duration("elapsed", time.Since(chunkStart)))
	}

	o.logger.Info("run finished",
		zap.String("matcher", o.name),
		zap.Int("records", stats.Total),
		zap.Int("matched", stats.Matched),
		zap.Float64("match_rate", stats.MatchRate()),
		zap.Duration("elapsed", time.Since(start)))
	return results, stats, nil
}

// prematch runs the fast path over one chunk. A failing or panicking
// prematcher degrades the chunk to per-record matching.
func (o *Orchestrator[D, T]) prematch(ctx context.Context, records []Item[D]) map[int]matching.Result[T] {
	if o.prematcher == nil {
		return nil
	}

	byID := make(map[int]D, len(records))
	for _, item := range records {
		byID[item.ID] = item.Descriptor
	}

	out, err := o.prematchRecovered(ctx, byID)
	if err != nil {
		o.logger.Warn("prematch degraded to per-record matching",
			zap.String("matcher", o.name),
			zap.Int("records", len(records)),
			zap.Error(err))
		return nil
	}
	return out
}

func (o *Orchestrator[D, T]) prematchRecovered(ctx context.Context, byID map[int]D) (out map[int]matching.Result[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("prematch panicked: %v", r)
		}
	}()
	return o.prematcher.PrematchBatch(ctx, byID)
}

// dedupe collapses duplicate ids to their last occurrence, preserving the
// order of the surviving items.
func dedupe[D any](items []Item[D]) []Item[D] {
	last := make(map[int]int, len(items))
	for i, item := range items {
		last[item.ID] = i
	}
	if len(last) == len(items) {
		return items
	}
	out := make([]Item[D], 0, len(last))
	for i, item := range items {
		if last[item.ID] == i {
			out = append(out, item)
		}
	}
	return out
}

// chunk splits items into slices of at most size.
func chunk[D any](items []Item[D], size int) [][]Item[D] {
	chunks := make([][]Item[D], 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
