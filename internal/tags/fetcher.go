package tags

import (
	"context"
	"errors"
	"fmt"
	"time"

	"poolTags/internal/metrics"
	"poolTags/internal/model"
	"poolTags/internal/subgraph"
)

var (
	// ErrPageLimit is returned when a fetch needs more pages than allowed.
	ErrPageLimit = errors.New("page limit reached")
	// ErrCursorStalled is returned when a full page does not move the cursor forward.
	ErrCursorStalled = errors.New("cursor did not advance")
)

// PoolSource fetches one page of pools created after lastTimestamp.
type PoolSource interface {
	FetchPools(ctx context.Context, endpoint string, lastTimestamp int64) ([]model.PoolRecord, error)
}

// FetcherConfig holds optional termination guards. Zero values disable them.
type FetcherConfig struct {
	MaxPages int
}

// Stats summarises one fetch.
type Stats struct {
	Pages      int
	Pools      int
	Rejected   int
	Tags       int
	LastCursor int64
}

// Result is the outcome of a successful fetch.
type Result struct {
	Tags  []model.ContractTag
	Stats Stats
}

// Fetcher pages through a subgraph and builds contract tags. It holds no
// per-call state, so concurrent calls do not interfere.
type Fetcher struct {
	cfg     FetcherConfig
	source  PoolSource
	diag    Diagnostics
	metrics *metrics.Metrics
}

// NewFetcher builds a Fetcher. diag and m may be nil.
func NewFetcher(cfg FetcherConfig, source PoolSource, diag Diagnostics, m *metrics.Metrics) *Fetcher {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	return &Fetcher{
		cfg:     cfg,
		source:  source,
		diag:    diag,
		metrics: m,
	}
}

// ReturnTags fetches every pool for chainID and returns its contract tags.
func (f *Fetcher) ReturnTags(ctx context.Context, chainID, apiKey string) ([]model.ContractTag, error) {
	result, err := f.Fetch(ctx, chainID, apiKey)
	if err != nil {
		return nil, err
	}
	return result.Tags, nil
}

// Fetch runs the page loop. Any failure aborts the whole fetch and no
// partial result is returned.
func (f *Fetcher) Fetch(ctx context.Context, chainID, apiKey string) (Result, error) {
	if f.source == nil {
		return Result{}, fmt.Errorf("pool source is nil")
	}

	endpoint, err := subgraph.ResolveEndpoint(chainID, apiKey)
	if err != nil {
		f.metrics.FetchFailed(subgraph.Kind(err))
		return Result{}, err
	}

	var (
		cursor int64
		stats  Stats
	)
	tags := make([]model.ContractTag, 0)

	for page := 1; ; page++ {
		if f.cfg.MaxPages > 0 && page > f.cfg.MaxPages {
			return Result{}, f.fail(chainID, page, cursor, fmt.Errorf("%w (%d)", ErrPageLimit, f.cfg.MaxPages))
		}

		start := time.Now()
		pools, err := f.source.FetchPools(ctx, endpoint, cursor)
		if err != nil {
			return Result{}, f.fail(chainID, page, cursor, err)
		}
		latency := time.Since(start)

		pageTags, err := Transform(chainID, pools, f.diag)
		if err != nil {
			return Result{}, f.fail(chainID, page, cursor, err)
		}
		tags = append(tags, pageTags...)

		stats.Pages++
		stats.Pools += len(pools)
		stats.Rejected += len(pools) - len(pageTags)
		f.metrics.PageFetched(len(pools), len(pageTags), latency)
		f.diag.PageFetched(chainID, page, cursor, len(pools))

		if len(pools) < subgraph.PageSize {
			break
		}

		next := maxTimestamp(pools)
		if next <= cursor {
			return Result{}, f.fail(chainID, page, cursor, ErrCursorStalled)
		}
		cursor = next
	}

	stats.Tags = len(tags)
	stats.LastCursor = cursor
	return Result{Tags: tags, Stats: stats}, nil
}

func (f *Fetcher) fail(chainID string, page int, cursor int64, err error) error {
	var gqlErr *subgraph.GraphQLError
	if errors.As(err, &gqlErr) {
		for _, msg := range gqlErr.Messages {
			f.diag.UpstreamError(chainID, msg)
		}
	}
	f.metrics.FetchFailed(failureKind(err))
	return fmt.Errorf("fetch page %d (chain %s, cursor %d): %w", page, chainID, cursor, err)
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, ErrPageLimit):
		return "page_limit"
	case errors.Is(err, ErrCursorStalled):
		return "cursor_stalled"
	default:
		return subgraph.Kind(err)
	}
}

// maxTimestamp is computed over the raw page so rejected pools still move the cursor.
func maxTimestamp(pools []model.PoolRecord) int64 {
	var latest int64
	for _, pool := range pools {
		if ts := int64(pool.CreatedTimestamp); ts > latest {
			latest = ts
		}
	}
	return latest
}
