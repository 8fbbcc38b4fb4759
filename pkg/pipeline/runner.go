package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pagebind/pagebind/pkg/cache"
	"github.com/pagebind/pagebind/pkg/layout"
	"github.com/pagebind/pagebind/pkg/observability"
	"github.com/pagebind/pagebind/pkg/pagespec"
	"github.com/pagebind/pagebind/pkg/render"
	"github.com/pagebind/pagebind/pkg/render/raster"
	"github.com/pagebind/pagebind/pkg/render/stream"
	"github.com/pagebind/pagebind/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger

	// probeKeys and renderKeys scope the two cache namespaces apart,
	// so a probe entry can never shadow a rendered document.
	probeKeys  cache.Keyer
	renderKeys cache.Keyer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:      c,
		Logger:     logger,
		probeKeys:  cache.NewScopedKeyer(keyer, "probe:"),
		renderKeys: cache.NewScopedKeyer(keyer, "render:"),
	}
}

// Execute runs the complete probe → layout → render pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	resolver, err := opts.Resolver()
	if err != nil {
		return nil, err
	}
	paths, err := source.Resolve(opts.Input, opts.Sorted)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1+2: probe and layout
	planStart := time.Now()
	entries, hashes, probeHits, err := r.plan(ctx, paths, resolver, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	result.Plan = entries
	result.Stats.PlanTime = time.Since(planStart)
	result.Stats.ImageCount = len(paths)
	result.Stats.PageCount = len(entries)
	result.CacheInfo.ProbeHits = probeHits

	logger.Info("computed page plan",
		"images", len(paths),
		"probe_hits", probeHits,
		"duration", result.Stats.PlanTime)

	// Stage 3: render, with whole-document caching. The key covers the
	// content of every input plus its full plan entry and the backend,
	// so any change to an image or a setting misses.
	renderKey := r.renderKeys.Key(hashes, entries, opts.Backend)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, renderKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			result.Output = data
			result.CacheInfo.RenderHit = true
			logger.Info("document from cache", "bytes", len(data))
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	renderStart := time.Now()
	output, err := r.renderPlan(ctx, entries, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Output = output
	result.Stats.RenderTime = time.Since(renderStart)

	if !opts.Refresh {
		if err := r.Cache.Set(ctx, renderKey, output, TTLRender); err == nil {
			observability.Cache().OnCacheSet(ctx, "render", len(output))
		}
	}

	logger.Info("rendered document",
		"backend", opts.Backend,
		"pages", len(entries),
		"bytes", len(output),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Plan computes the page plan without rendering anything.
func (r *Runner) Plan(ctx context.Context, opts Options) ([]layout.Entry, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	resolver, err := opts.Resolver()
	if err != nil {
		return nil, err
	}
	paths, err := source.Resolve(opts.Input, opts.Sorted)
	if err != nil {
		return nil, err
	}
	entries, _, _, err := r.plan(ctx, paths, resolver, opts.Refresh)
	return entries, err
}

// plan probes every input and computes its layout entry. Probe results
// are cached by content hash; the returned hashes identify each input
// for the render cache key.
func (r *Runner) plan(ctx context.Context, paths []string, resolver *pagespec.Resolver, refresh bool) ([]layout.Entry, []string, int, error) {
	observability.Pipeline().OnLayoutStart(ctx, len(paths))
	layoutStart := time.Now()

	entries := make([]layout.Entry, 0, len(paths))
	hashes := make([]string, 0, len(paths))
	probeHits := 0

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, 0, err
		}

		in, hash, hit, err := r.probe(ctx, path, refresh)
		if err != nil {
			observability.Pipeline().OnLayoutComplete(ctx, len(paths), time.Since(layoutStart), err)
			return nil, nil, 0, err
		}
		if hit {
			probeHits++
		}

		entry, err := layout.Compute(path, in, resolver.Resolve(path))
		if err != nil {
			observability.Pipeline().OnLayoutComplete(ctx, len(paths), time.Since(layoutStart), err)
			return nil, nil, 0, err
		}
		entries = append(entries, entry)
		hashes = append(hashes, hash)
	}

	observability.Pipeline().OnLayoutComplete(ctx, len(paths), time.Since(layoutStart), nil)
	return entries, hashes, probeHits, nil
}

// probe reads one file and extracts its intrinsics, consulting the
// probe cache first. The cache key is the content hash, so renamed or
// re-probed files always hit.
func (r *Runner) probe(ctx context.Context, path string, refresh bool) (layout.Intrinsics, string, bool, error) {
	observability.Pipeline().OnProbeStart(ctx, path)
	probeStart := time.Now()

	data, err := source.ReadFile(path)
	if err != nil {
		observability.Pipeline().OnProbeComplete(ctx, path, time.Since(probeStart), err)
		return layout.Intrinsics{}, "", false, err
	}
	hash := cache.Hash(data)
	key := r.probeKeys.Key(hash)

	if !refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var in layout.Intrinsics
			if err := json.Unmarshal(cached, &in); err == nil {
				observability.Cache().OnCacheHit(ctx, "probe")
				observability.Pipeline().OnProbeComplete(ctx, path, time.Since(probeStart), nil)
				return in, hash, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "probe")
	}

	in, err := source.Probe(path, data)
	if err != nil {
		observability.Pipeline().OnProbeComplete(ctx, path, time.Since(probeStart), err)
		return layout.Intrinsics{}, "", false, err
	}

	if encoded, err := json.Marshal(in); err == nil {
		if err := r.Cache.Set(ctx, key, encoded, TTLProbe); err == nil {
			observability.Cache().OnCacheSet(ctx, "probe", len(encoded))
		}
	}

	observability.Pipeline().OnProbeComplete(ctx, path, time.Since(probeStart), nil)
	return in, hash, false, nil
}

// renderPlan feeds the plan through the chosen backend, loading one
// image at a time.
func (r *Runner) renderPlan(ctx context.Context, entries []layout.Entry, opts Options) ([]byte, error) {
	observability.Pipeline().OnRenderStart(ctx, opts.Backend, len(entries))
	renderStart := time.Now()

	var renderer render.Renderer
	switch opts.Backend {
	case BackendRaster:
		resolver, err := opts.Resolver()
		if err != nil {
			return nil, err
		}
		renderer = raster.New(resolver.DPI())
	default:
		renderer = stream.New()
	}

	err := Each(ctx, entries, renderer.AddPage)
	if err == nil {
		var buf bytes.Buffer
		if err = renderer.Finish(&buf); err == nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Backend, len(entries), time.Since(renderStart), nil)
			return buf.Bytes(), nil
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Backend, len(entries), time.Since(renderStart), err)
	return nil, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
