// Package pipeline provides the analyze → render pipeline shared by the CLI
// and the HTTP API.
//
// Centralizing this logic keeps behavior consistent across entry points:
// both go through the same normalization, the same engine invocation with
// observability hooks, and the same render cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	defer runner.Close()
//
//	result, err := runner.Analyze(ctx, g, weights)
//	if err != nil {
//	    return err
//	}
//	svg, hit, err := runner.RenderImage(ctx, g, weights, result, pipeline.FormatSVG)
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/critpathlabs/critpath/pkg/cache"
	"github.com/critpathlabs/critpath/pkg/cpm"
	"github.com/critpathlabs/critpath/pkg/dag"
	"github.com/critpathlabs/critpath/pkg/errors"
	"github.com/critpathlabs/critpath/pkg/observability"
	rdot "github.com/critpathlabs/critpath/pkg/render/dot"
)

// Output format constants for rendered artifacts.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported image formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// ValidateFormat checks that the requested image format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg' or 'png')", format)
	}
	return nil
}

// RenderCacheTTL bounds how long rendered artifacts stay cached. Renders
// are deterministic, so the TTL only limits disk growth.
const RenderCacheTTL = 30 * 24 * time.Hour

// Runner executes analysis and rendering with shared dependencies.
// Each Analyze call is independent; a Runner can serve concurrent requests
// as long as its cache implementation allows it.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables artifact
// caching; a nil logger falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, logger: logger}
}

// Close releases the runner's cache resources.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// Analyze runs the critical-path engine over a normalized graph and a
// resolved weight map, emitting observability events and debug logs.
func (r *Runner) Analyze(ctx context.Context, g *dag.DAG, weights map[string]int) (*cpm.Result, error) {
	observability.Analysis().OnAnalyzeStart(ctx, g.TaskCount(), g.EdgeCount())
	start := time.Now()

	result, err := cpm.Compute(g, weights)
	elapsed := time.Since(start)
	if err != nil {
		observability.Analysis().OnAnalyzeComplete(ctx, 0, 0, elapsed, err)
		return nil, err
	}

	observability.Analysis().OnAnalyzeComplete(ctx, len(result.CriticalEdges), result.TotalDuration, elapsed, nil)
	r.logger.Debug("analysis complete",
		"tasks", g.TaskCount(),
		"edges", g.EdgeCount(),
		"critical", len(result.CriticalEdges),
		"duration", result.TotalDuration,
		"elapsed", elapsed.Round(time.Microsecond))
	return result, nil
}

// RenderImage renders the analyzed graph with critical edges highlighted.
// The second return reports whether the artifact came from cache.
func (r *Runner) RenderImage(ctx context.Context, g *dag.DAG, weights map[string]int, result *cpm.Result, format string) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}

	dot := rdot.ToDOT(g, weights, result.EdgeWeights(), rdot.Options{})
	key := cache.RenderKey(dot, format)

	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "render")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	observability.Analysis().OnRenderStart(ctx, format)
	start := time.Now()

	var data []byte
	var err error
	switch format {
	case FormatPNG:
		data, err = rdot.RenderPNG(ctx, dot)
	default:
		data, err = rdot.RenderSVG(ctx, dot)
	}
	observability.Analysis().OnRenderComplete(ctx, format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.cache.Set(ctx, key, data, RenderCacheTTL); err != nil {
		// A failed cache write is not a render failure.
		r.logger.Debug("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return data, false, nil
}
