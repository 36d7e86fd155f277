// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about figure builds,
// terminal probes, cache lookups and served HTTP requests. Libraries only
// depend on the interfaces here, never on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlotHooks(&myPlotHooks{})
//	    observability.SetProbeHooks(&myProbeHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Probe().OnProbeStart(ctx, "wxt")
//	// ... ask gnuplot ...
//	observability.Probe().OnProbeComplete(ctx, "wxt", true, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Plot Hooks
// =============================================================================

// PlotHooks receives events from figure builds and gnuplot runs.
type PlotHooks interface {
	// Build events
	OnBuildStart(ctx context.Context, targets []string, curves int)
	OnBuildComplete(ctx context.Context, targets []string, duration time.Duration, err error)

	// Exec events
	OnExecStart(ctx context.Context, script string)
	OnExecComplete(ctx context.Context, script string, duration time.Duration, err error)
}

// =============================================================================
// Probe Hooks
// =============================================================================

// ProbeHooks receives events from terminal availability probes.
type ProbeHooks interface {
	OnProbeStart(ctx context.Context, terminal string)
	OnProbeComplete(ctx context.Context, terminal string, available bool, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPlotHooks is a no-op implementation of PlotHooks.
type NoopPlotHooks struct{}

func (NoopPlotHooks) OnBuildStart(context.Context, []string, int)                       {}
func (NoopPlotHooks) OnBuildComplete(context.Context, []string, time.Duration, error) {}
func (NoopPlotHooks) OnExecStart(context.Context, string)                               {}
func (NoopPlotHooks) OnExecComplete(context.Context, string, time.Duration, error)    {}

// NoopProbeHooks is a no-op implementation of ProbeHooks.
type NoopProbeHooks struct{}

func (NoopProbeHooks) OnProbeStart(context.Context, string)                                {}
func (NoopProbeHooks) OnProbeComplete(context.Context, string, bool, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	plotHooks  PlotHooks  = NoopPlotHooks{}
	probeHooks ProbeHooks = NoopProbeHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetPlotHooks registers custom plot hooks.
// This should be called once at application startup.
func SetPlotHooks(h PlotHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		plotHooks = h
	}
}

// SetProbeHooks registers custom probe hooks.
func SetProbeHooks(h ProbeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		probeHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Plot returns the registered plot hooks.
func Plot() PlotHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return plotHooks
}

// Probe returns the registered probe hooks.
func Probe() ProbeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return probeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	plotHooks = NoopPlotHooks{}
	probeHooks = NoopProbeHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
