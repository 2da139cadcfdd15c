// Package observability lets callers watch the chart pipeline without the
// libraries depending on a metrics or tracing backend.
//
// Three event sinks exist: [PipelineHooks] for the load, draw and render
// stages, [CacheHooks] for dataset and artifact cache traffic, and
// [HTTPHooks] for remote dataset fetches. Libraries fetch the installed
// sink on every event:
//
//	hooks := observability.Pipeline()
//	hooks.OnDrawStart(ctx, cfg.Template, len(rows))
//
// Programs install their sinks once at startup with [Install]:
//
//	restore := observability.Install(observability.Hooks{
//	    Pipeline: observability.NewLogHooks(logger),
//	})
//	defer restore()
//
// [NewLogHooks] logs every event at debug level through a charmbracelet logger.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives stage events from the chart pipeline.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, rows int, duration time.Duration, err error)

	OnDrawStart(ctx context.Context, template string, rows int)
	OnDrawComplete(ctx context.Context, template string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache traffic. keyType is "dataset" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events for outgoing dataset requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// Hooks is the set of installed sinks. A nil field means no-op.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

// All returns Hooks with every sink set to h.
func All[T interface {
	PipelineHooks
	CacheHooks
	HTTPHooks
}](h T) Hooks {
	return Hooks{Pipeline: h, Cache: h, HTTP: h}
}

type noop struct{}

func (noop) OnLoadStart(context.Context, string)                                    {}
func (noop) OnLoadComplete(context.Context, string, int, time.Duration, error)      {}
func (noop) OnDrawStart(context.Context, string, int)                               {}
func (noop) OnDrawComplete(context.Context, string, time.Duration, error)           {}
func (noop) OnRenderStart(context.Context, []string)                                {}
func (noop) OnRenderComplete(context.Context, []string, time.Duration, error)       {}
func (noop) OnCacheHit(context.Context, string)                                     {}
func (noop) OnCacheMiss(context.Context, string)                                    {}
func (noop) OnCacheSet(context.Context, string, int)                                {}
func (noop) OnRequest(context.Context, string, string, string)                      {}
func (noop) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (noop) OnError(context.Context, string, string, string, error)                 {}

// Noop is a Hooks value whose sinks discard every event.
var Noop = All(noop{})

var installed atomic.Pointer[Hooks]

func init() {
	installed.Store(&Noop)
}

// Install replaces the installed sinks and returns a function that puts
// the previous ones back. Nil fields are filled with no-ops.
func Install(h Hooks) (restore func()) {
	if h.Pipeline == nil {
		h.Pipeline = Noop.Pipeline
	}
	if h.Cache == nil {
		h.Cache = Noop.Cache
	}
	if h.HTTP == nil {
		h.HTTP = Noop.HTTP
	}
	prev := installed.Swap(&h)
	return func() { installed.Store(prev) }
}

// Pipeline returns the installed pipeline sink.
func Pipeline() PipelineHooks { return installed.Load().Pipeline }

// Cache returns the installed cache sink.
func Cache() CacheHooks { return installed.Load().Cache }

// HTTP returns the installed HTTP sink.
func HTTP() HTTPHooks { return installed.Load().HTTP }
