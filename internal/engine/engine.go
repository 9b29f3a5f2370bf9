// Package engine is the walk engine façade: it owns the adapter, the element
// cache, and the single worker goroutine that serializes every platform
// call, and it exposes the Resolve/Highlight/Find operations on top.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/uiwalk/uiwalk/internal/cache"
	"github.com/uiwalk/uiwalk/internal/logging"
	"github.com/uiwalk/uiwalk/internal/model"
	"github.com/uiwalk/uiwalk/internal/platform"
	"github.com/uiwalk/uiwalk/internal/walker"
)

// ErrNotInitialized is returned by operations invoked before Init or after
// UnInit. No work is performed in that state.
var ErrNotInitialized = errors.New("engine not initialized")

// DefaultTimeout bounds each submitted operation. A timed-out request is
// abandoned and reported as platform unavailability; the worker survives.
const DefaultTimeout = 5 * time.Second

// Options configures an Engine. Zero values select defaults.
type Options struct {
	MaxDepth int           // walker depth bound; 0 = walker.DefaultMaxDepth
	Timeout  time.Duration // per-operation timeout; 0 = DefaultTimeout
	Logger   *logging.Logger
	Metrics  *Metrics // nil = instruments on a private registry
}

// Engine composes the adapter, path synthesizer and element cache behind the
// lifecycle state machine Uninitialized -> Initialized -> Uninitialized.
//
// Accessibility subsystems are single-threaded-affine: all adapter calls run
// on one worker goroutine, and concurrent callers are queued FIFO, which
// also makes racing cache writes deterministically last-write-wins.
type Engine struct {
	adapter  platform.Adapter
	cache    *cache.Cache
	log      *logging.Logger
	metrics  *Metrics
	maxDepth int
	timeout  time.Duration

	mu          sync.Mutex
	initialized bool
	session     string
	gen         uint64 // bumped on Init; fences cache writes from abandoned requests
	reqs        chan *request
	stop        chan struct{}
}

type request struct {
	fn   func()
	done chan struct{}
}

// New creates an engine over the given adapter. The engine starts
// uninitialized; call Init before any operation.
func New(ad platform.Adapter, opts Options) *Engine {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = walker.DefaultMaxDepth
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(prometheus.NewRegistry())
	}
	return &Engine{
		adapter:  ad,
		cache:    cache.New(),
		log:      opts.Logger,
		metrics:  opts.Metrics,
		maxDepth: opts.MaxDepth,
		timeout:  opts.Timeout,
	}
}

// Init starts the worker and assigns a session ID. Calling Init on an
// initialized engine is a no-op: automation hosts call it defensively.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized {
		return nil
	}
	e.reqs = make(chan *request)
	e.stop = make(chan struct{})
	e.session = uuid.NewString()
	e.gen++
	go e.worker(e.reqs, e.stop)
	e.initialized = true
	e.log.Info("engine initialized", zap.String("session", e.session))
	return nil
}

// UnInit stops the worker and clears the cache. Idempotent.
func (e *Engine) UnInit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	close(e.stop)
	e.initialized = false
	e.cache.Clear()
	e.log.Info("engine uninitialized", zap.String("session", e.session))
}

// Initialized reports the lifecycle state.
func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// Session returns the current session ID, "" when uninitialized.
func (e *Engine) Session() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return ""
	}
	return e.session
}

func (e *Engine) worker(reqs chan *request, stop chan struct{}) {
	for {
		select {
		case r := <-reqs:
			r.fn()
			close(r.done)
		case <-stop:
			return
		}
	}
}

// submit queues fn onto the worker and waits for completion or timeout.
// A timeout abandons the request but never kills the worker: the in-flight
// platform call finishes unobserved (its cache writes fenced by gen) and
// subsequent calls remain usable. fn receives the generation it was
// submitted under.
func (e *Engine) submit(ctx context.Context, fn func(gen uint64)) error {
	e.mu.Lock()
	if !e.initialized {
		e.mu.Unlock()
		return ErrNotInitialized
	}
	reqs, stop, gen := e.reqs, e.stop, e.gen
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	r := &request{fn: func() { fn(gen) }, done: make(chan struct{})}
	select {
	case reqs <- r:
	case <-stop:
		// UnInit won the race after the initialized check; the worker is
		// gone and the send would block until the timeout.
		return ErrNotInitialized
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", platform.ErrUnavailable, ctx.Err())
	}
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", platform.ErrUnavailable, ctx.Err())
	}
}

// Resolve locates the element under (x, y), synthesizes its locator, and
// caches the element handle under its runtime ID. Collaborator failures
// propagate unchanged.
func (e *Engine) Resolve(ctx context.Context, x, y int) (model.Locator, model.ElementInfo, error) {
	var (
		loc   model.Locator
		info  model.ElementInfo
		opErr error
	)
	start := time.Now()
	if err := e.submit(ctx, func(gen uint64) {
		loc, info, opErr = e.resolve(x, y, gen)
	}); err != nil {
		e.metrics.Resolves.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, model.ElementInfo{}, err
	}
	e.metrics.Resolves.WithLabelValues(outcomeLabel(opErr)).Inc()
	e.metrics.OpDuration.WithLabelValues("resolve").Observe(time.Since(start).Seconds())
	return loc, info, opErr
}

// resolve runs on the worker goroutine.
func (e *Engine) resolve(x, y int, gen uint64) (model.Locator, model.ElementInfo, error) {
	el, err := e.adapter.ElementAtPoint(x, y)
	if err != nil {
		return nil, model.ElementInfo{}, err
	}
	loc, err := walker.Synthesize(e.adapter, el, e.maxDepth)
	if err != nil {
		return nil, model.ElementInfo{}, err
	}
	info, err := e.snapshot(el, gen)
	if err != nil {
		return nil, model.ElementInfo{}, err
	}
	e.log.Debug("resolved element",
		zap.String("locator", loc.String()),
		zap.String("runtime_id", string(info.RuntimeID)),
		zap.String("rect", info.Rect.String()))
	return loc, info, nil
}

// snapshot captures an element's attributes and refreshes its cache entry.
// Runs on the worker goroutine.
func (e *Engine) snapshot(el platform.Element, gen uint64) (model.ElementInfo, error) {
	id, err := e.adapter.RuntimeID(el)
	if err != nil {
		return model.ElementInfo{}, err
	}
	rect, err := e.adapter.BoundingRect(el)
	if err != nil {
		return model.ElementInfo{}, err
	}
	e.putIfCurrent(gen, id, el, rect)
	role := el.Role()
	if role == "" {
		role = model.RoleUnknown
	}
	return model.ElementInfo{Role: role, Name: el.Name(), RuntimeID: id, Rect: rect}, nil
}

// putIfCurrent caches the element only while the submitting session is still
// the live one. An abandoned request can finish after UnInit has cleared the
// cache; its late write must not survive teardown or leak into the next
// session.
func (e *Engine) putIfCurrent(gen uint64, id model.RuntimeID, el platform.Element, rect model.Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized && gen == e.gen {
		e.cache.Put(id, el, rect)
	}
}

// Highlight re-validates the cached element for id and returns its current
// bounding rectangle. Drawing the overlay is the caller's concern.
func (e *Engine) Highlight(ctx context.Context, id model.RuntimeID) (model.Rect, error) {
	var (
		rect  model.Rect
		opErr error
	)
	start := time.Now()
	if err := e.submit(ctx, func(uint64) {
		rect, opErr = e.cache.RefreshAndFetchRect(e.adapter, id)
	}); err != nil {
		e.metrics.Highlights.WithLabelValues(outcomeLabel(err)).Inc()
		return model.Rect{}, err
	}
	// A stale or failed refresh is not a hit; the outcome label carries it.
	switch {
	case errors.Is(opErr, cache.ErrNotCached):
		e.metrics.CacheMisses.Inc()
	case opErr == nil:
		e.metrics.CacheHits.Inc()
	}
	e.metrics.Highlights.WithLabelValues(outcomeLabel(opErr)).Inc()
	e.metrics.OpDuration.WithLabelValues("highlight").Observe(time.Since(start).Seconds())
	if opErr != nil {
		e.log.Debug("highlight lookup failed",
			zap.String("runtime_id", string(id)),
			zap.Error(opErr))
	}
	return rect, opErr
}

// Find re-locates an element from a previously captured locator, walking the
// current tree top-down, and refreshes its cache entry.
func (e *Engine) Find(ctx context.Context, loc model.Locator) (model.ElementInfo, error) {
	var (
		info  model.ElementInfo
		opErr error
	)
	start := time.Now()
	if err := e.submit(ctx, func(gen uint64) {
		var el platform.Element
		el, opErr = walker.Find(e.adapter, loc)
		if opErr == nil {
			info, opErr = e.snapshot(el, gen)
		}
	}); err != nil {
		return model.ElementInfo{}, err
	}
	e.metrics.OpDuration.WithLabelValues("find").Observe(time.Since(start).Seconds())
	return info, opErr
}

// CursorPos returns the current mouse position.
func (e *Engine) CursorPos(ctx context.Context) (int, int, error) {
	var (
		x, y  int
		opErr error
	)
	if err := e.submit(ctx, func(uint64) {
		x, y, opErr = e.adapter.CursorPos()
	}); err != nil {
		return 0, 0, err
	}
	return x, y, opErr
}

// Screen returns the primary display geometry.
func (e *Engine) Screen(ctx context.Context) (platform.ScreenInfo, error) {
	var (
		s     platform.ScreenInfo
		opErr error
	)
	if err := e.submit(ctx, func(uint64) {
		s, opErr = e.adapter.Screen()
	}); err != nil {
		return platform.ScreenInfo{}, err
	}
	return s, opErr
}

// CacheLen reports the number of cached elements, for diagnostics.
func (e *Engine) CacheLen() int {
	return e.cache.Len()
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, platform.ErrNoElement):
		return "no_element"
	case errors.Is(err, walker.ErrInconsistentTree):
		return "inconsistent_tree"
	case errors.Is(err, walker.ErrDepthExceeded):
		return "depth_exceeded"
	case errors.Is(err, cache.ErrNotCached):
		return "not_cached"
	case errors.Is(err, cache.ErrStale):
		return "stale"
	case errors.Is(err, platform.ErrUnavailable):
		return "platform"
	case errors.Is(err, ErrNotInitialized):
		return "not_initialized"
	default:
		return "error"
	}
}
