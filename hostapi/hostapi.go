// Package hostapi is the four-operation surface the automation host calls:
// Init, UnInit, GetUiXPath, HighlightCachedUI. The host passes fixed-size
// output buffers and expects small stable status integers; the signature
// translation shim that exports these over a C ABI lives outside this
// module and forwards here unchanged.
package hostapi

import (
	"context"
	"errors"

	"github.com/uiwalk/uiwalk/internal/cache"
	"github.com/uiwalk/uiwalk/internal/engine"
	"github.com/uiwalk/uiwalk/internal/model"
	"github.com/uiwalk/uiwalk/internal/platform"
	"github.com/uiwalk/uiwalk/internal/walker"
)

// Status codes returned to the host. The numbering is a contract with the
// engine's single caller: each distinct failure class keeps a distinct,
// stable value.
const (
	StatusOK               = 0
	StatusNotInitialized   = 1
	StatusNotFound         = 2
	StatusStale            = 3
	StatusInconsistentTree = 4
	StatusDepthExceeded    = 5
	StatusPlatformError    = 6
	StatusBufferTooSmall   = 7
	StatusInternalError    = 8
)

// ErrorStatus maps an engine error to its host status code.
func ErrorStatus(err error) int {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, engine.ErrNotInitialized):
		return StatusNotInitialized
	case errors.Is(err, platform.ErrNoElement), errors.Is(err, cache.ErrNotCached):
		return StatusNotFound
	case errors.Is(err, cache.ErrStale):
		return StatusStale
	case errors.Is(err, walker.ErrInconsistentTree):
		return StatusInconsistentTree
	case errors.Is(err, walker.ErrDepthExceeded):
		return StatusDepthExceeded
	case errors.Is(err, platform.ErrUnavailable):
		return StatusPlatformError
	default:
		return StatusInternalError
	}
}

// API binds the host surface to one engine instance. The engine is an
// explicit collaborator rather than an ambient singleton so that tests can
// run several independent instances in-process.
type API struct {
	eng *engine.Engine
}

// New wraps an engine in the host contract.
func New(eng *engine.Engine) *API {
	return &API{eng: eng}
}

// Init establishes engine state. Idempotent; always StatusOK unless the
// engine fails to start.
func (a *API) Init() int {
	if err := a.eng.Init(); err != nil {
		return StatusInternalError
	}
	return StatusOK
}

// UnInit tears down engine state and clears the cache. Idempotent.
func (a *API) UnInit() int {
	a.eng.UnInit()
	return StatusOK
}

// GetUiXPath resolves the element at (x, y) and writes its serialized
// locator into buf. It returns the byte count written on success, or the
// negated status code on failure. When the locator exceeds len(buf) the
// truncated prefix is written and -StatusBufferTooSmall is returned; the
// buffer bound is never overrun.
func (a *API) GetUiXPath(x, y int, buf []byte) int {
	loc, _, err := a.eng.Resolve(context.Background(), x, y)
	if err != nil {
		return -ErrorStatus(err)
	}
	s := loc.String()
	n := copy(buf, s)
	if n < len(s) {
		return -StatusBufferTooSmall
	}
	return n
}

// HighlightCachedUI looks up a previously resolved element by runtime ID and
// writes its current bounding rectangle into rect. Returns StatusOK when the
// rectangle was written; the host draws the overlay from it.
func (a *API) HighlightCachedUI(id model.RuntimeID, rect *model.Rect) int {
	r, err := a.eng.Highlight(context.Background(), id)
	if err != nil {
		return ErrorStatus(err)
	}
	if rect != nil {
		*rect = r
	}
	return StatusOK
}
