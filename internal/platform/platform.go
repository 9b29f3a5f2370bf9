package platform

import (
	"errors"

	"github.com/uiwalk/uiwalk/internal/model"
)

// Element is an opaque handle into the platform's live accessibility tree.
// The engine never owns the underlying control; the platform may invalidate
// the handle at any time (window closed, control destroyed).
type Element interface {
	// Role returns the semantic control type ("button", "panel", "list", ...).
	// Backends return "" when the platform reports none.
	Role() string

	// Name returns the display label, possibly empty.
	Name() string
}

// Common adapter failures. Backends wrap these so callers can classify with
// errors.Is regardless of the platform-specific detail attached.
var (
	// ErrNoElement means no element exists at the queried location or path
	// (e.g. empty desktop background).
	ErrNoElement = errors.New("no element found")

	// ErrUnavailable means the accessibility subsystem call failed or timed
	// out. Not retried: re-querying a UI mid-interaction risks stale geometry.
	ErrUnavailable = errors.New("accessibility platform unavailable")
)

// Adapter wraps the OS accessibility object model behind a uniform
// capability surface, isolating the engine from platform object lifetimes.
//
// All calls for a given tree must be serialized onto a single goroutine;
// concurrent traversal of one native tree is undefined behavior on most
// platforms. The engine enforces that discipline.
type Adapter interface {
	// Root returns the root of the accessibility tree (the desktop).
	Root() (Element, error)

	// ElementAtPoint returns the topmost interactive element whose bounding
	// rectangle contains the screen point, or ErrNoElement.
	ElementAtPoint(x, y int) (Element, error)

	// Parent returns the element's parent, or (nil, nil) at the tree root.
	Parent(el Element) (Element, error)

	// ChildrenOfRole returns the parent's children of the given role in
	// native enumeration order, assumed stable for a tree snapshot.
	ChildrenOfRole(parent Element, role string) ([]Element, error)

	// RuntimeID returns the element's durable runtime identifier. Backends
	// without a native identifier synthesize one deterministically; such
	// IDs are not durable across control recreation.
	RuntimeID(el Element) (model.RuntimeID, error)

	// BoundingRect returns the element's current screen rectangle.
	BoundingRect(el Element) (model.Rect, error)

	// IsAlive reports whether the handle still resolves to a live control.
	IsAlive(el Element) bool

	// CursorPos returns the current mouse cursor position.
	CursorPos() (x, y int, err error)

	// Screen describes the primary display.
	Screen() (ScreenInfo, error)
}
