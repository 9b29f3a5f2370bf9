// Package synthetic provides a deterministic in-memory accessibility tree
// used by tests and by the --tree fixture flag. It behaves like a native
// backend, including destroyed-element staleness and injectable failures.
package synthetic

import (
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/uiwalk/uiwalk/internal/model"
	"github.com/uiwalk/uiwalk/internal/platform"
)

// Node is one element of a synthetic tree. Bounds are left, top, right,
// bottom in screen coordinates; a zero-bounds node never matches a hit test.
type Node struct {
	Role     string  `yaml:"role"`
	Name     string  `yaml:"name,omitempty"`
	ID       string  `yaml:"id,omitempty"`
	Bounds   [4]int  `yaml:"bounds,flow,omitempty"`
	Children []*Node `yaml:"children,omitempty"`
}

func (n *Node) rect() model.Rect {
	return model.Rect{Left: n.Bounds[0], Top: n.Bounds[1], Right: n.Bounds[2], Bottom: n.Bounds[3]}
}

// handle adapts a node to platform.Element. Handles are lookup-only; the
// adapter decides liveness.
type handle struct{ n *Node }

func (h handle) Role() string { return h.n.Role }
func (h handle) Name() string { return h.n.Name }

// Adapter is an in-memory platform.Adapter over a Node tree.
type Adapter struct {
	mu      sync.Mutex
	root    *Node
	parents map[*Node]*Node
	ids     map[*Node]model.RuntimeID
	byID    map[model.RuntimeID]*Node
	dead    map[*Node]bool

	cursorX, cursorY int
	screen           platform.ScreenInfo

	fail  error
	delay time.Duration
}

// New builds an adapter over the given root node. Nodes without an explicit
// ID get one synthesized from fnv64a(role + NUL + tree path), rendered in the
// dotted-int form native backends use. Synthesized IDs are NOT durable across
// control recreation: rebuilding the same tree reproduces them.
func New(root *Node) *Adapter {
	a := &Adapter{
		root:    root,
		parents: make(map[*Node]*Node),
		ids:     make(map[*Node]model.RuntimeID),
		byID:    make(map[model.RuntimeID]*Node),
		dead:    make(map[*Node]bool),
		screen:  platform.ScreenInfo{Width: 1920, Height: 1080, Scale: 1.0},
	}
	a.index(root, nil, "0")
	return a
}

// Load parses a YAML tree document into an adapter.
func Load(data []byte) (*Adapter, error) {
	var root Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse tree fixture: %w", err)
	}
	if root.Role == "" {
		return nil, fmt.Errorf("tree fixture has no root role")
	}
	return New(&root), nil
}

// LoadFile reads and parses a YAML tree fixture.
func LoadFile(path string) (*Adapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree fixture: %w", err)
	}
	return Load(data)
}

func (a *Adapter) index(n *Node, parent *Node, path string) {
	if _, seen := a.ids[n]; seen {
		return // cyclic fixture; keep the first wiring
	}
	if parent != nil {
		a.parents[n] = parent
	}
	id := model.RuntimeID(n.ID)
	if id == "" {
		id = synthesizeID(n.Role, path)
	}
	a.ids[n] = id
	a.byID[id] = n
	for i, c := range n.Children {
		a.index(c, n, path+"."+strconv.Itoa(i))
	}
}

func synthesizeID(role, path string) model.RuntimeID {
	h := fnv.New64a()
	h.Write([]byte(role))
	h.Write([]byte{0})
	h.Write([]byte(path))
	sum := h.Sum64()
	return model.RuntimeID(fmt.Sprintf("%d.%d", int32(sum>>32), int32(sum)))
}

// gate applies the injected delay and failure to every platform call.
func (a *Adapter) gate() error {
	a.mu.Lock()
	fail, delay := a.fail, a.delay
	a.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	if fail != nil {
		return fmt.Errorf("%w: %w", platform.ErrUnavailable, fail)
	}
	return nil
}

func (a *Adapter) node(el platform.Element) (*Node, error) {
	h, ok := el.(handle)
	if !ok || h.n == nil {
		return nil, fmt.Errorf("%w: foreign element handle", platform.ErrUnavailable)
	}
	return h.n, nil
}

// Root implements platform.Adapter.
func (a *Adapter) Root() (platform.Element, error) {
	if err := a.gate(); err != nil {
		return nil, err
	}
	return handle{a.root}, nil
}

// ElementAtPoint returns the deepest live element whose bounds contain the
// point, matching the topmost-control semantics of native hit testing.
func (a *Adapter) ElementAtPoint(x, y int) (platform.Element, error) {
	if err := a.gate(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	var best *Node
	bestDepth := -1
	visited := make(map[*Node]bool)
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if visited[n] || a.dead[n] {
			return
		}
		visited[n] = true
		// The root is the desktop background; a hit only on it means no
		// element is at the point.
		if depth > 0 && n.rect().Contains(x, y) && depth >= bestDepth {
			best, bestDepth = n, depth
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(a.root, 0)

	if best == nil {
		return nil, fmt.Errorf("%w at (%d,%d)", platform.ErrNoElement, x, y)
	}
	return handle{best}, nil
}

// Parent implements platform.Adapter; (nil, nil) at the root.
func (a *Adapter) Parent(el platform.Element) (platform.Element, error) {
	if err := a.gate(); err != nil {
		return nil, err
	}
	n, err := a.node(el)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.parents[n]
	if !ok {
		return nil, nil
	}
	return handle{p}, nil
}

// ChildrenOfRole implements platform.Adapter, preserving declaration order.
func (a *Adapter) ChildrenOfRole(parent platform.Element, role string) ([]platform.Element, error) {
	if err := a.gate(); err != nil {
		return nil, err
	}
	n, err := a.node(parent)
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []platform.Element
	for _, c := range n.Children {
		if a.dead[c] {
			continue
		}
		if c.Role == role {
			out = append(out, handle{c})
		}
	}
	return out, nil
}

// RuntimeID implements platform.Adapter.
func (a *Adapter) RuntimeID(el platform.Element) (model.RuntimeID, error) {
	if err := a.gate(); err != nil {
		return "", err
	}
	n, err := a.node(el)
	if err != nil {
		return "", err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ids[n], nil
}

// BoundingRect implements platform.Adapter.
func (a *Adapter) BoundingRect(el platform.Element) (model.Rect, error) {
	if err := a.gate(); err != nil {
		return model.Rect{}, err
	}
	n, err := a.node(el)
	if err != nil {
		return model.Rect{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.dead[n] {
		return model.Rect{}, fmt.Errorf("%w: element destroyed", platform.ErrUnavailable)
	}
	return n.rect(), nil
}

// IsAlive implements platform.Adapter.
func (a *Adapter) IsAlive(el platform.Element) bool {
	h, ok := el.(handle)
	if !ok {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.dead[h.n]
}

// CursorPos implements platform.Adapter.
func (a *Adapter) CursorPos() (int, int, error) {
	if err := a.gate(); err != nil {
		return 0, 0, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cursorX, a.cursorY, nil
}

// Screen implements platform.Adapter.
func (a *Adapter) Screen() (platform.ScreenInfo, error) {
	if err := a.gate(); err != nil {
		return platform.ScreenInfo{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen, nil
}

// ElementByID returns the live handle for a runtime ID, for tests that need
// to hand a specific element to the walker.
func (a *Adapter) ElementByID(id model.RuntimeID) (platform.Element, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n, ok := a.byID[id]
	if !ok || a.dead[n] {
		return nil, false
	}
	return handle{n}, true
}

// Destroy marks the element and its whole subtree dead and unlinks it from
// its parent, simulating a closed window or removed control.
func (a *Adapter) Destroy(id model.RuntimeID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	n, ok := a.byID[id]
	if !ok {
		return false
	}
	var kill func(n *Node)
	kill = func(n *Node) {
		if a.dead[n] {
			return
		}
		a.dead[n] = true
		for _, c := range n.Children {
			kill(c)
		}
	}
	kill(n)
	a.unlink(n)
	return true
}

// Detach removes the element from its parent's child list while keeping the
// handle alive and its parent pointer intact. An upward walk then sees an
// element missing from its own parent's children: a transient tree mutation.
func (a *Adapter) Detach(id model.RuntimeID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	n, ok := a.byID[id]
	if !ok {
		return false
	}
	a.unlink(n)
	return true
}

func (a *Adapter) unlink(n *Node) {
	p, ok := a.parents[n]
	if !ok {
		return
	}
	kept := p.Children[:0]
	for _, c := range p.Children {
		if c != n {
			kept = append(kept, c)
		}
	}
	p.Children = kept
}

// FailWith makes every subsequent platform call fail, wrapped in
// ErrUnavailable. Pass nil to clear.
func (a *Adapter) FailWith(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fail = err
}

// SetDelay adds artificial latency to every platform call.
func (a *Adapter) SetDelay(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.delay = d
}

// SetCursor sets the reported cursor position.
func (a *Adapter) SetCursor(x, y int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cursorX, a.cursorY = x, y
}

// SetScreen sets the reported display geometry.
func (a *Adapter) SetScreen(s platform.ScreenInfo) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.screen = s
}

// Dump renders the live tree for debugging, one node per line.
func (a *Adapter) Dump() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var b strings.Builder
	visited := make(map[*Node]bool)
	var walk func(n *Node, indent int)
	walk = func(n *Node, indent int) {
		if visited[n] || a.dead[n] {
			return
		}
		visited[n] = true
		fmt.Fprintf(&b, "%s%s %q %s id=%s\n", strings.Repeat("  ", indent), n.Role, n.Name, n.rect(), a.ids[n])
		for _, c := range n.Children {
			walk(c, indent+1)
		}
	}
	walk(a.root, 0)
	return b.String()
}
