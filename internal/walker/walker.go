// Package walker synthesizes structural locators by walking an
// accessibility tree upward, and re-finds elements by walking a locator back
// down. The tree is externally owned and mutable, so both directions check
// consistency instead of trusting tree shape.
package walker

import (
	"errors"
	"fmt"

	"github.com/uiwalk/uiwalk/internal/model"
	"github.com/uiwalk/uiwalk/internal/platform"
)

// DefaultMaxDepth bounds the upward walk. Real accessibility trees stay well
// under this; exceeding it means a corrupted or cyclic tree.
const DefaultMaxDepth = 64

var (
	// ErrInconsistentTree means the tree mutated mid-walk: an element was
	// not found in its own parent's child set.
	ErrInconsistentTree = errors.New("inconsistent tree: element missing from its parent's children")

	// ErrDepthExceeded means the ascent passed the maximum depth, the guard
	// against cyclic or corrupted trees.
	ErrDepthExceeded = errors.New("tree walk exceeded maximum depth")
)

// Synthesize walks from el up to the tree root and returns the root-first
// locator. The result is deterministic for an unchanged tree: it contains
// only roles and sibling indexes, never timestamps or pointer-derived data.
//
// maxDepth <= 0 selects DefaultMaxDepth.
func Synthesize(ad platform.Adapter, el platform.Element, maxDepth int) (model.Locator, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var segs []model.PathSegment
	cur := el
	for depth := 0; ; depth++ {
		if depth >= maxDepth {
			return nil, fmt.Errorf("%w (%d levels)", ErrDepthExceeded, maxDepth)
		}
		parent, err := ad.Parent(cur)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			// Root reached. The root contributes no segment unless it is
			// the target itself. No parent indexes the root, so its segment
			// carries the first index not occupied by a same-role child;
			// otherwise a root-role child at index 0 would serialize to the
			// same locator.
			if len(segs) == 0 {
				children, err := ad.ChildrenOfRole(cur, roleOf(cur))
				if err != nil {
					return nil, err
				}
				segs = append(segs, model.PathSegment{Role: roleOf(cur), Index: len(children)})
			}
			break
		}
		idx, err := siblingIndex(ad, parent, cur)
		if err != nil {
			return nil, err
		}
		segs = append(segs, model.PathSegment{Role: roleOf(cur), Index: idx})
		cur = parent
	}

	// Collected leaf-first; reverse to root-first.
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return model.Locator(segs), nil
}

// siblingIndex locates el among the same-role children of parent, in native
// enumeration order. Elements are matched by runtime ID, the only identity
// the platform guarantees.
func siblingIndex(ad platform.Adapter, parent, el platform.Element) (int, error) {
	id, err := ad.RuntimeID(el)
	if err != nil {
		return 0, err
	}
	siblings, err := ad.ChildrenOfRole(parent, el.Role())
	if err != nil {
		return 0, err
	}
	for i, sib := range siblings {
		sibID, err := ad.RuntimeID(sib)
		if err != nil {
			return 0, err
		}
		if sibID == id {
			return i, nil
		}
	}
	return 0, ErrInconsistentTree
}

// Find walks a locator top-down from the tree root and returns the element
// it addresses, or platform.ErrNoElement when the path no longer matches the
// current tree.
func Find(ad platform.Adapter, loc model.Locator) (platform.Element, error) {
	if len(loc) == 0 {
		return nil, fmt.Errorf("%w: empty locator", platform.ErrNoElement)
	}
	root, err := ad.Root()
	if err != nil {
		return nil, err
	}

	// A single-segment locator may address the root itself. Its index is one
	// past the root's same-role children (see Synthesize), so it never
	// shadows a root-role child's own locator.
	if len(loc) == 1 && roleOf(root) == loc[0].Role {
		children, err := ad.ChildrenOfRole(root, loc[0].Role)
		if err != nil {
			return nil, err
		}
		if loc[0].Index == len(children) {
			return root, nil
		}
	}

	cur := root
	for _, seg := range loc {
		children, err := ad.ChildrenOfRole(cur, seg.Role)
		if err != nil {
			return nil, err
		}
		if seg.Index >= len(children) {
			return nil, fmt.Errorf("%w: no %s at index %d under %s", platform.ErrNoElement, seg.Role, seg.Index, roleOf(cur))
		}
		cur = children[seg.Index]
	}
	return cur, nil
}

func roleOf(el platform.Element) string {
	if r := el.Role(); r != "" {
		return r
	}
	return model.RoleUnknown
}
