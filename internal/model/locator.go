package model

import (
	"fmt"
	"strconv"
	"strings"
)

// RoleUnknown is the sentinel role used when the platform reports no role
// for an element.
const RoleUnknown = "unknown"

// PathSegment is one level of a structural locator: the element's role and
// its 0-based position among same-role siblings at capture time. The index
// is local to the parent, not a global element counter.
type PathSegment struct {
	Role  string
	Index int
}

func (s PathSegment) String() string {
	role := s.Role
	if role == "" {
		role = RoleUnknown
	}
	return fmt.Sprintf("%s[%d]", role, s.Index)
}

// Locator is an ordered root-to-leaf sequence of path segments identifying
// an element structurally. Re-walking a locator top-down against an
// unchanged tree yields the element it was captured from.
//
// The serialized form is "/role[0]/role[2]". The tree root itself
// contributes no segment unless it is the target.
type Locator []PathSegment

// String serializes the locator. An empty locator serializes to "".
func (l Locator) String() string {
	if len(l) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range l {
		b.WriteByte('/')
		b.WriteString(seg.String())
	}
	return b.String()
}

// ParseLocator parses a serialized locator back into segments. It rejects
// anything that would not round-trip through Locator.String.
func ParseLocator(s string) (Locator, error) {
	if s == "" {
		return nil, fmt.Errorf("empty locator")
	}
	if !strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("locator %q must start with '/'", s)
	}
	parts := strings.Split(s[1:], "/")
	loc := make(Locator, 0, len(parts))
	for _, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("locator %q: %w", s, err)
		}
		loc = append(loc, seg)
	}
	return loc, nil
}

func parseSegment(s string) (PathSegment, error) {
	open := strings.IndexByte(s, '[')
	if open <= 0 || !strings.HasSuffix(s, "]") {
		return PathSegment{}, fmt.Errorf("malformed segment %q: want role[index]", s)
	}
	role := s[:open]
	idx, err := strconv.Atoi(s[open+1 : len(s)-1])
	if err != nil {
		return PathSegment{}, fmt.Errorf("malformed segment %q: %w", s, err)
	}
	if idx < 0 {
		return PathSegment{}, fmt.Errorf("malformed segment %q: negative index", s)
	}
	return PathSegment{Role: role, Index: idx}, nil
}
