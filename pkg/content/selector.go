package content

import (
	"strings"

	"github.com/vango-dev/viewslot/pkg/dom"
	"github.com/vango-dev/viewslot/pkg/viewslot"
)

// Selector collects matching projected nodes and renders them before its
// anchor.
type Selector struct {
	anchor *dom.Node
	expr   string
	all    bool
	match  []compound
	groups [][]*dom.Node
}

// NewSelector creates a selector that renders its groups before anchor. An
// empty or "*" expression selects every node.
func NewSelector(anchor *dom.Node, expr string) (*Selector, error) {
	s := &Selector{anchor: anchor, expr: strings.TrimSpace(expr)}
	if s.expr == "" || s.expr == "*" {
		s.all = true
		return s, nil
	}
	match, err := parseSelector(s.expr)
	if err != nil {
		return nil, err
	}
	s.match = match
	return s, nil
}

// MustSelector is like NewSelector but panics on an invalid expression.
func MustSelector(anchor *dom.Node, expr string) *Selector {
	s, err := NewSelector(anchor, expr)
	if err != nil {
		panic(err)
	}
	return s
}

// Selectors converts selectors to the slice InstallContentSelectors takes.
func Selectors(sels ...*Selector) []viewslot.ContentSelector {
	out := make([]viewslot.ContentSelector, len(sels))
	for i, s := range sels {
		out[i] = s
	}
	return out
}

// Expr returns the selector expression.
func (s *Selector) Expr() string { return s.expr }

// Anchor returns the marker groups are rendered before.
func (s *Selector) Anchor() *dom.Node { return s.anchor }

// Len returns the number of groups.
func (s *Selector) Len() int { return len(s.groups) }

// Group returns the nodes of the group at index.
func (s *Selector) Group(index int) []*dom.Node {
	if index < 0 || index >= len(s.groups) {
		return nil
	}
	return s.groups[index]
}

// Matches reports whether n is selected. Only elements match a non-empty
// expression.
func (s *Selector) Matches(n *dom.Node) bool {
	if s.all {
		return true
	}
	if n.Type != dom.ElementNode {
		return false
	}
	for _, c := range s.match {
		if c.matches(n) {
			return true
		}
	}
	return false
}

// Add renders group before the anchor and appends it.
func (s *Selector) Add(group []*dom.Node) {
	parent := s.anchor.Parent()
	for _, n := range group {
		parent.InsertBefore(n, s.anchor)
	}
	s.groups = append(s.groups, group)
}

// Insert renders group before the first node of the groups at or after index
// and records it at index.
func (s *Selector) Insert(index int, group []*dom.Node) {
	if index > len(s.groups) {
		index = len(s.groups)
	}
	if len(group) > 0 {
		ref := s.insertionPoint(index)
		parent := ref.Parent()
		for _, n := range group {
			parent.InsertBefore(n, ref)
		}
	}
	s.groups = append(s.groups, nil)
	copy(s.groups[index+1:], s.groups[index:])
	s.groups[index] = group
}

// RemoveAt moves the nodes of the group at index into fragment and drops the
// group. An index without a group is ignored.
func (s *Selector) RemoveAt(index int, fragment *dom.Node) {
	if index < 0 || index >= len(s.groups) {
		return
	}
	for _, n := range s.groups[index] {
		fragment.AppendChild(n)
	}
	s.groups = append(s.groups[:index], s.groups[index+1:]...)
}

// CopyForSlot returns a selector with the same anchor and expression and no
// groups.
func (s *Selector) CopyForSlot() viewslot.ContentSelector {
	return &Selector{anchor: s.anchor, expr: s.expr, all: s.all, match: s.match}
}

func (s *Selector) insertionPoint(index int) *dom.Node {
	for ; index < len(s.groups); index++ {
		if len(s.groups[index]) > 0 {
			return s.groups[index][0]
		}
	}
	return s.anchor
}
