package viewslot

import "github.com/vango-dev/viewslot/pkg/dom"

// View is a bound, renderable fragment that a slot can place and remove.
type View interface {
	// FirstChild returns the leading node of the view, used as the reference
	// when another view is inserted before it.
	FirstChild() *dom.Node

	// Fragment returns the container that holds the view's nodes while they
	// are out of the document.
	Fragment() *dom.Node

	// AnimatableRoot returns the element that enter and leave transitions run
	// on, or nil if the view is not animated.
	AnimatableRoot() *dom.Node

	Created()
	Bind(ctx any)
	Unbind()
	Attached()
	Detached()

	InsertNodesBefore(ref *dom.Node)
	AppendNodesTo(parent *dom.Node)
	RemoveNodes()
}

// ContentSelector files projected content into a group of nodes rendered at
// its own location.
type ContentSelector interface {
	// Matches reports whether a top-level node of a view belongs to this
	// selector.
	Matches(n *dom.Node) bool

	// Add appends a group.
	Add(group []*dom.Node)

	// Insert places a group at the given logical index.
	Insert(index int, group []*dom.Node)

	// RemoveAt removes the group at index, moving its nodes into fragment.
	RemoveAt(index int, fragment *dom.Node)

	// CopyForSlot returns a selector with the same target and no groups, for
	// installation into a slot nested inside projected content.
	CopyForSlot() ContentSelector
}

// Applier distributes a view's content among selectors, calling fn once per
// selector with the group of nodes it matched. Groups may be empty.
type Applier func(view View, selectors []ContentSelector, fn func(ContentSelector, []*dom.Node))

// ApplySelectors is the default Applier.
//
// Each top-level node of the view's fragment goes to the first selector that
// matches it. A node that anchors a nested slot is not matched; the nested
// slot receives copies of the selectors instead.
func ApplySelectors(view View, selectors []ContentSelector, fn func(ContentSelector, []*dom.Node)) {
	groups := make([][]*dom.Node, len(selectors))

	for child := view.Fragment().FirstChild(); child != nil; {
		next := child.NextSibling()

		if nested, ok := child.Slot.(*ViewSlot); ok {
			copies := make([]ContentSelector, len(selectors))
			for i, sel := range selectors {
				copies[i] = sel.CopyForSlot()
			}
			if err := nested.InstallContentSelectors(copies); err != nil {
				nested.logger.Warn("nested slot already projecting", "error", err)
			}
		} else {
			for i, sel := range selectors {
				if sel.Matches(child) {
					groups[i] = append(groups[i], child)
					break
				}
			}
		}

		child = next
	}

	for i, sel := range selectors {
		fn(sel, groups[i])
	}
}
