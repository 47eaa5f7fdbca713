package view

import "github.com/vango-dev/viewslot/pkg/dom"

// Lifecycle is implemented by anything bound and attached with a view:
// behaviors, nested view slots, other views.
type Lifecycle interface {
	Bind(ctx any)
	Unbind()
	Attached()
	Detached()
}

// Creator is implemented by lifecycle participants that want to know when
// the view has been created.
type Creator interface {
	Created()
}

// View is a fragment of nodes placed and removed as a unit.
type View struct {
	fragment *dom.Node
	nodes    []*dom.Node
	children []Lifecycle

	context    any
	isBound    bool
	isAttached bool
}

// New creates a view owning the current children of fragment. children take
// part in the view's lifecycle in the order given.
func New(fragment *dom.Node, children ...Lifecycle) *View {
	if fragment == nil {
		fragment = dom.Fragment()
	}
	return &View{
		fragment: fragment,
		nodes:    fragment.ChildNodes(),
		children: children,
	}
}

// FromNodes creates a view from loose nodes.
func FromNodes(nodes ...*dom.Node) *View {
	return New(dom.Fragment(nodes...))
}

// Marked creates a view whose nodes are a comment marker followed by el,
// which makes el its animatable root.
func Marked(name string, el *dom.Node, children ...Lifecycle) *View {
	return New(dom.Fragment(dom.Comment(name), el), children...)
}

// AddChild adds a lifecycle participant. A participant added to a bound or
// attached view is not caught up; add children before binding.
func (v *View) AddChild(child Lifecycle) {
	v.children = append(v.children, child)
}

// Nodes returns the view's top-level nodes.
func (v *View) Nodes() []*dom.Node { return v.nodes }

// Fragment returns the container holding the nodes while they are out of the
// document.
func (v *View) Fragment() *dom.Node { return v.fragment }

// FirstChild returns the leading node.
func (v *View) FirstChild() *dom.Node {
	if len(v.nodes) == 0 {
		return nil
	}
	return v.nodes[0]
}

// LastChild returns the trailing node.
func (v *View) LastChild() *dom.Node {
	if len(v.nodes) == 0 {
		return nil
	}
	return v.nodes[len(v.nodes)-1]
}

// AnimatableRoot returns the element following a leading comment marker, or
// nil when the view does not have that shape.
func (v *View) AnimatableRoot() *dom.Node {
	if len(v.nodes) < 2 || !v.nodes[0].IsMarker() {
		return nil
	}
	if el := v.nodes[1]; el.Type == dom.ElementNode {
		return el
	}
	return nil
}

// InsertNodesBefore moves the view's nodes before ref, in order.
func (v *View) InsertNodesBefore(ref *dom.Node) {
	parent := ref.Parent()
	for _, n := range v.nodes {
		parent.InsertBefore(n, ref)
	}
}

// AppendNodesTo moves the view's nodes to the end of parent, in order.
func (v *View) AppendNodesTo(parent *dom.Node) {
	for _, n := range v.nodes {
		parent.AppendChild(n)
	}
}

// RemoveNodes moves the view's nodes back into its fragment.
func (v *View) RemoveNodes() {
	for _, n := range v.nodes {
		v.fragment.AppendChild(n)
	}
}

// IsBound reports whether the view is bound.
func (v *View) IsBound() bool { return v.isBound }

// IsAttached reports whether the view is attached.
func (v *View) IsAttached() bool { return v.isAttached }

// Context returns the binding context.
func (v *View) Context() any { return v.context }

// Created notifies children implementing Creator.
func (v *View) Created() {
	for _, child := range v.children {
		if c, ok := child.(Creator); ok {
			c.Created()
		}
	}
}

// Bind binds the view and its children to ctx.
func (v *View) Bind(ctx any) {
	if v.isBound {
		if SameContext(v.context, ctx) {
			return
		}
		v.Unbind()
	}
	v.isBound = true
	v.context = ctx
	for _, child := range v.children {
		child.Bind(ctx)
	}
}

// Unbind unbinds the view and its children.
func (v *View) Unbind() {
	if !v.isBound {
		return
	}
	v.isBound = false
	for _, child := range v.children {
		child.Unbind()
	}
}

// Attached notifies children that the view is in the document.
func (v *View) Attached() {
	if v.isAttached {
		return
	}
	v.isAttached = true
	for _, child := range v.children {
		child.Attached()
	}
}

// Detached notifies children that the view has left the document.
func (v *View) Detached() {
	if !v.isAttached {
		return
	}
	v.isAttached = false
	for _, child := range v.children {
		child.Detached()
	}
}
