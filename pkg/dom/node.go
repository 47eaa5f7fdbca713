package dom

import "strings"

// NodeType is the node type discriminator. Values follow the browser DOM.
type NodeType uint8

const (
	ElementNode  NodeType = 1  // <div>, <li>, etc.
	TextNode     NodeType = 3  // Plain text
	CommentNode  NodeType = 8  // Placeholder marker, renders as <!--...-->
	FragmentNode NodeType = 11 // Parentless grouping container
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case FragmentNode:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Node is a node in a mutable document tree.
type Node struct {
	Type  NodeType
	Tag   string            // Element tag name
	Attrs map[string]string // Element attributes
	Data  string            // Text or comment content

	// Slot is the view slot anchored at this node, if any.
	Slot any

	parent     *Node
	firstChild *Node
	lastChild  *Node
	prev       *Node
	next       *Node
}

// Parent returns the node's parent, or nil if detached.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// NextSibling returns the following sibling, or nil.
func (n *Node) NextSibling() *Node { return n.next }

// PrevSibling returns the preceding sibling, or nil.
func (n *Node) PrevSibling() *Node { return n.prev }

// NextElementSibling returns the first following sibling that is an element.
func (n *Node) NextElementSibling() *Node {
	for s := n.next; s != nil; s = s.next {
		if s.Type == ElementNode {
			return s
		}
	}
	return nil
}

// ChildNodes returns a snapshot of the node's children.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// HasChildNodes reports whether the node has any children.
func (n *Node) HasChildNodes() bool { return n.firstChild != nil }

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// AppendChild adds child as the last child of n, detaching it from its
// current parent first. Appending a fragment moves the fragment's children.
func (n *Node) AppendChild(child *Node) {
	n.InsertBefore(child, nil)
}

// InsertBefore inserts child immediately before ref, which must be a child of
// n. A nil ref appends. Inserting a fragment moves the fragment's children in
// order and leaves the fragment empty.
func (n *Node) InsertBefore(child, ref *Node) {
	if ref != nil && ref.parent != n {
		panic("dom: InsertBefore reference node is not a child of this node")
	}
	if child.Type == FragmentNode {
		for _, c := range child.ChildNodes() {
			n.InsertBefore(c, ref)
		}
		return
	}
	if child.Contains(n) {
		panic("dom: cannot insert a node into its own subtree")
	}
	if child == ref {
		return
	}
	child.Remove()

	child.parent = n
	child.next = ref
	if ref == nil {
		child.prev = n.lastChild
		if n.lastChild != nil {
			n.lastChild.next = child
		} else {
			n.firstChild = child
		}
		n.lastChild = child
		return
	}
	child.prev = ref.prev
	if ref.prev != nil {
		ref.prev.next = child
	} else {
		n.firstChild = child
	}
	ref.prev = child
}

// RemoveChild detaches child from n. It reports false if child is not a
// child of n.
func (n *Node) RemoveChild(child *Node) bool {
	if child == nil || child.parent != n {
		return false
	}
	child.Remove()
	return true
}

// Remove detaches n from its parent. It is a no-op for detached nodes.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		p.firstChild = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		p.lastChild = n.prev
	}
	n.parent, n.prev, n.next = nil, nil, nil
}

// RemoveChildren detaches every child of n.
func (n *Node) RemoveChildren() {
	for c := n.lastChild; c != nil; c = n.lastChild {
		c.Remove()
	}
}

// Attr returns the value of an attribute and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// SetAttr sets an attribute on an element.
func (n *Node) SetAttr(key, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(key string) {
	delete(n.Attrs, key)
}

// Classes returns the element's class list.
func (n *Node) Classes() []string {
	return strings.Fields(n.Attrs["class"])
}

// HasClass reports whether the element carries the class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds a class if it is not already present.
func (n *Node) AddClass(class string) {
	if class == "" || n.HasClass(class) {
		return
	}
	n.SetAttr("class", strings.TrimSpace(n.Attrs["class"]+" "+class))
}

// RemoveClass removes a class. The attribute is dropped when it becomes empty.
func (n *Node) RemoveClass(class string) {
	classes := n.Classes()
	kept := classes[:0]
	for _, c := range classes {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		n.RemoveAttr("class")
		return
	}
	n.SetAttr("class", strings.Join(kept, " "))
}

// IsMarker reports whether n is a comment placeholder.
func (n *Node) IsMarker() bool {
	return n != nil && n.Type == CommentNode
}
