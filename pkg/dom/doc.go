// Package dom provides the host document tree that view slots place views
// into.
//
// Unlike a virtual DOM that is rebuilt and diffed on every render, a dom tree
// is mutated in place: nodes are linked to their parent and siblings, and
// placement operations move nodes between parents the way a browser DOM does.
//
// # Core Types
//
// Node is the single node type. Its NodeType tells elements, text, comment
// markers and fragments apart. Comment nodes serve as placeholder markers
// (anchors) that render nothing visible.
//
// # Building Trees
//
//	body := dom.Element("body",
//	    dom.Element("h1", dom.Text("Todos")),
//	    dom.Comment("slot"),
//	)
//
// # Fragments
//
// A fragment is a parentless container. Appending or inserting a fragment
// moves its children, leaving the fragment empty, which is how views hand
// their nodes to the document and take them back.
//
// # Rendering
//
// HTML serializes a node and its subtree, escaping text and attributes.
package dom
