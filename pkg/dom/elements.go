package dom

import (
	"fmt"
	"strings"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// Attr represents a single attribute passed to Element.
type Attr struct {
	Key   string
	Value string
}

// ID sets the id attribute.
func ID(id string) Attr { return Attr{Key: "id", Value: id} }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return Attr{Key: "class", Value: strings.Join(classes, " ")} }

// Data creates a data-* attribute.
func Data(key, value string) Attr { return Attr{Key: "data-" + key, Value: value} }

// A creates an arbitrary attribute.
func A(key, value string) Attr { return Attr{Key: key, Value: value} }

// Element creates an element. Arguments can be: nil, Attr, []Attr, *Node,
// []*Node or string (as a text child).
func Element(tag string, args ...any) *Node {
	n := &Node{Type: ElementNode, Tag: tag}
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if v.Key != "" {
				n.SetAttr(v.Key, v.Value)
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					n.SetAttr(a.Key, a.Value)
				}
			}
		case *Node:
			if v != nil {
				n.AppendChild(v)
			}
		case []*Node:
			for _, c := range v {
				if c != nil {
					n.AppendChild(c)
				}
			}
		case string:
			n.AppendChild(Text(v))
		}
	}
	return n
}

// Text creates a text node.
func Text(content string) *Node {
	return &Node{Type: TextNode, Data: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// Comment creates a comment node, used as a placeholder marker.
func Comment(content string) *Node {
	return &Node{Type: CommentNode, Data: content}
}

// Fragment creates a fragment holding the given children.
func Fragment(children ...*Node) *Node {
	f := &Node{Type: FragmentNode}
	for _, c := range children {
		if c != nil {
			f.AppendChild(c)
		}
	}
	return f
}
