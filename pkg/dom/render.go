package dom

import (
	"io"
	"sort"
	"strings"
)

// HTML renders n and its subtree. Fragments render their children only.
func (n *Node) HTML() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

// InnerHTML renders the children of n.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	for c := n.firstChild; c != nil; c = c.next {
		c.render(&b)
	}
	return b.String()
}

// WriteHTML renders n to w.
func WriteHTML(w io.Writer, n *Node) error {
	_, err := io.WriteString(w, n.HTML())
	return err
}

func (n *Node) render(b *strings.Builder) {
	switch n.Type {
	case TextNode:
		b.WriteString(escapeHTML(n.Data))
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(strings.ReplaceAll(n.Data, "--", "- -"))
		b.WriteString("-->")
	case FragmentNode:
		for c := n.firstChild; c != nil; c = c.next {
			c.render(b)
		}
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Tag)
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte(' ')
			b.WriteString(k)
			b.WriteString(`="`)
			b.WriteString(escapeAttr(n.Attrs[k]))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		if IsVoidElement(n.Tag) {
			return
		}
		for c := n.firstChild; c != nil; c = c.next {
			c.render(b)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in HTML attribute values.
// In addition to the standard HTML entities, it also escapes
// whitespace characters that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
