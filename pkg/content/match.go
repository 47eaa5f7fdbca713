package content

import (
	"strings"

	"github.com/vango-dev/viewslot/internal/errors"
	"github.com/vango-dev/viewslot/pkg/dom"
)

// attrTest checks an attribute, optionally for an exact value.
type attrTest struct {
	key      string
	value    string
	hasValue bool
}

// compound is one comma-separated alternative, e.g. li.item[data-id].
type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrTest
}

func (c compound) matches(n *dom.Node) bool {
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(c.tag, n.Tag) {
		return false
	}
	if c.id != "" {
		if id, _ := n.Attr("id"); id != c.id {
			return false
		}
	}
	for _, class := range c.classes {
		if !n.HasClass(class) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := n.Attr(a.key)
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

// parseSelector parses a comma-separated list of compound selectors.
func parseSelector(expr string) ([]compound, error) {
	var out []compound
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, invalidSelector(expr, "empty alternative")
		}
		c, err := parseCompound(part)
		if err != nil {
			return nil, invalidSelector(expr, err.Error())
		}
		out = append(out, c)
	}
	return out, nil
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	readName := func() string {
		start := i
		for i < len(s) && isNameChar(s[i]) {
			i++
		}
		return s[start:i]
	}

	if i < len(s) && s[i] == '*' {
		c.tag = "*"
		i++
	} else {
		c.tag = readName()
	}

	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			if c.id = readName(); c.id == "" {
				return c, errors.Newf(errors.CategoryProjection, "missing id after '#'")
			}
		case '.':
			i++
			class := readName()
			if class == "" {
				return c, errors.Newf(errors.CategoryProjection, "missing class after '.'")
			}
			c.classes = append(c.classes, class)
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, errors.Newf(errors.CategoryProjection, "unterminated attribute test")
			}
			a, err := parseAttr(s[i+1 : i+end])
			if err != nil {
				return c, err
			}
			c.attrs = append(c.attrs, a)
			i += end + 1
		default:
			return c, errors.Newf(errors.CategoryProjection, "unexpected %q", s[i])
		}
	}
	return c, nil
}

func parseAttr(body string) (attrTest, error) {
	key, value, hasValue := strings.Cut(body, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return attrTest{}, errors.Newf(errors.CategoryProjection, "missing attribute name")
	}
	value = strings.Trim(strings.TrimSpace(value), `"'`)
	return attrTest{key: key, value: value, hasValue: hasValue}, nil
}

func isNameChar(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func invalidSelector(expr, reason string) error {
	return errors.New("E111").WithDetailf("%q: %s", expr, reason)
}
