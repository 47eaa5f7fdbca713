package content

import (
	"testing"

	"github.com/vango-dev/viewslot/pkg/dom"
)

func newTarget() (*dom.Node, *Selector) {
	anchor := dom.Comment("content")
	host := dom.Element("div", anchor)
	return host, MustSelector(anchor, "")
}

func group(names ...string) []*dom.Node {
	out := make([]*dom.Node, len(names))
	for i, name := range names {
		out[i] = dom.Element("b", name)
	}
	return out
}

func TestSelectorAdd(t *testing.T) {
	host, s := newTarget()

	s.Add(group("a"))
	s.Add(nil)
	s.Add(group("b", "c"))

	if got := host.InnerHTML(); got != "<b>a</b><b>b</b><b>c</b><!--content-->" {
		t.Fatalf("HTML = %q", got)
	}
	if s.Len() != 3 || len(s.Group(1)) != 0 || len(s.Group(2)) != 2 {
		t.Fatalf("groups = %d", s.Len())
	}
}

func TestSelectorInsert(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"front", 0, "<b>x</b><b>a</b><b>c</b><!--content-->"},
		{"before empty group", 1, "<b>a</b><b>x</b><b>c</b><!--content-->"},
		{"after empty group", 2, "<b>a</b><b>x</b><b>c</b><!--content-->"},
		{"end", 3, "<b>a</b><b>c</b><b>x</b><!--content-->"},
		{"past end", 10, "<b>a</b><b>c</b><b>x</b><!--content-->"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, s := newTarget()
			s.Add(group("a"))
			s.Add(nil)
			s.Add(group("c"))

			s.Insert(tt.index, group("x"))

			if got := host.InnerHTML(); got != tt.want {
				t.Fatalf("HTML = %q, want %q", got, tt.want)
			}
			if s.Len() != 4 {
				t.Fatalf("Len() = %d, want 4", s.Len())
			}
		})
	}
}

func TestSelectorInsertEmptyGroupKeepsIndices(t *testing.T) {
	host, s := newTarget()
	s.Add(group("a"))
	s.Insert(0, nil)

	if got := host.InnerHTML(); got != "<b>a</b><!--content-->" {
		t.Fatalf("HTML = %q", got)
	}
	if len(s.Group(0)) != 0 || len(s.Group(1)) != 1 {
		t.Fatal("empty group should occupy index 0")
	}
}

func TestSelectorRemoveAt(t *testing.T) {
	host, s := newTarget()
	s.Add(group("a"))
	s.Add(group("b", "c"))

	frag := dom.Fragment()
	s.RemoveAt(1, frag)

	if got := host.InnerHTML(); got != "<b>a</b><!--content-->" {
		t.Fatalf("HTML = %q", got)
	}
	if got := frag.HTML(); got != "<b>b</b><b>c</b>" {
		t.Fatalf("fragment = %q", got)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	s.RemoveAt(5, frag)
	s.RemoveAt(-1, frag)
	if s.Len() != 1 {
		t.Fatal("out of range RemoveAt should be ignored")
	}
}

func TestSelectorCopyForSlot(t *testing.T) {
	_, s := newTarget()
	s.Add(group("a"))

	c := s.CopyForSlot().(*Selector)
	if c.Len() != 0 {
		t.Fatal("copy should start without groups")
	}
	if c.Anchor() != s.Anchor() || c.Expr() != s.Expr() {
		t.Fatal("copy should share anchor and expression")
	}

	c.Add(group("n"))
	if s.Len() != 1 {
		t.Fatal("groups added to the copy should not affect the original")
	}
}

func TestSelectors(t *testing.T) {
	_, a := newTarget()
	_, b := newTarget()
	out := Selectors(a, b)
	if len(out) != 2 || out[0] != a || out[1] != b {
		t.Fatal("Selectors should preserve order")
	}
}
