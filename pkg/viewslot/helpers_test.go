package viewslot_test

import (
	"testing"

	"github.com/vango-dev/viewslot/pkg/dom"
	"github.com/vango-dev/viewslot/pkg/slottest"
	"github.com/vango-dev/viewslot/pkg/viewslot"
)

// newList returns a slot that appends into a <ul>.
func newList(t *testing.T, opts ...viewslot.Option) (*dom.Node, *viewslot.ViewSlot) {
	t.Helper()
	ul := dom.Element("ul")
	s, err := viewslot.New(ul, true, nil, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return ul, s
}

// names returns the names of the slot's recording views, in order.
func names(s *viewslot.ViewSlot) []string {
	var out []string
	for _, v := range s.Children() {
		if r, ok := v.(*slottest.RecordingView); ok {
			out = append(out, r.Name)
		} else {
			out = append(out, "?")
		}
	}
	return out
}

func expectNames(t *testing.T, s *viewslot.ViewSlot, want ...string) {
	t.Helper()
	got := names(s)
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
}

func mustAdd(t *testing.T, s *viewslot.ViewSlot, views ...viewslot.View) {
	t.Helper()
	for _, v := range views {
		if err := s.Add(v); err != nil {
			t.Fatalf("Add() error: %v", err)
		}
	}
}

func li(name string) string {
	return `<li data-view="` + name + `">` + name + `</li>`
}

func marked(name string) string {
	return "<!--" + name + "-->" + li(name)
}
