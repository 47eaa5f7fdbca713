package animation

import (
	"testing"
	"time"

	"github.com/vango-dev/viewslot/pkg/dom"
)

// manualTimer collects scheduled callbacks so tests can fire them.
type manualTimer struct {
	durations []time.Duration
	pending   []func()
}

func (m *manualTimer) afterFunc(d time.Duration, f func()) {
	m.durations = append(m.durations, d)
	m.pending = append(m.pending, f)
}

func (m *manualTimer) fire() {
	pending := m.pending
	m.pending = nil
	for _, f := range pending {
		f()
	}
}

func TestCSSEnter(t *testing.T) {
	timer := &manualTimer{}
	a := NewCSS(
		WithDurations(200*time.Millisecond, 100*time.Millisecond),
		WithAfterFunc(timer.afterFunc),
	)
	el := dom.Element("li", dom.Class("item"))

	c := a.Enter(el)
	if c.Settled() {
		t.Fatal("enter should be pending until the timer fires")
	}
	if !el.HasClass(DefaultEnterClass) || !el.HasClass(DefaultEnterActiveClass) {
		t.Errorf("class = %q, want enter classes", el.Attrs["class"])
	}
	if len(timer.durations) != 1 || timer.durations[0] != 200*time.Millisecond {
		t.Errorf("durations = %v", timer.durations)
	}

	timer.fire()
	if !c.Settled() || c.Err() != nil {
		t.Fatal("enter should complete after the timer fires")
	}
	if got := el.Attrs["class"]; got != "item" {
		t.Errorf("class after enter = %q, want item", got)
	}
}

func TestCSSLeaveCustomClasses(t *testing.T) {
	timer := &manualTimer{}
	a := NewCSS(
		WithDurations(0, 50*time.Millisecond),
		WithLeaveClasses("fade-out", ""),
		WithAfterFunc(timer.afterFunc),
	)
	el := dom.Element("div")

	c := a.Leave(el)
	if !el.HasClass("fade-out") {
		t.Errorf("class = %q, want fade-out", el.Attrs["class"])
	}
	timer.fire()
	if !c.Settled() {
		t.Fatal("leave should complete")
	}
	if _, ok := el.Attr("class"); ok {
		t.Error("class attribute should be removed after leave")
	}
}

func TestCSSZeroDurationIsSynchronous(t *testing.T) {
	timer := &manualTimer{}
	a := NewCSS(WithAfterFunc(timer.afterFunc))
	el := dom.Element("div")

	if c := a.Enter(el); !c.Settled() {
		t.Error("zero-duration enter should complete synchronously")
	}
	if len(timer.pending) != 0 {
		t.Error("zero-duration enter should not schedule a timer")
	}
	if _, ok := el.Attr("class"); ok {
		t.Error("zero-duration enter should not touch classes")
	}
}

func TestCSSIgnoresNonElements(t *testing.T) {
	a := NewCSS(WithDurations(time.Second, time.Second))
	if c := a.Leave(dom.Text("x")); !c.Settled() {
		t.Error("text nodes should not animate")
	}
	if c := a.Enter(nil); !c.Settled() {
		t.Error("nil element should not animate")
	}
}

func TestCSSRealTimer(t *testing.T) {
	a := NewCSS(WithDurations(time.Millisecond, time.Millisecond))
	c := a.Leave(dom.Element("div"))
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("leave did not complete with the real timer")
	}
}

func TestNoneAndFunc(t *testing.T) {
	if !None.Enter(dom.Element("a")).Settled() || !None.Leave(dom.Element("a")).Settled() {
		t.Error("None should complete immediately")
	}

	var entered *dom.Node
	f := Func{EnterFunc: func(el *dom.Node) *Completion {
		entered = el
		return Completed()
	}}
	el := dom.Element("p")
	f.Enter(el)
	if entered != el {
		t.Error("Func should call EnterFunc")
	}
	if !f.Leave(el).Settled() {
		t.Error("nil LeaveFunc should complete immediately")
	}
}
