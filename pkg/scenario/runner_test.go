package scenario

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	vserrors "github.com/vango-dev/viewslot/internal/errors"
	"github.com/vango-dev/viewslot/pkg/animation"
	"github.com/vango-dev/viewslot/pkg/dom"
	"github.com/vango-dev/viewslot/pkg/viewslot"
)

func mustLoad(t *testing.T, name string) *Scenario {
	t.Helper()
	sc, err := Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Load(%s) error: %v", name, err)
	}
	return sc
}

func mustParse(t *testing.T, src string) *Scenario {
	t.Helper()
	sc, err := Parse([]byte(src), "inline.yaml")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return sc
}

func run(t *testing.T, sc *Scenario, opts ...Option) (*Runner, []Snapshot) {
	t.Helper()
	var snaps []Snapshot
	opts = append(opts, WithObserver(func(s Snapshot) { snaps = append(snaps, s) }))
	r, err := NewRunner(sc, opts...)
	if err != nil {
		t.Fatalf("NewRunner() error: %v", err)
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return r, snaps
}

func TestRunnerDirect(t *testing.T) {
	r, snaps := run(t, mustLoad(t, "swap.yaml"))

	if len(snaps) != 7 {
		t.Fatalf("got %d snapshots, want 7", len(snaps))
	}

	tests := []struct {
		step     int
		children string
		events   string
	}{
		{1, "", "a.created b.created c.created"},
		{2, "", ""},
		{3, "a", "a.attached"},
		{5, "a b c", "b.attached"},
		{6, "b c", "a.detached"},
		{7, "a", "b.detached c.detached a.attached"},
	}
	for _, tt := range tests {
		s := snaps[tt.step-1]
		if got := strings.Join(s.Children, " "); got != tt.children {
			t.Errorf("step %d children = %q, want %q", tt.step, got, tt.children)
		}
		if got := strings.Join(s.Events, " "); got != tt.events {
			t.Errorf("step %d events = %q, want %q", tt.step, got, tt.events)
		}
	}

	wantAfterInsert := `<div id="host"><ul id="slot"><!--a--><li data-view="a">a</li>` +
		`<li data-view="b">b</li><!--c--><li data-view="c">c</li></ul></div>`
	if snaps[4].HTML != wantAfterInsert {
		t.Errorf("HTML after insert = %q", snaps[4].HTML)
	}
	if got := r.HTML(); got != `<div id="host"><ul id="slot"><!--a--><li data-view="a">a</li></ul></div>` {
		t.Errorf("final HTML = %q", got)
	}
	if !r.Slot().IsBound() || !r.Slot().IsAttached() {
		t.Error("slot should be bound and attached")
	}
	if ctx := r.Slot().Context(); ctx != "page" {
		t.Errorf("Context() = %v, want page", ctx)
	}
}

func TestRunnerProjection(t *testing.T) {
	r, _ := run(t, mustLoad(t, "projection.json"))

	want := `<div id="host">` +
		`<section data-target="title"><h1>One</h1><!--title--></section>` +
		`<section data-target="body"><p>body one</p><!--body--></section>` +
		`<!--slot--></div>`
	if got := r.HTML(); got != want {
		t.Fatalf("HTML = %q\nwant   %q", got, want)
	}
	if got := r.Children(); len(got) != 1 || got[0] != "first" {
		t.Fatalf("Children() = %v", got)
	}
	if !r.Slot().Projecting() {
		t.Fatal("slot should be projecting")
	}
}

func TestRunnerRejectedStep(t *testing.T) {
	sc := mustParse(t, "views: [{name: a}]\nsteps:\n  - {op: add, view: a}\n  - {op: insert, view: a, index: -1}\n")
	r, err := NewRunner(sc)
	if err != nil {
		t.Fatal(err)
	}

	err = r.Run(context.Background())
	if !errors.Is(err, viewslot.ErrIndexOutOfRange) {
		t.Fatalf("Run() = %v, want ErrIndexOutOfRange", err)
	}
	var e *vserrors.Error
	if !errors.As(err, &e) || e.Code != "E133" || e.Location.Line != 4 {
		t.Fatalf("error = %v, want E133 at line 4", err)
	}
}

func TestRunnerFailedLeaveContinues(t *testing.T) {
	sc := mustParse(t, "views: [{name: a, animated: true}, {name: b}]\nsteps:\n  - {op: add, view: a}\n  - {op: remove, view: a}\n  - {op: add, view: b}\n")
	boom := errors.New("boom")
	anim := animation.Func{LeaveFunc: func(*dom.Node) *animation.Completion { return animation.Failed(boom) }}

	r, snaps := run(t, sc, WithAnimator(anim))

	if snaps[1].Error == "" || !strings.Contains(snaps[1].Error, "boom") {
		t.Fatalf("remove snapshot error = %q", snaps[1].Error)
	}
	if got := r.Children(); len(got) != 1 || got[0] != "b" {
		t.Fatalf("Children() = %v, want [b]", got)
	}
}

func TestRunnerTimedAnimator(t *testing.T) {
	var animator *animation.CSS
	sc := mustLoad(t, "swap.yaml")
	r, snaps := run(t, sc, WithTimedAnimator(func(after AfterFunc) animation.Animator {
		animator = animation.NewCSS(
			animation.WithDurations(time.Millisecond, 2*time.Millisecond),
			animation.WithAfterFunc(after),
		)
		return animator
	}))

	if animator == nil {
		t.Fatal("factory was not called")
	}
	if got := strings.Join(snaps[5].Children, " "); got != "b c" {
		t.Fatalf("children after removeAt = %q, want %q", got, "b c")
	}
	if strings.Contains(snaps[5].HTML, "au-leave") {
		t.Fatalf("leave classes left behind: %s", snaps[5].HTML)
	}
	if got := r.Children(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("Children() = %v, want [a]", got)
	}
}

func TestRunnerCancel(t *testing.T) {
	sc := mustParse(t, "steps:\n  - {op: attached, pause: 1h}\n  - {op: detached}\n")
	r, err := NewRunner(sc)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if !r.Slot().IsAttached() {
		t.Fatal("first step should have run")
	}
}
