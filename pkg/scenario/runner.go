package scenario

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/viewslot/internal/errors"
	"github.com/vango-dev/viewslot/pkg/animation"
	"github.com/vango-dev/viewslot/pkg/content"
	"github.com/vango-dev/viewslot/pkg/dom"
	"github.com/vango-dev/viewslot/pkg/view"
	"github.com/vango-dev/viewslot/pkg/viewslot"
)

// Snapshot is the state of the document after a step.
type Snapshot struct {
	Step     int      `json:"step"`
	Op       string   `json:"op"`
	HTML     string   `json:"html"`
	Children []string `json:"children"`
	Events   []string `json:"events,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// AfterFunc runs f once d has elapsed.
type AfterFunc func(d time.Duration, f func())

// Option configures a Runner.
type Option func(*Runner)

// WithAnimator sets an animator that settles transitions on the caller's
// goroutine, such as animation.None or a test animator.
func WithAnimator(a animation.Animator) Option {
	return func(r *Runner) {
		r.animator = a
	}
}

// WithTimedAnimator builds the animator from a factory that receives the
// runner's AfterFunc. Timers scheduled through it run under the document
// lock, so snapshots never observe a half-applied transition.
func WithTimedAnimator(build func(after AfterFunc) animation.Animator) Option {
	return func(r *Runner) {
		r.animator = build(r.afterFunc)
	}
}

// WithObserver registers fn to receive a Snapshot after every step.
func WithObserver(fn func(Snapshot)) Option {
	return func(r *Runner) {
		r.observers = append(r.observers, fn)
	}
}

// WithStepDelay waits d between steps.
func WithStepDelay(d time.Duration) Option {
	return func(r *Runner) {
		r.delay = d
	}
}

// WithLogger sets the logger for the runner and its slot.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// Runner executes a scenario against a host document.
type Runner struct {
	sc        *Scenario
	animator  animation.Animator
	observers []func(Snapshot)
	delay     time.Duration
	logger    *slog.Logger

	// docMu guards the document and the slot's view of it.
	docMu     sync.Mutex
	root      *dom.Node
	slot      *viewslot.ViewSlot
	views     map[string]*view.View
	names     map[viewslot.View]string
	selectors []*content.Selector

	eventsMu sync.Mutex
	events   []string
}

// NewRunner builds the host document, the slot and every declared view.
func NewRunner(sc *Scenario, opts ...Option) (*Runner, error) {
	r := &Runner{
		sc:       sc,
		animator: animation.None,
		logger:   slog.Default(),
		views:    make(map[string]*view.View, len(sc.Views)),
		names:    make(map[viewslot.View]string, len(sc.Views)),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.root = dom.Element("div", dom.ID("host"))
	for _, t := range sc.Targets {
		marker := dom.Comment(t.Name)
		r.root.AppendChild(dom.Element("section", dom.Data("target", t.Name), marker))
		sel, err := content.NewSelector(marker, t.Select)
		if err != nil {
			return nil, err
		}
		r.selectors = append(r.selectors, sel)
	}

	var anchor *dom.Node
	container := sc.Anchor != AnchorMarker
	if container {
		anchor = dom.Element("ul", dom.ID("slot"))
	} else {
		anchor = dom.Comment("slot")
	}
	r.root.AppendChild(anchor)

	slot, err := viewslot.New(anchor, container, nil,
		viewslot.WithAnimator(r.animator),
		viewslot.WithLogger(r.logger),
	)
	if err != nil {
		return nil, err
	}
	r.slot = slot

	for _, spec := range sc.Views {
		v := r.buildView(spec)
		r.views[spec.Name] = v
		r.names[v] = spec.Name
		v.Created()
	}
	return r, nil
}

func (r *Runner) buildView(spec ViewSpec) *view.View {
	name := spec.Name
	hooks := view.Hooks{
		OnCreated:  func() { r.record(name + ".created") },
		OnBind:     func(ctx any) { r.record(name + ".bind") },
		OnUnbind:   func() { r.record(name + ".unbind") },
		OnAttached: func() { r.record(name + ".attached") },
		OnDetached: func() { r.record(name + ".detached") },
	}

	if len(spec.Parts) > 0 {
		frag := dom.Fragment()
		for _, p := range spec.Parts {
			frag.AppendChild(element(p.Tag, p.Class, p.Text))
		}
		return view.New(frag, hooks)
	}

	tag, text := spec.Tag, spec.Text
	if tag == "" {
		tag = "li"
	}
	if text == "" {
		text = name
	}
	el := element(tag, spec.Class, text)
	el.SetAttr("data-view", name)
	if spec.Animated {
		return view.Marked(name, el, hooks)
	}
	return view.New(dom.Fragment(el), hooks)
}

func element(tag, class, text string) *dom.Node {
	el := dom.Element(tag, dom.Text(text))
	if class != "" {
		el.SetAttr("class", class)
	}
	return el
}

func (r *Runner) record(event string) {
	r.eventsMu.Lock()
	r.events = append(r.events, event)
	r.eventsMu.Unlock()
}

func (r *Runner) takeEvents() []string {
	r.eventsMu.Lock()
	defer r.eventsMu.Unlock()
	events := r.events
	r.events = nil
	return events
}

func (r *Runner) afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, func() {
		r.docMu.Lock()
		defer r.docMu.Unlock()
		f()
	})
}

// Slot returns the slot under test.
func (r *Runner) Slot() *viewslot.ViewSlot { return r.slot }

// HTML renders the host document.
func (r *Runner) HTML() string {
	r.docMu.Lock()
	defer r.docMu.Unlock()
	return r.root.HTML()
}

// Children returns the names of the slot's views in order.
func (r *Runner) Children() []string {
	r.docMu.Lock()
	defer r.docMu.Unlock()
	return r.childNames()
}

func (r *Runner) childNames() []string {
	children := r.slot.Children()
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = r.names[c]
	}
	return out
}

// Run executes every step in order. It stops at the first step the slot
// rejects or when ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("scenario started", "file", r.sc.File, "steps", len(r.sc.Steps))
	for i := range r.sc.Steps {
		if i > 0 && r.delay > 0 {
			if err := sleep(ctx, r.delay); err != nil {
				return err
			}
		}
		if err := r.Step(ctx, i); err != nil {
			return err
		}
	}
	r.logger.Debug("scenario finished", "file", r.sc.File)
	return nil
}

// Step executes step i, waits for any removal it started and notifies
// observers.
func (r *Runner) Step(ctx context.Context, i int) error {
	step := r.sc.Steps[i]

	pending, err := r.exec(step)
	if err != nil {
		return errors.New("E133").
			WithLocation(r.sc.File, step.Line, 0).
			WithDetailf("step %d: %s", i+1, step.Op).
			Wrap(err)
	}

	var failure string
	if pending != nil {
		if err := pending.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return err
			}
			// A rejected transition still removes the view; report and go on.
			r.logger.Warn("transition failed", "step", i+1, "op", step.Op, "error", err)
			failure = err.Error()
		}
	}

	snap := r.snapshot(i+1, step.Op, failure)
	for _, fn := range r.observers {
		fn(snap)
	}

	if step.Pause > 0 {
		return sleep(ctx, step.Pause)
	}
	return nil
}

func (r *Runner) snapshot(step int, op, failure string) Snapshot {
	r.docMu.Lock()
	html, children := r.root.HTML(), r.childNames()
	r.docMu.Unlock()
	return Snapshot{
		Step:     step,
		Op:       op,
		HTML:     html,
		Children: children,
		Events:   r.takeEvents(),
		Error:    failure,
	}
}

// exec applies step to the slot under the document lock and returns the
// completion to wait for, if any.
func (r *Runner) exec(step Step) (*animation.Completion, error) {
	r.docMu.Lock()
	defer r.docMu.Unlock()

	v := r.views[step.View]
	switch step.Op {
	case OpAdd:
		return nil, r.slot.Add(v)
	case OpInsert:
		return nil, r.slot.Insert(*step.Index, v)
	case OpRemove:
		rem, err := r.slot.Remove(v)
		if err != nil {
			return nil, err
		}
		return rem.Completion, nil
	case OpRemoveAt:
		rem, err := r.slot.RemoveAt(*step.Index)
		if err != nil {
			return nil, err
		}
		return rem.Completion, nil
	case OpRemoveAll:
		return r.slot.RemoveAll(), nil
	case OpSwap:
		return r.slot.Swap(v), nil
	case OpBind:
		var ctx any
		if step.Context != "" {
			ctx = step.Context
		}
		r.slot.Bind(ctx)
	case OpUnbind:
		r.slot.Unbind()
	case OpAttached:
		r.slot.Attached()
	case OpDetached:
		r.slot.Detached()
	case OpProject:
		return nil, r.slot.InstallContentSelectors(content.Selectors(r.selectors...))
	default:
		return nil, errors.New("E131").WithDetail(step.Op)
	}
	return nil, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
