package viewslot

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/viewslot/internal/errors"
	"github.com/vango-dev/viewslot/pkg/animation"
	"github.com/vango-dev/viewslot/pkg/dom"
	"github.com/vango-dev/viewslot/pkg/view"
)

// ViewSlot owns the views placed at an anchor node.
type ViewSlot struct {
	mu sync.Mutex

	anchor            *dom.Node
	anchorIsContainer bool
	context           any
	children          []View
	isBound           bool
	isAttached        bool

	selectors []ContentSelector
	mode      mutator

	animator animation.Animator
	apply    Applier
	dispatch func(func())
	logger   *slog.Logger
}

// Option configures a ViewSlot.
type Option func(*ViewSlot)

// WithAnimator sets the animator used for enter and leave transitions.
// Default: animation.None.
func WithAnimator(a animation.Animator) Option {
	return func(s *ViewSlot) {
		if a != nil {
			s.animator = a
		}
	}
}

// WithSelectorApplier replaces the function that distributes view content
// among content selectors in projection mode. Default: ApplySelectors.
func WithSelectorApplier(apply Applier) Option {
	return func(s *ViewSlot) {
		if apply != nil {
			s.apply = apply
		}
	}
}

// WithDispatcher sets how continuations that finish an animated removal are
// run. Hosts with an event loop pass a function that queues f onto it.
// Default: run f immediately on the goroutine that settled the transition.
func WithDispatcher(dispatch func(f func())) Option {
	return func(s *ViewSlot) {
		if dispatch != nil {
			s.dispatch = dispatch
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *ViewSlot) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a slot anchored at anchor. When anchorIsContainer is true views
// are appended into the anchor, otherwise they are inserted before it. ctx is
// the initial binding context. The anchor records the slot in its Slot field.
func New(anchor *dom.Node, anchorIsContainer bool, ctx any, opts ...Option) (*ViewSlot, error) {
	if anchor == nil {
		return nil, errors.New("E101").
			WithSuggestion("Pass the container element or the comment marker the views belong at")
	}

	s := &ViewSlot{
		anchor:            anchor,
		anchorIsContainer: anchorIsContainer,
		context:           ctx,
		mode:              direct{},
		animator:          animation.None,
		apply:             ApplySelectors,
		dispatch:          func(f func()) { f() },
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "viewslot")

	anchor.Slot = s
	return s, nil
}

// Anchor returns the node views are placed relative to.
func (s *ViewSlot) Anchor() *dom.Node { return s.anchor }

// Children returns a snapshot of the slot's views in order.
func (s *ViewSlot) Children() []View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Len returns the number of views in the slot.
func (s *ViewSlot) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.children)
}

// IndexOf returns the position of view, or -1.
func (s *ViewSlot) IndexOf(view View) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(view)
}

// IsBound reports whether the slot is bound.
func (s *ViewSlot) IsBound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isBound
}

// IsAttached reports whether the slot is attached.
func (s *ViewSlot) IsAttached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAttached
}

// Projecting reports whether content selectors are installed.
func (s *ViewSlot) Projecting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectors != nil
}

// Context returns the current binding context.
func (s *ViewSlot) Context() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.context
}

// Bind binds the slot and its views to ctx. Binding again with the same
// context does nothing; a different context unbinds first. A nil ctx keeps
// the current context.
func (s *ViewSlot) Bind(ctx any) {
	s.mu.Lock()
	if s.isBound {
		if view.SameContext(s.context, ctx) {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
		s.Unbind()
		s.mu.Lock()
	}

	s.isBound = true
	if ctx == nil {
		ctx = s.context
	}
	s.context = ctx
	children := s.snapshot()
	s.mu.Unlock()

	for _, child := range children {
		child.Bind(ctx)
	}
}

// Unbind unbinds the slot and all of its views.
func (s *ViewSlot) Unbind() {
	s.mu.Lock()
	s.isBound = false
	children := s.snapshot()
	s.mu.Unlock()

	for _, child := range children {
		child.Unbind()
	}
}

// Attached marks the slot attached and notifies its views. It does nothing
// if the slot is already attached.
func (s *ViewSlot) Attached() {
	s.mu.Lock()
	if s.isAttached {
		s.mu.Unlock()
		return
	}
	s.isAttached = true
	children := s.snapshot()
	s.mu.Unlock()

	for _, child := range children {
		child.Attached()
	}
}

// Detached marks the slot detached and notifies its views. It does nothing
// if the slot is not attached.
func (s *ViewSlot) Detached() {
	s.mu.Lock()
	if !s.isAttached {
		s.mu.Unlock()
		return
	}
	s.isAttached = false
	children := s.snapshot()
	s.mu.Unlock()

	for _, child := range children {
		child.Detached()
	}
}

// TransformChildNodesIntoView adopts the nodes already under the anchor as a
// view, so markup rendered before the slot existed can be removed or swapped
// like any other view.
func (s *ViewSlot) TransformChildNodesIntoView() View {
	v := &adoptedView{parent: s.anchor}

	s.mu.Lock()
	s.children = append(s.children, v)
	s.mu.Unlock()
	return v
}

func (s *ViewSlot) snapshot() []View {
	out := make([]View, len(s.children))
	copy(out, s.children)
	return out
}

func (s *ViewSlot) indexOf(view View) int {
	for i, child := range s.children {
		if child == view {
			return i
		}
	}
	return -1
}

// adoptedView wraps nodes that were under the anchor before the slot took
// over.
type adoptedView struct {
	parent *dom.Node
}

func (v *adoptedView) FirstChild() *dom.Node { return v.parent.FirstChild() }
func (v *adoptedView) Fragment() *dom.Node { return dom.Fragment() }
func (v *adoptedView) AnimatableRoot() *dom.Node { return nil }
func (v *adoptedView) Created() {}
func (v *adoptedView) Bind(any) {}
func (v *adoptedView) Unbind() {}
func (v *adoptedView) Attached() {}
func (v *adoptedView) Detached() {}
func (v *adoptedView) InsertNodesBefore(*dom.Node) {}
func (v *adoptedView) AppendNodesTo(*dom.Node) {}
func (v *adoptedView) RemoveNodes() { v.parent.RemoveChildren() }
