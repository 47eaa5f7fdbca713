package slottest

import (
	"sync"

	"github.com/vango-dev/viewslot/pkg/animation"
	"github.com/vango-dev/viewslot/pkg/dom"
)

// Transition is a pending enter or leave started on a ManualAnimator.
type Transition struct {
	Kind    string // "enter" or "leave"
	Element *dom.Node
	resolve animation.Resolve
	done    *animation.Completion
}

// Finish completes the transition successfully.
func (t *Transition) Finish() { t.resolve(nil) }

// Fail completes the transition with err.
func (t *Transition) Fail(err error) { t.resolve(err) }

// Settled reports whether the transition has completed.
func (t *Transition) Settled() bool { return t.done.Settled() }

// ManualAnimator keeps every transition pending until the test settles it.
// Enter transitions can be auto-completed so only leaves need driving.
type ManualAnimator struct {
	mu          sync.Mutex
	transitions []*Transition
	autoEnter   bool
}

// NewManualAnimator returns an animator that holds leaves pending and
// completes enters immediately.
func NewManualAnimator() *ManualAnimator {
	return &ManualAnimator{autoEnter: true}
}

// HoldEnters makes enter transitions pending as well.
func (m *ManualAnimator) HoldEnters() *ManualAnimator {
	m.autoEnter = false
	return m
}

// Enter implements animation.Animator.
func (m *ManualAnimator) Enter(el *dom.Node) *animation.Completion {
	t := m.start("enter", el)
	if m.autoEnter {
		t.Finish()
	}
	return t.done
}

// Leave implements animation.Animator.
func (m *ManualAnimator) Leave(el *dom.Node) *animation.Completion {
	return m.start("leave", el).done
}

func (m *ManualAnimator) start(kind string, el *dom.Node) *Transition {
	c, resolve := animation.NewCompletion()
	t := &Transition{Kind: kind, Element: el, resolve: resolve, done: c}
	m.mu.Lock()
	m.transitions = append(m.transitions, t)
	m.mu.Unlock()
	return t
}

// Transitions returns every transition started so far, optionally filtered
// by kind.
func (m *ManualAnimator) Transitions(kind string) []*Transition {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Transition
	for _, t := range m.transitions {
		if kind == "" || t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Pending returns the transitions that have not settled.
func (m *ManualAnimator) Pending() []*Transition {
	var out []*Transition
	for _, t := range m.Transitions("") {
		if !t.Settled() {
			out = append(out, t)
		}
	}
	return out
}

// FinishAll completes every pending transition in start order.
func (m *ManualAnimator) FinishAll() {
	for _, t := range m.Pending() {
		t.Finish()
	}
}
