package animation

import (
	"github.com/vango-dev/viewslot/internal/errors"
	"github.com/vango-dev/viewslot/pkg/dom"
)

// ErrTransition matches errors reported by animators whose transition failed.
var ErrTransition = errors.New("E110")

// Animator runs enter and leave transitions on rendered elements.
type Animator interface {
	// Enter starts the transition played when el enters the document.
	Enter(el *dom.Node) *Completion

	// Leave starts the transition played before el leaves the document.
	Leave(el *dom.Node) *Completion
}

// None is an Animator whose transitions complete immediately.
var None Animator = noneAnimator{}

type noneAnimator struct{}

func (noneAnimator) Enter(*dom.Node) *Completion { return Completed() }
func (noneAnimator) Leave(*dom.Node) *Completion { return Completed() }

// Func adapts a pair of functions to the Animator interface. A nil function
// completes immediately.
type Func struct {
	EnterFunc func(el *dom.Node) *Completion
	LeaveFunc func(el *dom.Node) *Completion
}

// Enter implements Animator.
func (f Func) Enter(el *dom.Node) *Completion {
	if f.EnterFunc == nil {
		return Completed()
	}
	return f.EnterFunc(el)
}

// Leave implements Animator.
func (f Func) Leave(el *dom.Node) *Completion {
	if f.LeaveFunc == nil {
		return Completed()
	}
	return f.LeaveFunc(el)
}
