package viewslot

import (
	"github.com/vango-dev/viewslot/internal/errors"
	"github.com/vango-dev/viewslot/pkg/animation"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrNilAnchor          = errors.New("E101")
	ErrIndexOutOfRange    = errors.New("E102")
	ErrViewNotFound       = errors.New("E103")
	ErrSelectorsInstalled = errors.New("E104")
	ErrNilView            = errors.New("E105")
	ErrDetachedAnchor     = errors.New("E106")

	// ErrTransitionFailed is animation.ErrTransition.
	ErrTransitionFailed = animation.ErrTransition
)

func indexError(index, length int) error {
	return errors.New("E102").WithDetailf("index %d, %d children", index, length)
}

func anchorError() error {
	return errors.New("E106").
		WithSuggestion("Insert the comment marker into its parent before adding views")
}

func transitionError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New("E110").Wrap(err)
}
