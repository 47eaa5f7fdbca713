package viewslot

import "github.com/vango-dev/viewslot/pkg/animation"

// Removal reports the removal of a single view. It settles once the view's
// nodes are out of the document and the view is no longer a child of the
// slot. Its error is non-nil when the leave transition failed; the view is
// removed regardless.
type Removal struct {
	*animation.Completion
	view View
}

// View returns the removed view so the caller can reuse it.
func (r *Removal) View() View { return r.view }

func completedRemoval(view View) *Removal {
	return &Removal{Completion: animation.Completed(), view: view}
}

func pendingRemoval(view View) (*Removal, animation.Resolve) {
	c, resolve := animation.NewCompletion()
	return &Removal{Completion: c, view: view}, resolve
}
