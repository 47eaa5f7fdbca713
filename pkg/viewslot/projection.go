package viewslot

import (
	"github.com/vango-dev/viewslot/internal/errors"
	"github.com/vango-dev/viewslot/pkg/animation"
	"github.com/vango-dev/viewslot/pkg/dom"
)

// InstallContentSelectors switches the slot to projection mode. From then on
// views are distributed among selectors instead of being placed at the
// anchor, and removals are never animated. The switch cannot be undone or
// repeated.
func (s *ViewSlot) InstallContentSelectors(selectors []ContentSelector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectors != nil {
		return errors.New("E104")
	}
	if selectors == nil {
		selectors = []ContentSelector{}
	}
	s.selectors = selectors
	s.mode = projection{}
	s.logger.Debug("content selectors installed", "selectors", len(selectors))
	return nil
}

// projection distributes views among content selectors.
type projection struct{}

func (projection) add(s *ViewSlot, view View) effects {
	s.apply(view, s.selectors, func(sel ContentSelector, group []*dom.Node) {
		sel.Add(group)
	})
	s.children = append(s.children, view)

	if s.isAttached {
		return effects{view.Attached}
	}
	return nil
}

func (projection) insert(s *ViewSlot, index int, view View) effects {
	s.apply(view, s.selectors, func(sel ContentSelector, group []*dom.Node) {
		sel.Insert(index, group)
	})
	s.children = append(s.children, nil)
	copy(s.children[index+1:], s.children[index:])
	s.children[index] = view

	if s.isAttached {
		return effects{view.Attached}
	}
	return nil
}

func (projection) removeView(s *ViewSlot, index int) (*Removal, effects) {
	view := s.children[index]
	for _, sel := range s.selectors {
		sel.RemoveAt(index, view.Fragment())
	}
	s.children = append(s.children[:index], s.children[index+1:]...)

	if s.isAttached {
		return completedRemoval(view), effects{view.Detached}
	}
	return completedRemoval(view), nil
}

func (projection) removeAll(s *ViewSlot) (*animation.Completion, effects) {
	children := s.snapshot()

	// Back to front so every index still addresses its original group.
	for i := len(children) - 1; i >= 0; i-- {
		for _, sel := range s.selectors {
			sel.RemoveAt(i, children[i].Fragment())
		}
	}

	return animation.Completed(), s.clear(children)
}
