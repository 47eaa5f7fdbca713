package viewslot

import (
	"github.com/vango-dev/viewslot/internal/errors"
	"github.com/vango-dev/viewslot/pkg/animation"
	"github.com/vango-dev/viewslot/pkg/dom"
)

// effects are deferred until the slot lock is released: view notifications
// and animator calls.
type effects []func()

func (e effects) run() {
	for _, fn := range e {
		fn()
	}
}

// mutator is the mode-specific implementation of the slot's mutations. Every
// method runs with the slot lock held.
type mutator interface {
	add(s *ViewSlot, view View) effects
	insert(s *ViewSlot, index int, view View) effects
	removeView(s *ViewSlot, index int) (*Removal, effects)
	removeAll(s *ViewSlot) (*animation.Completion, effects)
}

// Add places view at the end of the slot.
func (s *ViewSlot) Add(view View) error {
	if view == nil {
		return errors.New("E105")
	}

	s.mu.Lock()
	if s.anchorDetached() {
		s.mu.Unlock()
		return anchorError()
	}
	after := s.mode.add(s, view)
	s.mu.Unlock()

	after.run()
	return nil
}

// Insert places view at index. An index at or past the end, or zero on an
// empty slot, behaves like Add.
func (s *ViewSlot) Insert(index int, view View) error {
	if view == nil {
		return errors.New("E105")
	}

	s.mu.Lock()
	if index < 0 {
		n := len(s.children)
		s.mu.Unlock()
		return indexError(index, n)
	}
	if s.anchorDetached() {
		s.mu.Unlock()
		return anchorError()
	}
	var after effects
	if (index == 0 && len(s.children) == 0) || index >= len(s.children) {
		after = s.mode.add(s, view)
	} else {
		after = s.mode.insert(s, index, view)
	}
	s.mu.Unlock()

	after.run()
	return nil
}

// Remove removes view from the slot. An animated view stays a child until
// its leave transition completes.
func (s *ViewSlot) Remove(view View) (*Removal, error) {
	s.mu.Lock()
	index := s.indexOf(view)
	if index < 0 {
		s.mu.Unlock()
		s.logger.Warn("remove of unknown view")
		return nil, errors.New("E103")
	}
	r, after := s.mode.removeView(s, index)
	s.mu.Unlock()

	after.run()
	return r, nil
}

// RemoveAt removes the view at index. The removed view is available from the
// returned Removal.
func (s *ViewSlot) RemoveAt(index int) (*Removal, error) {
	s.mu.Lock()
	if index < 0 || index >= len(s.children) {
		n := len(s.children)
		s.mu.Unlock()
		s.logger.Warn("remove at invalid index", "index", index, "children", n)
		return nil, indexError(index, n)
	}
	r, after := s.mode.removeView(s, index)
	s.mu.Unlock()

	after.run()
	return r, nil
}

// RemoveAll removes every view. Leave transitions run concurrently; detach
// notifications are sent in order once all of them have completed. The
// returned completion is already settled when nothing was animated.
func (s *ViewSlot) RemoveAll() *animation.Completion {
	s.mu.Lock()
	c, after := s.mode.removeAll(s)
	s.mu.Unlock()

	after.run()
	return c
}

// Swap replaces all views with view. The new view is added only after the
// old ones are gone; the returned completion settles after the add.
func (s *ViewSlot) Swap(view View) *animation.Completion {
	if view == nil {
		return animation.Failed(errors.New("E105"))
	}
	return s.RemoveAll().Then(func(err error) error {
		if addErr := s.Add(view); addErr != nil {
			return addErr
		}
		return err
	})
}

// detach takes view out of the document and the child list, returning the
// detached notification when the slot is attached. Callers hold the lock.
func (s *ViewSlot) detach(view View) effects {
	view.RemoveNodes()
	index := s.indexOf(view)
	if index < 0 {
		return nil
	}
	s.children = append(s.children[:index], s.children[index+1:]...)
	if s.isAttached {
		return effects{view.Detached}
	}
	return nil
}

// finish schedules fn on the dispatcher. fn runs with the lock held and its
// effects run after release.
func (s *ViewSlot) finish(fn func() effects) {
	s.dispatch(func() {
		s.mu.Lock()
		after := fn()
		s.mu.Unlock()
		after.run()
	})
}

// direct places views at the anchor.
type direct struct{}

func (direct) add(s *ViewSlot, view View) effects {
	s.place(view)
	s.children = append(s.children, view)

	var after effects
	if root := view.AnimatableRoot(); root != nil {
		after = append(after, func() { s.enter(root) })
	}
	if s.isAttached {
		after = append(after, view.Attached)
	}
	return after
}

func (direct) insert(s *ViewSlot, index int, view View) effects {
	if ref := s.placedAfter(index); ref != nil {
		view.InsertNodesBefore(ref)
	} else {
		s.place(view)
	}
	s.children = append(s.children, nil)
	copy(s.children[index+1:], s.children[index:])
	s.children[index] = view

	if s.isAttached {
		return effects{view.Attached}
	}
	return nil
}

// place puts view's nodes at the anchor. Callers hold the lock.
func (s *ViewSlot) place(view View) {
	if s.anchorIsContainer {
		view.AppendNodesTo(s.anchor)
	} else {
		view.InsertNodesBefore(s.anchor)
	}
}

// placedAfter returns the leading placed node of the first child at or after
// index. Views with no nodes at the anchor are skipped. Callers hold the lock.
func (s *ViewSlot) placedAfter(index int) *dom.Node {
	for _, child := range s.children[index:] {
		ref := child.FirstChild()
		if ref == nil {
			continue
		}
		if parent := ref.Parent(); parent != nil && parent != child.Fragment() {
			return ref
		}
	}
	return nil
}

// anchorDetached reports whether views would be placed before a marker that
// has no parent. Projection mode never places at the anchor. Callers hold the
// lock.
func (s *ViewSlot) anchorDetached() bool {
	if _, ok := s.mode.(direct); !ok {
		return false
	}
	return !s.anchorIsContainer && s.anchor.Parent() == nil
}

func (direct) removeView(s *ViewSlot, index int) (*Removal, effects) {
	view := s.children[index]
	root := view.AnimatableRoot()
	if root == nil {
		return completedRemoval(view), s.detach(view)
	}

	r, resolve := pendingRemoval(view)
	s.logger.Debug("leave started", "index", index)
	return r, effects{func() {
		s.animator.Leave(root).OnSettled(func(err error) {
			s.finish(func() effects {
				after := s.detach(view)
				return append(after, func() {
					if err != nil {
						s.logger.Warn("leave transition failed", "error", err)
					}
					resolve(transitionError(err))
				})
			})
		})
	}}
}

func (direct) removeAll(s *ViewSlot) (*animation.Completion, effects) {
	children := s.snapshot()

	var animated []View
	var roots []*dom.Node
	for _, child := range children {
		if root := child.AnimatableRoot(); root != nil {
			animated = append(animated, child)
			roots = append(roots, root)
		} else {
			child.RemoveNodes()
		}
	}

	if len(animated) == 0 {
		return animation.Completed(), s.clear(children)
	}

	done, resolve := animation.NewCompletion()
	s.logger.Debug("remove all started", "children", len(children), "animated", len(animated))
	return done, effects{func() {
		leaves := make([]*animation.Completion, len(animated))
		for i, root := range roots {
			leaves[i] = s.animator.Leave(root)
		}
		animation.All(leaves...).OnSettled(func(err error) {
			s.finish(func() effects {
				for _, view := range animated {
					view.RemoveNodes()
				}
				after := s.clear(children)
				return append(after, func() {
					if err != nil {
						s.logger.Warn("leave transition failed", "error", err)
					}
					resolve(transitionError(err))
				})
			})
		})
	}}
}

// clear drops the given views from the child list and returns their detached
// notifications, in order, when the slot is attached. Callers hold the lock.
func (s *ViewSlot) clear(views []View) effects {
	removed := make(map[View]bool, len(views))
	for _, v := range views {
		removed[v] = true
	}
	kept := s.children[:0]
	for _, child := range s.children {
		if !removed[child] {
			kept = append(kept, child)
		}
	}
	for i := len(kept); i < len(s.children); i++ {
		s.children[i] = nil
	}
	s.children = kept

	if !s.isAttached {
		return nil
	}
	after := make(effects, 0, len(views))
	for _, v := range views {
		after = append(after, v.Detached)
	}
	return after
}

// enter starts the enter transition for root without waiting for it.
func (s *ViewSlot) enter(root *dom.Node) {
	s.animator.Enter(root).OnSettled(func(err error) {
		if err != nil {
			s.logger.Warn("enter transition failed", "error", transitionError(err))
		}
	})
}
