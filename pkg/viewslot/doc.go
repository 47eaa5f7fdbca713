// Package viewslot manages an ordered collection of views anchored at a fixed
// node of a host document.
//
// A ViewSlot owns the views placed at its anchor and keeps their order in
// step with document order. It forwards bind/unbind and attached/detached
// notifications to its views, runs enter and leave transitions through an
// injected animation.Animator, and delays the structural removal of an
// animated view until its leave transition has completed.
//
// # Modes
//
// A slot starts in direct mode: views are placed at the anchor, either
// appended into it (anchor is a container) or inserted before it (anchor is a
// marker). InstallContentSelectors switches the slot, once and for good, to
// projection mode, where content selectors file each view's nodes into their
// own groups and nothing is placed at the anchor.
//
// # Removal
//
// Remove, RemoveAt, RemoveAll and Swap report completion through
// animation.Completion. Views without an animatable root are removed before
// the call returns and the completion is already settled:
//
//	r, err := slot.RemoveAt(2)
//	if err != nil {
//	    return err
//	}
//	if err := r.Wait(ctx); err != nil {
//	    log.Printf("leave transition failed: %v", err)
//	}
//	reuse(r.View())
//
// # Concurrency
//
// Slot state is guarded by a mutex so animators may settle transitions on
// their own goroutines. Continuations that finish a removal run through the
// dispatcher set with WithDispatcher, inline by default. View lifecycle
// methods are called without the slot lock held.
package viewslot
