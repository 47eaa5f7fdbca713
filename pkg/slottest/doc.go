// Package slottest provides helpers for testing code built on view slots.
//
// RecordingView is a view that logs every lifecycle and placement call into
// a shared Journal, so tests can assert the exact order of notifications
// across several views. ManualAnimator holds every transition pending until
// the test finishes it, which makes the asynchronous removal paths
// deterministic.
//
//	journal := &slottest.Journal{}
//	anim := slottest.NewManualAnimator()
//	slot, _ := viewslot.New(list, true, nil, viewslot.WithAnimator(anim))
//
//	a := slottest.NewAnimatedView("a", journal)
//	slot.Add(a)
//	r, _ := slot.Remove(a)
//	anim.FinishAll()
//	journal.Expect(t, "a.append", "a.remove")
package slottest
