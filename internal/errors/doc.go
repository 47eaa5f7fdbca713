// Package errors provides coded, categorized errors for viewslot.
//
// Every error the module reports carries a stable code (e.g. "E103") that
// maps to a registered template with a short message, a longer detail and a
// documentation link. Callers attach context with the fluent With* methods:
//
//	err := errors.New("E103").
//	    WithDetail("view is not a child of the slot").
//	    WithSuggestion("Remove views through the slot that added them")
//
// Errors created from the same code compare equal under the standard
// library's errors.Is, so packages can export sentinels:
//
//	var ErrViewNotFound = errors.New("E103")
//
//	if stderrors.Is(err, viewslot.ErrViewNotFound) { ... }
//
// # Error Categories
//
//   - slot: misuse of a view slot (bad index, unknown view, nil anchor)
//   - animation: rejected enter/leave transitions
//   - projection: content selector problems
//   - config: invalid viewslot.json
//   - scenario: malformed scenario files
//   - cli: command line errors
package errors
