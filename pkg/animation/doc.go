// Package animation provides enter/leave transitions for views and the
// Completion signal that reports when a transition has finished.
//
// # Completion
//
// A Completion resolves exactly once, either successfully or with an error.
// Callers can block on it, select on its Done channel, or register a
// continuation that runs when it settles:
//
//	c := animator.Leave(el)
//	c.OnSettled(func(err error) { ... })
//
// All joins several completions into one that settles after every input has
// settled.
//
// # Animators
//
// None resolves every transition immediately. CSS toggles enter/leave classes
// on the element for a configured duration, the way stylesheet-driven
// transitions are run in the browser. Instrument wraps any Animator with
// Prometheus metrics and OpenTelemetry spans.
package animation
