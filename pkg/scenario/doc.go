// Package scenario loads scripted view slot sessions and runs them against a
// small host document.
//
// A scenario declares named views, optional projection targets and a list of
// steps. Files may be JSON or YAML; both are decoded through yaml.v3 so every
// step keeps its source line for error reporting.
//
//	doc: swap a list with a leave transition
//	views:
//	  - {name: a, animated: true}
//	  - {name: b}
//	steps:
//	  - {op: attached}
//	  - {op: add, view: a}
//	  - {op: swap, view: b}
//
// Runner executes the steps in order. Removal steps wait for their leave
// transitions, so a timed animator paces the run. Observers receive a
// Snapshot of the document after every step.
package scenario
