// Package view provides a concrete view: a run of top-level nodes that moves
// as a unit between its own fragment and the document, plus the lifecycle
// participants (behaviors, nested slots) bound and attached along with it.
//
//	v := view.New(dom.Fragment(
//	    dom.Comment("item"),
//	    dom.Element("li", dom.Text("Buy milk")),
//	))
//	slot.Add(v)
//
// A view whose nodes are a comment marker immediately followed by an element
// reports that element as its animatable root.
package view
