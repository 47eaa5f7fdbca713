package slottest

import (
	"fmt"

	"github.com/vango-dev/viewslot/pkg/dom"
	"github.com/vango-dev/viewslot/pkg/view"
)

// RecordingView wraps a view.View and records each call as "name.event".
// Recorded events: created, bind, unbind, attached, detached, insert,
// append, remove.
type RecordingView struct {
	*view.View
	Name    string
	journal *Journal
}

// NewView creates a recording view whose only node is <li>name</li>. It is
// not animatable.
func NewView(name string, journal *Journal) *RecordingView {
	return Wrap(name, journal, view.FromNodes(dom.Element("li", dom.Data("view", name), dom.Text(name))))
}

// NewAnimatedView creates a recording view shaped <!--name--><li>name</li>,
// so its <li> is the animatable root.
func NewAnimatedView(name string, journal *Journal) *RecordingView {
	return Wrap(name, journal, view.Marked(name, dom.Element("li", dom.Data("view", name), dom.Text(name))))
}

// Wrap records calls made on v.
func Wrap(name string, journal *Journal, v *view.View) *RecordingView {
	if journal == nil {
		journal = &Journal{}
	}
	return &RecordingView{View: v, Name: name, journal: journal}
}

func (r *RecordingView) record(event string) {
	r.journal.Record(r.Name + "." + event)
}

// Created implements viewslot.View.
func (r *RecordingView) Created() {
	r.record("created")
	r.View.Created()
}

// Bind implements viewslot.View and records "bind:<ctx>".
func (r *RecordingView) Bind(ctx any) {
	r.record(fmt.Sprintf("bind:%v", ctx))
	r.View.Bind(ctx)
}

// Unbind implements viewslot.View.
func (r *RecordingView) Unbind() {
	r.record("unbind")
	r.View.Unbind()
}

// Attached implements viewslot.View.
func (r *RecordingView) Attached() {
	r.record("attached")
	r.View.Attached()
}

// Detached implements viewslot.View.
func (r *RecordingView) Detached() {
	r.record("detached")
	r.View.Detached()
}

// InsertNodesBefore implements viewslot.View.
func (r *RecordingView) InsertNodesBefore(ref *dom.Node) {
	r.record("insert")
	r.View.InsertNodesBefore(ref)
}

// AppendNodesTo implements viewslot.View.
func (r *RecordingView) AppendNodesTo(parent *dom.Node) {
	r.record("append")
	r.View.AppendNodesTo(parent)
}

// RemoveNodes implements viewslot.View.
func (r *RecordingView) RemoveNodes() {
	r.record("remove")
	r.View.RemoveNodes()
}

// InDocument reports whether the view's nodes are attached under root.
func (r *RecordingView) InDocument(root *dom.Node) bool {
	first := r.FirstChild()
	return first != nil && first.Parent() != r.Fragment() && root.Contains(first)
}
