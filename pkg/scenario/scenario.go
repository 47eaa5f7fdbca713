package scenario

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/viewslot/internal/errors"
	"github.com/vango-dev/viewslot/pkg/content"
	"github.com/vango-dev/viewslot/pkg/dom"
)

// Operations a step can perform.
const (
	OpAdd       = "add"
	OpInsert    = "insert"
	OpRemove    = "remove"
	OpRemoveAt  = "removeAt"
	OpRemoveAll = "removeAll"
	OpSwap      = "swap"
	OpBind      = "bind"
	OpUnbind    = "unbind"
	OpAttached  = "attached"
	OpDetached  = "detached"
	OpProject   = "project"
)

// Anchor kinds.
const (
	// AnchorContainer appends views into a <ul> host.
	AnchorContainer = "container"

	// AnchorMarker inserts views before a comment marker.
	AnchorMarker = "marker"
)

var viewOps = map[string]bool{OpAdd: true, OpInsert: true, OpRemove: true, OpSwap: true}

var indexOps = map[string]bool{OpInsert: true, OpRemoveAt: true}

var knownOps = map[string]bool{
	OpAdd: true, OpInsert: true, OpRemove: true, OpRemoveAt: true, OpRemoveAll: true,
	OpSwap: true, OpBind: true, OpUnbind: true, OpAttached: true, OpDetached: true,
	OpProject: true,
}

// Scenario is a scripted session against one slot.
type Scenario struct {
	// Doc is an opaque documentation string.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Anchor is "container" (default) or "marker".
	Anchor string `json:"anchor,omitempty" yaml:"anchor,omitempty"`

	// Views are created once, before the first step.
	Views []ViewSpec `json:"views" yaml:"views"`

	// Targets are projection targets, installed by the project step.
	Targets []TargetSpec `json:"targets,omitempty" yaml:"targets,omitempty"`

	// Steps run in order.
	Steps []Step `json:"steps" yaml:"steps"`

	// File is the path the scenario was loaded from.
	File string `json:"-" yaml:"-"`
}

// ViewSpec declares a view.
type ViewSpec struct {
	Name string `json:"name" yaml:"name"`

	// Tag and Text describe the view's element. They default to "li" and
	// the view name.
	Tag  string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	Class string `json:"class,omitempty" yaml:"class,omitempty"`

	// Animated puts a comment marker before the element so enter and leave
	// transitions run on it.
	Animated bool `json:"animated,omitempty" yaml:"animated,omitempty"`

	// Parts replace the single element with several, which is useful for
	// projection. A view with parts cannot be animated.
	Parts []PartSpec `json:"parts,omitempty" yaml:"parts,omitempty"`
}

// PartSpec is one element of a multi-part view.
type PartSpec struct {
	Tag   string `json:"tag" yaml:"tag"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
	Class string `json:"class,omitempty" yaml:"class,omitempty"`
}

// TargetSpec declares a projection target rendered as
// <section data-target="name"> with a content selector inside.
type TargetSpec struct {
	Name   string `json:"name" yaml:"name"`
	Select string `json:"select,omitempty" yaml:"select,omitempty"`
}

// Step is one operation.
type Step struct {
	Op      string `json:"op" yaml:"op"`
	View    string `json:"view,omitempty" yaml:"view,omitempty"`
	Index   *int   `json:"index,omitempty" yaml:"index,omitempty"`
	Context string `json:"context,omitempty" yaml:"context,omitempty"`

	// Pause is slept after the step completes.
	Pause time.Duration `json:"pause,omitempty" yaml:"pause,omitempty"`

	// Line is the source line of the step, when known.
	Line int `json:"-" yaml:"-"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E130").
			WithDetail("Cannot read " + filepath.Base(path)).
			Wrap(err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a JSON or YAML scenario. file is used in error
// locations only.
func Parse(data []byte, file string) (*Scenario, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.New("E130").
			WithLocation(file, 0, 0).
			WithDetail(err.Error())
	}

	var raw struct {
		Doc     string       `yaml:"doc"`
		Anchor  string       `yaml:"anchor"`
		Views   []ViewSpec   `yaml:"views"`
		Targets []TargetSpec `yaml:"targets"`
		Steps   []yaml.Node  `yaml:"steps"`
	}
	if err := root.Decode(&raw); err != nil {
		return nil, errors.New("E130").
			WithLocation(file, 0, 0).
			WithDetail(err.Error())
	}

	sc := &Scenario{
		Doc:     raw.Doc,
		Anchor:  raw.Anchor,
		Views:   raw.Views,
		Targets: raw.Targets,
		File:    file,
	}
	for i := range raw.Steps {
		node := &raw.Steps[i]
		var step Step
		if err := node.Decode(&step); err != nil {
			return nil, errors.New("E130").
				WithLocation(file, node.Line, node.Column).
				WithDetail(err.Error())
		}
		step.Line = node.Line
		sc.Steps = append(sc.Steps, step)
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks declarations and that every step names a known operation
// and known views.
func (sc *Scenario) Validate() error {
	switch sc.Anchor {
	case "":
		sc.Anchor = AnchorContainer
	case AnchorContainer, AnchorMarker:
	default:
		return errors.New("E130").
			WithLocation(sc.File, 0, 0).
			WithDetailf("anchor %q must be %q or %q", sc.Anchor, AnchorContainer, AnchorMarker)
	}

	views := make(map[string]bool, len(sc.Views))
	for _, v := range sc.Views {
		if v.Name == "" {
			return errors.New("E130").WithLocation(sc.File, 0, 0).WithDetail("view without a name")
		}
		if views[v.Name] {
			return errors.New("E130").WithLocation(sc.File, 0, 0).WithDetailf("view %q declared twice", v.Name)
		}
		if v.Animated && len(v.Parts) > 0 {
			return errors.New("E130").WithLocation(sc.File, 0, 0).WithDetailf("view %q: a view with parts cannot be animated", v.Name)
		}
		views[v.Name] = true
	}

	for _, t := range sc.Targets {
		if t.Name == "" {
			return errors.New("E130").WithLocation(sc.File, 0, 0).WithDetail("target without a name")
		}
		if _, err := content.NewSelector(dom.Comment(t.Name), t.Select); err != nil {
			return errors.New("E130").
				WithLocation(sc.File, 0, 0).
				WithDetailf("target %q", t.Name).
				Wrap(err)
		}
	}

	for i, step := range sc.Steps {
		if !knownOps[step.Op] {
			return errors.New("E131").
				WithLocation(sc.File, step.Line, 0).
				WithDetailf("step %d: %q", i+1, step.Op).
				WithSuggestion("Use one of add, insert, remove, removeAt, removeAll, swap, bind, unbind, attached, detached, project")
		}
		if viewOps[step.Op] && !views[step.View] {
			return errors.New("E132").
				WithLocation(sc.File, step.Line, 0).
				WithDetailf("step %d: %s of %q", i+1, step.Op, step.View)
		}
		if indexOps[step.Op] && step.Index == nil {
			return errors.New("E130").
				WithLocation(sc.File, step.Line, 0).
				WithDetailf("step %d: %s needs an index", i+1, step.Op)
		}
	}
	return nil
}
