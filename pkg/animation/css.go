package animation

import (
	"log/slog"
	"time"

	"github.com/vango-dev/viewslot/pkg/dom"
)

// Default class names applied during transitions.
const (
	DefaultEnterClass       = "au-enter"
	DefaultEnterActiveClass = "au-enter-active"
	DefaultLeaveClass       = "au-leave"
	DefaultLeaveActiveClass = "au-leave-active"
)

// CSSConfig configures the CSS class animator.
type CSSConfig struct {
	// EnterClass and EnterActiveClass are added while an element enters.
	EnterClass       string
	EnterActiveClass string

	// LeaveClass and LeaveActiveClass are added while an element leaves.
	LeaveClass       string
	LeaveActiveClass string

	// EnterDuration and LeaveDuration are how long the classes stay on.
	// Zero completes the transition synchronously.
	EnterDuration time.Duration
	LeaveDuration time.Duration

	// AfterFunc schedules f after d. Defaults to time.AfterFunc.
	// Tests and hosts with their own event loop can replace it.
	AfterFunc func(d time.Duration, f func())

	// Logger receives debug output. Default: slog.Default().
	Logger *slog.Logger
}

// CSSOption configures the CSS class animator.
type CSSOption func(*CSSConfig)

// WithEnterClasses sets the classes applied during enter transitions.
func WithEnterClasses(class, active string) CSSOption {
	return func(c *CSSConfig) {
		c.EnterClass = class
		c.EnterActiveClass = active
	}
}

// WithLeaveClasses sets the classes applied during leave transitions.
func WithLeaveClasses(class, active string) CSSOption {
	return func(c *CSSConfig) {
		c.LeaveClass = class
		c.LeaveActiveClass = active
	}
}

// WithDurations sets the enter and leave durations.
func WithDurations(enter, leave time.Duration) CSSOption {
	return func(c *CSSConfig) {
		c.EnterDuration = enter
		c.LeaveDuration = leave
	}
}

// WithAfterFunc replaces the timer used to end transitions.
func WithAfterFunc(fn func(d time.Duration, f func())) CSSOption {
	return func(c *CSSConfig) {
		c.AfterFunc = fn
	}
}

// WithCSSLogger sets the logger.
func WithCSSLogger(logger *slog.Logger) CSSOption {
	return func(c *CSSConfig) {
		c.Logger = logger
	}
}

func defaultCSSConfig() CSSConfig {
	return CSSConfig{
		EnterClass:       DefaultEnterClass,
		EnterActiveClass: DefaultEnterActiveClass,
		LeaveClass:       DefaultLeaveClass,
		LeaveActiveClass: DefaultLeaveActiveClass,
		AfterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// CSS animates elements by toggling transition classes for a fixed duration.
type CSS struct {
	config CSSConfig
	logger *slog.Logger
}

// NewCSS creates a CSS class animator.
func NewCSS(opts ...CSSOption) *CSS {
	config := defaultCSSConfig()
	for _, opt := range opts {
		opt(&config)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CSS{config: config, logger: logger.With("component", "animator")}
}

// Enter implements Animator.
func (a *CSS) Enter(el *dom.Node) *Completion {
	return a.run("enter", el, a.config.EnterDuration, a.config.EnterClass, a.config.EnterActiveClass)
}

// Leave implements Animator.
func (a *CSS) Leave(el *dom.Node) *Completion {
	return a.run("leave", el, a.config.LeaveDuration, a.config.LeaveClass, a.config.LeaveActiveClass)
}

func (a *CSS) run(kind string, el *dom.Node, d time.Duration, classes ...string) *Completion {
	if el == nil || el.Type != dom.ElementNode {
		return Completed()
	}
	if d <= 0 {
		return Completed()
	}

	for _, class := range classes {
		el.AddClass(class)
	}
	a.logger.Debug("transition started", "kind", kind, "tag", el.Tag, "duration", d)

	c, resolve := NewCompletion()
	a.config.AfterFunc(d, func() {
		for _, class := range classes {
			el.RemoveClass(class)
		}
		a.logger.Debug("transition finished", "kind", kind, "tag", el.Tag)
		resolve(nil)
	})
	return c
}
