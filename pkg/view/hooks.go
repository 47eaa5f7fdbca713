package view

// Hooks adapts plain functions to Lifecycle and Creator. Nil hooks are
// skipped.
type Hooks struct {
	OnCreated  func()
	OnBind     func(ctx any)
	OnUnbind   func()
	OnAttached func()
	OnDetached func()
}

// Created implements Creator.
func (h Hooks) Created() {
	if h.OnCreated != nil {
		h.OnCreated()
	}
}

// Bind implements Lifecycle.
func (h Hooks) Bind(ctx any) {
	if h.OnBind != nil {
		h.OnBind(ctx)
	}
}

// Unbind implements Lifecycle.
func (h Hooks) Unbind() {
	if h.OnUnbind != nil {
		h.OnUnbind()
	}
}

// Attached implements Lifecycle.
func (h Hooks) Attached() {
	if h.OnAttached != nil {
		h.OnAttached()
	}
}

// Detached implements Lifecycle.
func (h Hooks) Detached() {
	if h.OnDetached != nil {
		h.OnDetached()
	}
}
