package animation

import (
	"context"
	stderrors "errors"
	"sync"
)

// Completion is a single-resolution signal for an asynchronous operation.
// The zero value is not usable; create one with NewCompletion, Completed or
// Failed.
type Completion struct {
	mu        sync.Mutex
	done      chan struct{}
	settled   bool
	err       error
	callbacks []func(error)
}

// Resolve settles a Completion. Only the first call has any effect.
type Resolve func(err error)

// NewCompletion returns a pending Completion and the function that settles it.
func NewCompletion() (*Completion, Resolve) {
	c := &Completion{done: make(chan struct{})}
	return c, c.resolve
}

// Completed returns an already-successful Completion.
func Completed() *Completion {
	c, resolve := NewCompletion()
	resolve(nil)
	return c
}

// Failed returns an already-failed Completion.
func Failed(err error) *Completion {
	c, resolve := NewCompletion()
	resolve(err)
	return c
}

func (c *Completion) resolve(err error) {
	c.mu.Lock()
	if c.settled {
		c.mu.Unlock()
		return
	}
	c.settled = true
	c.err = err
	callbacks := c.callbacks
	c.callbacks = nil
	close(c.done)
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(err)
	}
}

// Done returns a channel that is closed once the Completion settles.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Settled reports whether the Completion has resolved.
func (c *Completion) Settled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settled
}

// Err returns the settlement error. It is nil while pending.
func (c *Completion) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Wait blocks until the Completion settles or ctx is done. Giving up on the
// wait does not cancel the underlying operation.
func (c *Completion) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnSettled registers fn to run once the Completion settles. If it has
// already settled, fn runs immediately on the calling goroutine; otherwise it
// runs on the goroutine that resolves it.
func (c *Completion) OnSettled(fn func(error)) {
	c.mu.Lock()
	if !c.settled {
		c.callbacks = append(c.callbacks, fn)
		c.mu.Unlock()
		return
	}
	err := c.err
	c.mu.Unlock()
	fn(err)
}

// Then returns a Completion that settles with the result of fn, which runs
// after c settles and receives c's error.
func (c *Completion) Then(fn func(error) error) *Completion {
	next, resolve := NewCompletion()
	c.OnSettled(func(err error) {
		resolve(fn(err))
	})
	return next
}

// All returns a Completion that settles once every input has settled. Its
// error joins the errors of the inputs that failed. All with no inputs is
// already complete.
func All(cs ...*Completion) *Completion {
	if len(cs) == 0 {
		return Completed()
	}

	joined, resolve := NewCompletion()
	var (
		mu      sync.Mutex
		pending = len(cs)
		errs    = make([]error, len(cs))
	)
	for i, c := range cs {
		i := i
		c.OnSettled(func(err error) {
			mu.Lock()
			errs[i] = err
			pending--
			last := pending == 0
			mu.Unlock()

			if last {
				resolve(stderrors.Join(errs...))
			}
		})
	}
	return joined
}
