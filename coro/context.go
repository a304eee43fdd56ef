package coro

import (
	"runtime"
)

// Context is the view of a coroutine from inside its own execution context.
// It is passed to the entry function and carries the values exchanged with
// the program driving the coroutine.
type Context[R, S any] struct {
	recv R
	send S
	next chan struct{}
	stop bool
	done bool
	err  error
}

// Yield sends v to the program driving the coroutine and suspends execution
// until the next call to Next. It returns the value set by Send before that
// call to Next.
//
// If the coroutine was stopped while suspended, Yield does not return;
// instead the call stack unwinds, running deferred calls, and the execution
// context is released.
func (c *Context[R, S]) Yield(v R) S {
	if c.stop {
		panic("coro: yield on a stopped coroutine")
	}
	var zero S
	c.send = zero
	c.recv = v
	c.next <- struct{}{}
	<-c.next
	if c.stop {
		runtime.Goexit()
	}
	return c.send
}
