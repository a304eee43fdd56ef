// Package coro provides a minimal stackful coroutine primitive: a routine
// running on its own execution context which can be suspended at explicit
// yield points and resumed on demand from the program driving it.
//
// The execution context is a goroutine parked before the entry function.
// Suspension and resumption are a two-way handoff over an unbuffered
// channel, so at any moment exactly one of the two contexts is running, and
// a call to Next performs only the work needed to reach the next yield point
// or the routine's termination.
//
// Faults never cross the execution-context boundary: an error returned by
// the entry function, or a panic recovered inside it, is reported by Err
// after Next returns false.
package coro

import (
	"fmt"
)

// Coroutine instances expose APIs allowing the program to drive the
// execution of a coroutine.
//
// The type parameter R represents the type of values the program receives
// from the coroutine (what it yields), and the type parameter S is what the
// program can send back to a yield point.
type Coroutine[R, S any] struct{ ctx *Context[R, S] }

// New creates a coroutine which executes f on its own execution context.
// The routine is parked before its first instruction; it does not run until
// Next is called.
func New[R, S any](f func(*Context[R, S]) error) Coroutine[R, S] {
	c := &Context[R, S]{
		next: make(chan struct{}),
	}

	go func() {
		defer func() {
			if v := recover(); v != nil {
				c.err = fmt.Errorf("coro: %v", v)
			}
			c.done = true
			close(c.next)
		}()

		<-c.next

		if !c.stop {
			c.err = f(c)
		}
	}()

	return Coroutine[R, S]{ctx: c}
}

// Recv returns the last value that the coroutine has yielded. The method
// must be called only after a call to Next has returned true, or the return
// value is undefined. Calling the method multiple times after a call to Next
// returns the same value each time.
func (c Coroutine[R, S]) Recv() R { return c.ctx.recv }

// Send sets the value that will be seen by the coroutine after it resumes
// from a yield point. Calling the method multiple times before a call to
// Next does not result in sending multiple values, only the last value sent
// will be seen by the coroutine.
func (c Coroutine[R, S]) Send(v S) { c.ctx.send = v }

// Stop interrupts the coroutine. On the next call to Next, the coroutine
// will not return from its yield point; instead, it unwinds its call stack,
// calling each deferred function in the inverse order that they were
// declared, before its execution context is released.
//
// Stop is idempotent, calling it multiple times or after completion of the
// coroutine has no effect.
func (c Coroutine[R, S]) Stop() { c.ctx.stop = true }

// Done returns true if the coroutine completed, either because it was
// stopped or because its function returned.
func (c Coroutine[R, S]) Done() bool { return c.ctx.done }

// Err returns the error the entry function returned, or an error describing
// a panic that occurred inside the routine. It must be called only after
// Next has returned false.
func (c Coroutine[R, S]) Err() error { return c.ctx.err }

// Next resumes the coroutine until its next yield point, or until
// completion. The method returns true if the coroutine entered a yield
// point, after which the program should call Recv to obtain the value that
// the coroutine yielded, and Send to set the value that will be returned
// from the yield point.
func (c Coroutine[R, S]) Next() bool {
	if c.ctx.done {
		return false
	}
	c.ctx.next <- struct{}{}
	_, ok := <-c.ctx.next
	return ok
}
