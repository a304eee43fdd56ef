package coro

import (
	"errors"
	"testing"
)

func TestCoroutineYield(t *testing.T) {
	c := New(func(ctx *Context[int, struct{}]) error {
		for i := 0; i < 10; i++ {
			ctx.Yield(i)
		}
		return nil
	})

	var got []int
	for c.Next() {
		got = append(got, c.Recv())
	}

	if len(got) != 10 {
		t.Fatalf("wrong number of yields: got %d, expected 10", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Errorf("wrong value yielded at index %d: %d", i, v)
		}
	}
	if !c.Done() {
		t.Error("coroutine did not complete")
	}
	if err := c.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCoroutineSend(t *testing.T) {
	var sum int
	c := New(func(ctx *Context[struct{}, int]) error {
		for i := 0; i < 5; i++ {
			sum += ctx.Yield(struct{}{})
		}
		return nil
	})

	n := 0
	for c.Next() {
		n++
		c.Send(n)
	}

	if sum != 1+2+3+4+5 {
		t.Errorf("wrong sum of sent values: %d", sum)
	}
}

func TestCoroutineStop(t *testing.T) {
	unwound := false
	c := New(func(ctx *Context[int, struct{}]) error {
		defer func() { unwound = true }()
		for i := 0; ; i++ {
			ctx.Yield(i)
		}
	})

	if !c.Next() {
		t.Fatal("coroutine did not reach its first yield point")
	}
	c.Stop()
	if c.Next() {
		t.Error("stopped coroutine entered another yield point")
	}
	if !unwound {
		t.Error("deferred call did not run when the coroutine was stopped")
	}
	if !c.Done() {
		t.Error("stopped coroutine not done")
	}
	if err := c.Err(); err != nil {
		t.Errorf("unexpected error after stop: %v", err)
	}
}

func TestCoroutineStopBeforeStart(t *testing.T) {
	started := false
	c := New(func(ctx *Context[int, struct{}]) error {
		started = true
		return nil
	})

	c.Stop()
	if c.Next() {
		t.Error("stopped coroutine entered a yield point")
	}
	if started {
		t.Error("entry function ran after Stop")
	}
}

func TestCoroutineError(t *testing.T) {
	fail := errors.New("entry failed")
	c := New(func(ctx *Context[int, struct{}]) error {
		ctx.Yield(1)
		return fail
	})

	if !c.Next() {
		t.Fatal("coroutine did not yield")
	}
	if c.Next() {
		t.Fatal("coroutine yielded after its error")
	}
	if err := c.Err(); !errors.Is(err, fail) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestCoroutinePanic(t *testing.T) {
	c := New(func(ctx *Context[int, struct{}]) error {
		ctx.Yield(1)
		panic("routine fault")
	})

	if !c.Next() {
		t.Fatal("coroutine did not yield")
	}
	if c.Next() {
		t.Fatal("coroutine yielded after panicking")
	}
	err := c.Err()
	if err == nil {
		t.Fatal("panic was not converted to an error")
	}
}

func TestCoroutineNextAfterDone(t *testing.T) {
	c := New(func(ctx *Context[int, struct{}]) error {
		return nil
	})

	if c.Next() {
		t.Error("empty coroutine yielded")
	}
	for i := 0; i < 3; i++ {
		if c.Next() {
			t.Error("completed coroutine resumed")
		}
	}
}
