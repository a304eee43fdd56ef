package serdepipe

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stealthrocket/serdepipe/coro"
)

// deserializerBackend reconstructs one value at a time from wire bytes.
type deserializerBackend[T any] interface {
	// start begins a new decode. Legal only when no decode is in flight.
	start() error
	// feed delivers one byte to the decode in flight. done reports that the
	// byte completed the value.
	feed(b byte) (done bool, err error)
	// ready reports whether a completed value awaits collection. The
	// buffered backend discovers completion here, so ready may fail.
	ready() (bool, error)
	// take returns the completed value. Legal only after ready reported
	// true.
	take() T
	// stop discards an in-flight decode, running its cleanup path.
	stop()
}

// Deserializer is a pipe that accepts wire bytes one at a time and hands
// back the decoded value once it is complete.
//
// The first Push of a message starts the decode. While the decode is in
// flight Pull reports false; once the message's last byte was pushed, Pull
// returns the value exactly once. The pipe must then be Reset before the
// next message. A codec error poisons the pipe permanently.
type Deserializer[T any] struct {
	backend   deserializerBackend[T]
	state     State
	delivered bool
	err       error
	closed    bool
	log       *zap.Logger
}

// NewDeserializer returns a Deserializer consuming the wire format of codec.
func NewDeserializer[T any](codec Codec[T], opts ...Option) *Deserializer[T] {
	cfg := newConfig(opts)
	d := &Deserializer[T]{
		state: Empty,
		log:   cfg.log,
	}
	switch cfg.backend {
	case Buffered:
		d.backend = &bufferedDeserializer[T]{codec: codec}
	default:
		d.backend = &boundedDeserializer[T]{codec: codec}
	}
	return d
}

// Push feeds one byte into the decode, lazily starting it on the first byte
// of a message. It returns ErrTrailingData if the decode already completed
// and its value was not yet collected, ErrNotInFlight if the value was
// collected but the pipe was not Reset, ErrClosed on a closed pipe, and the
// decode error itself if the byte made the decode fail (poisoning the
// pipe).
func (d *Deserializer[T]) Push(b byte) error {
	if d.err != nil {
		return d.err
	}
	if d.closed {
		return ErrClosed
	}
	switch d.state {
	case Drained:
		if d.delivered {
			return ErrNotInFlight
		}
		return ErrTrailingData
	case Empty:
		if err := d.backend.start(); err != nil {
			return d.fail(err)
		}
		d.state = InFlight
		d.log.Debug("deserializer: decode in flight")
	}
	done, err := d.backend.feed(b)
	if err != nil {
		return d.fail(err)
	}
	if done {
		d.state = Drained
		d.log.Debug("deserializer: decode complete")
	}
	return nil
}

// Pull returns the decoded value once the decode completed. It reports
// false while more input is required, when no decode is in flight, and on a
// failed pipe (check Err). The value is returned exactly once; afterwards
// the pipe must be Reset before the next message.
func (d *Deserializer[T]) Pull() (T, bool) {
	var zero T
	if d.err != nil || d.closed || d.delivered {
		return zero, false
	}
	if d.state == InFlight {
		// The buffered backend discovers completion lazily, here.
		ok, err := d.backend.ready()
		if err != nil {
			d.fail(err)
			return zero, false
		}
		if !ok {
			return zero, false
		}
		d.state = Drained
	}
	if d.state != Drained {
		return zero, false
	}
	d.delivered = true
	d.log.Debug("deserializer: value collected")
	return d.backend.take(), true
}

// Reset readies the pipe for the next message. A decode still in flight is
// discarded, its suspended routine unwinding first. Reset fails on a closed
// or poisoned pipe.
func (d *Deserializer[T]) Reset() error {
	if d.err != nil {
		return d.err
	}
	if d.closed {
		return ErrClosed
	}
	d.backend.stop()
	d.state = Empty
	d.delivered = false
	d.log.Debug("deserializer: reset")
	return nil
}

// Err returns the terminal error of a poisoned pipe, or nil.
func (d *Deserializer[T]) Err() error { return d.err }

// State reports where the pipe stands in the lifecycle of one message.
func (d *Deserializer[T]) State() State { return d.state }

// Close discards the pipe. If a decode is in flight, its suspended routine
// unwinds, running deferred calls, before the execution context is
// released. Closing an idle or already closed pipe is a no-op.
func (d *Deserializer[T]) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.backend.stop()
	d.log.Debug("deserializer: closed")
	return nil
}

func (d *Deserializer[T]) fail(err error) error {
	d.err = err
	d.log.Debug("deserializer: failed", zap.Error(err))
	return err
}

// boundedDeserializer runs the codec on a suspendable execution context.
// The routine suspends each time it needs a byte; feed resumes it with
// exactly that byte, so input can never accumulate while a decode is in
// flight.
type boundedDeserializer[T any] struct {
	codec Codec[T]
	co    coro.Coroutine[struct{}, input]
	live  bool
	val   T
	has   bool
}

func (d *boundedDeserializer[T]) start() error {
	d.co = coro.New(func(ctx *coro.Context[struct{}, input]) error {
		src := &yieldSource{ctx: ctx}
		v, err := d.codec.Decode(src)
		if err != nil {
			return fmt.Errorf("serdepipe: decode: %w", err)
		}
		d.val = v
		return nil
	})
	d.live = true
	// Run to the first read request.
	if !d.co.Next() {
		d.live = false
		if err := d.co.Err(); err != nil {
			return err
		}
		// The codec decoded a value from zero bytes, breaking its framing
		// contract; surface the value anyway.
		d.has = true
	}
	return nil
}

func (d *boundedDeserializer[T]) feed(b byte) (bool, error) {
	if !d.live {
		return d.has, nil
	}
	d.co.Send(input{b: b})
	if d.co.Next() {
		return false, nil
	}
	d.live = false
	if err := d.co.Err(); err != nil {
		return false, err
	}
	d.has = true
	return true, nil
}

func (d *boundedDeserializer[T]) ready() (bool, error) {
	return d.has, nil
}

func (d *boundedDeserializer[T]) take() T {
	v := d.val
	var zero T
	d.val = zero
	d.has = false
	return v
}

func (d *boundedDeserializer[T]) stop() {
	if d.live {
		d.co.Stop()
		d.co.Next()
		d.live = false
	}
	var zero T
	d.val = zero
	d.has = false
}
