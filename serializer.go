package serdepipe

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stealthrocket/serdepipe/coro"
)

// serializerBackend produces the wire bytes of one value at a time.
type serializerBackend[T any] interface {
	// start begins encoding v. Legal only when no value is in flight.
	start(v T) error
	// next produces the next wire byte. ok reports whether a byte was
	// produced; when ok is false and err is nil the value fully drained.
	next() (b byte, ok bool, err error)
	// stop discards an in-flight encode, running its cleanup path.
	stop()
}

// Serializer is a pipe that accepts one value at a time and hands back its
// wire bytes one per call.
//
// Push a value, then call Pull until it reports false: the value drained and
// the next Push may proceed. A codec error poisons the pipe permanently; it
// is reported by Err and by every subsequent call.
type Serializer[T any] struct {
	backend serializerBackend[T]
	state   State
	err     error
	closed  bool
	log     *zap.Logger
}

// NewSerializer returns a Serializer producing the wire format of codec.
func NewSerializer[T any](codec Codec[T], opts ...Option) *Serializer[T] {
	cfg := newConfig(opts)
	s := &Serializer[T]{
		state: Empty,
		log:   cfg.log,
	}
	switch cfg.backend {
	case Buffered:
		s.backend = &bufferedSerializer[T]{codec: codec}
	default:
		s.backend = &boundedSerializer[T]{codec: codec}
	}
	return s
}

// Push starts serializing v. It returns ErrStillInFlight if the previous
// value has not fully drained, ErrClosed on a closed pipe, and the pipe's
// terminal error if it is poisoned.
func (s *Serializer[T]) Push(v T) error {
	if s.err != nil {
		return s.err
	}
	if s.closed {
		return ErrClosed
	}
	if s.state != Empty {
		return ErrStillInFlight
	}
	if err := s.backend.start(v); err != nil {
		return s.fail(err)
	}
	s.state = InFlight
	s.log.Debug("serializer: value in flight")
	return nil
}

// Pull produces the next wire byte of the value in flight. It reports false
// when there is no byte to produce: the value fully drained (the pipe is
// Empty again), no value was pushed, or the pipe failed. After a false with
// a non-nil Err the pipe is poisoned and must be discarded.
func (s *Serializer[T]) Pull() (byte, bool) {
	if s.err != nil || s.closed || s.state != InFlight {
		return 0, false
	}
	b, ok, err := s.backend.next()
	if err != nil {
		s.fail(err)
		return 0, false
	}
	if !ok {
		s.state = Empty
		s.log.Debug("serializer: value drained")
		return 0, false
	}
	return b, true
}

// Err returns the terminal error of a poisoned pipe, or nil.
func (s *Serializer[T]) Err() error { return s.err }

// State reports where the pipe stands in the lifecycle of one value.
func (s *Serializer[T]) State() State { return s.state }

// Close discards the pipe. If a value is in flight, its suspended encode
// routine unwinds, running deferred calls, before the execution context is
// released. Closing an idle or already closed pipe is a no-op.
func (s *Serializer[T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.backend.stop()
	if s.state == InFlight {
		s.state = Empty
	}
	s.log.Debug("serializer: closed")
	return nil
}

func (s *Serializer[T]) fail(err error) error {
	s.err = err
	s.log.Debug("serializer: failed", zap.Error(err))
	return err
}

// boundedSerializer runs the codec on a suspendable execution context,
// producing one byte per resume.
type boundedSerializer[T any] struct {
	codec Codec[T]
	co    coro.Coroutine[byte, struct{}]
	live  bool
}

func (s *boundedSerializer[T]) start(v T) error {
	s.co = coro.New(func(ctx *coro.Context[byte, struct{}]) error {
		sink := &yieldSink{ctx: ctx}
		if err := s.codec.Encode(sink, v); err != nil {
			return fmt.Errorf("serdepipe: encode: %w", err)
		}
		if sink.n == 0 {
			return ErrEmptyEncoding
		}
		return nil
	})
	s.live = true
	return nil
}

func (s *boundedSerializer[T]) next() (byte, bool, error) {
	if !s.live {
		return 0, false, nil
	}
	if s.co.Next() {
		return s.co.Recv(), true, nil
	}
	s.live = false
	return 0, false, s.co.Err()
}

func (s *boundedSerializer[T]) stop() {
	if s.live {
		s.co.Stop()
		s.co.Next()
		s.live = false
	}
}
