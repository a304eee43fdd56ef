// Package serdepipe turns a whole-value binary encode or decode call into an
// incremental, byte-at-a-time push/pull protocol.
//
// A [Serializer] accepts one value at a time and hands its wire bytes back
// one per call; a [Deserializer] accepts wire bytes one at a time and hands
// back the decoded value once it is complete. The wire format itself is
// supplied by an external [Codec].
//
// With the default Bounded backend, the codec's ordinary "encode the whole
// value" routine runs on a dedicated execution context (package coro) that
// suspends at every byte boundary, so serializing or deserializing an
// arbitrarily large value uses peak auxiliary memory independent of the
// value's size. The Buffered backend provides the same contract by eagerly
// materializing the full byte sequence in memory, and serves as the
// correctness oracle: for a given value and codec, both backends produce
// identical bytes.
//
// A pipe is owned by a single caller and driven sequentially; it is not safe
// for concurrent use.
package serdepipe

// State describes where a pipe stands in the lifecycle of one operation.
type State int

const (
	// Empty means no operation is in flight; a push may start one.
	Empty State = iota

	// InFlight means an operation was started and has not fully drained.
	InFlight

	// Drained means a decode completed and its value awaits collection,
	// after which the pipe must be reset before the next message.
	Drained
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case InFlight:
		return "in-flight"
	case Drained:
		return "drained"
	default:
		return "invalid"
	}
}
