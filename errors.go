package serdepipe

import "errors"

var (
	// ErrStillInFlight is returned by Serializer.Push when the previous
	// value has not fully drained.
	ErrStillInFlight = errors.New("serdepipe: previous value still in flight")

	// ErrNotInFlight is returned by Deserializer.Push when the previous
	// decode completed and its value was collected, but the pipe was not
	// reset before the next message.
	ErrNotInFlight = errors.New("serdepipe: no operation in flight")

	// ErrTrailingData is returned when bytes are pushed into a Deserializer
	// after its decode completed but before the value was collected.
	ErrTrailingData = errors.New("serdepipe: byte pushed after decode completed")

	// ErrClosed is returned by operations on a closed pipe.
	ErrClosed = errors.New("serdepipe: pipe closed")

	// ErrEmptyEncoding is reported when a codec finishes encoding a value
	// without producing a single byte, which would leave the message
	// impossible to delimit on the wire.
	ErrEmptyEncoding = errors.New("serdepipe: codec produced no bytes")
)
