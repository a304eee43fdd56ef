package serdepipe

import "io"

// ByteSink is the destination a Codec encodes into. Both interfaces write to
// the same stream; WriteByte exists so codecs emitting single bytes do not
// need to allocate slices.
type ByteSink interface {
	io.Writer
	io.ByteWriter
}

// ByteSource is the stream a Codec decodes from.
type ByteSource interface {
	io.Reader
	io.ByteReader
}

// Codec defines a binary wire format for values of type T.
//
// Implementations must be deterministic and self-framing: Decode must read
// exactly the bytes that Encode wrote for the same value, never more, and
// must discover the end of a value from the bytes themselves. Encode must
// write at least one byte per value, and Decode must propagate read errors
// from the source unmodified (in particular io.ErrUnexpectedEOF, which the
// pipes use to tell a truncated message from a malformed one).
type Codec[T any] interface {
	Encode(w ByteSink, v T) error
	Decode(r ByteSource) (T, error)
}

// NewSink adapts an io.Writer into a ByteSink.
func NewSink(w io.Writer) ByteSink {
	if s, ok := w.(ByteSink); ok {
		return s
	}
	return writerSink{w}
}

type writerSink struct{ io.Writer }

func (s writerSink) WriteByte(b byte) error {
	_, err := s.Write([]byte{b})
	return err
}

// NewSource adapts an io.Reader into a ByteSource.
func NewSource(r io.Reader) ByteSource {
	if s, ok := r.(ByteSource); ok {
		return s
	}
	return readerSource{r}
}

type readerSource struct{ io.Reader }

func (s readerSource) ReadByte() (byte, error) {
	var b [1]byte
	for {
		n, err := s.Read(b[:])
		if n > 0 {
			return b[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}
