package serdepipe

import (
	"io"

	"github.com/stealthrocket/serdepipe/coro"
)

// input is what the program sends into a suspended decode routine: either
// one byte of the message, or an end-of-input signal.
type input struct {
	b   byte
	eof bool
}

// yieldSink presents a suspended encode routine with a ByteSink. Every byte
// written suspends the routine until the program asks for the next one.
type yieldSink struct {
	ctx *coro.Context[byte, struct{}]
	n   int
}

func (s *yieldSink) WriteByte(b byte) error {
	s.ctx.Yield(b)
	s.n++
	return nil
}

func (s *yieldSink) Write(p []byte) (int, error) {
	for _, b := range p {
		s.ctx.Yield(b)
	}
	s.n += len(p)
	return len(p), nil
}

// yieldSource presents a suspended decode routine with a ByteSource. Every
// byte read suspends the routine until the program pushes one.
type yieldSource struct {
	ctx *coro.Context[struct{}, input]
}

func (s *yieldSource) ReadByte() (byte, error) {
	in := s.ctx.Yield(struct{}{})
	if in.eof {
		return 0, io.ErrUnexpectedEOF
	}
	return in.b, nil
}

func (s *yieldSource) Read(p []byte) (int, error) {
	for i := range p {
		b, err := s.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = b
	}
	return len(p), nil
}

// byteCursor drains an in-memory byte sequence for the buffered backend.
// Reads past the end report io.ErrUnexpectedEOF, never a clean EOF, so that
// a codec mid-decode observes the same condition as a truncated stream.
type byteCursor struct {
	data []byte
	pos  int
}

func (c *byteCursor) ReadByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, io.ErrUnexpectedEOF
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *byteCursor) Read(p []byte) (int, error) {
	n := copy(p, c.data[c.pos:])
	c.pos += n
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}
