// Package compress provides codec middleware that wraps another codec's
// wire bytes in a streaming compression format. The compressors work in
// fixed-size blocks, so the bounded-memory property of the pipes is
// preserved.
package compress

import (
	"errors"
	"io"

	"github.com/stealthrocket/serdepipe"
)

// trackedSource records whether the underlying stream ran out of bytes.
// The compression readers report a truncated stream as corruption; the
// middleware uses this flag to surface it as io.ErrUnexpectedEOF instead,
// which is how the pipes tell "need more input" from "malformed".
type trackedSource struct {
	src serdepipe.ByteSource
	eof bool
}

func (s *trackedSource) ReadByte() (byte, error) {
	b, err := s.src.ReadByte()
	s.note(err)
	return b, err
}

func (s *trackedSource) Read(p []byte) (int, error) {
	n, err := s.src.Read(p)
	s.note(err)
	return n, err
}

func (s *trackedSource) note(err error) {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		s.eof = true
	}
}

func (s *trackedSource) mapErr(err error) error {
	if s.eof && !errors.Is(err, io.ErrUnexpectedEOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
