package serdepipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// bufferedSerializer eagerly encodes the full value into memory, then
// drains the buffer through a cursor. It is the correctness oracle for the
// bounded backend: both emit the codec's bytes exactly.
type bufferedSerializer[T any] struct {
	codec Codec[T]
	data  []byte
	pos   int
}

func (s *bufferedSerializer[T]) start(v T) (err error) {
	// The codec runs on the caller's stack here; recover its faults so both
	// backends report them as errors.
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("serdepipe: encode: %v", v)
		}
	}()

	var buf bytes.Buffer
	if err := s.codec.Encode(&buf, v); err != nil {
		return fmt.Errorf("serdepipe: encode: %w", err)
	}
	if buf.Len() == 0 {
		return ErrEmptyEncoding
	}
	s.data = buf.Bytes()
	s.pos = 0
	return nil
}

func (s *bufferedSerializer[T]) next() (byte, bool, error) {
	if s.pos >= len(s.data) {
		s.data = nil
		return 0, false, nil
	}
	b := s.data[s.pos]
	s.pos++
	return b, true, nil
}

func (s *bufferedSerializer[T]) stop() {
	s.data = nil
	s.pos = 0
}

// bufferedDeserializer accumulates pushed bytes and attempts a full decode
// when the value is asked for. A decode failing with io.ErrUnexpectedEOF
// only means the message is still incomplete; any other failure is a real
// decode error. A decode that succeeds without consuming the whole
// accumulated buffer means bytes of a following message were pushed into
// this one, which the bounded backend rejects at push time; here it
// surfaces as ErrTrailingData when the value is asked for.
type bufferedDeserializer[T any] struct {
	codec Codec[T]
	buf   []byte
	val   T
	has   bool
}

func (d *bufferedDeserializer[T]) start() error {
	d.buf = d.buf[:0]
	return nil
}

func (d *bufferedDeserializer[T]) feed(b byte) (bool, error) {
	d.buf = append(d.buf, b)
	return false, nil
}

func (d *bufferedDeserializer[T]) ready() (done bool, err error) {
	if d.has {
		return true, nil
	}
	if len(d.buf) == 0 {
		return false, nil
	}
	defer func() {
		if v := recover(); v != nil {
			done, err = false, fmt.Errorf("serdepipe: decode: %v", v)
		}
	}()

	cur := &byteCursor{data: d.buf}
	v, err := d.codec.Decode(cur)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("serdepipe: decode: %w", err)
	}
	if cur.pos != len(d.buf) {
		return false, ErrTrailingData
	}
	d.val = v
	d.has = true
	return true, nil
}

func (d *bufferedDeserializer[T]) take() T {
	v := d.val
	var zero T
	d.val = zero
	d.has = false
	return v
}

func (d *bufferedDeserializer[T]) stop() {
	d.buf = nil
	var zero T
	d.val = zero
	d.has = false
}
