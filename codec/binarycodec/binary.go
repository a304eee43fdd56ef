// Package binarycodec provides fixed-layout little-endian codecs for
// scalar values, and a varint-length-prefixed codec for byte strings.
package binarycodec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/stealthrocket/serdepipe"
)

// maxLen bounds the payload length a Bytes or String decode will accept, so
// a corrupted length header fails instead of attempting a giant allocation.
const maxLen = 1 << 30

// Uint64 returns a codec encoding a uint64 as 8 little-endian bytes.
func Uint64() serdepipe.Codec[uint64] { return uint64Codec{} }

type uint64Codec struct{}

func (uint64Codec) Encode(w serdepipe.ByteSink, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func (uint64Codec) Decode(r serdepipe.ByteSource) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Int64 returns a codec encoding an int64 as 8 little-endian bytes of its
// two's complement representation.
func Int64() serdepipe.Codec[int64] { return int64Codec{} }

type int64Codec struct{}

func (int64Codec) Encode(w serdepipe.ByteSink, v int64) error {
	return Uint64().Encode(w, uint64(v))
}

func (int64Codec) Decode(r serdepipe.ByteSource) (int64, error) {
	u, err := Uint64().Decode(r)
	return int64(u), err
}

// Float64 returns a codec encoding a float64 as its IEEE 754 bits, 8
// little-endian bytes.
func Float64() serdepipe.Codec[float64] { return float64Codec{} }

type float64Codec struct{}

func (float64Codec) Encode(w serdepipe.ByteSink, v float64) error {
	return Uint64().Encode(w, math.Float64bits(v))
}

func (float64Codec) Decode(r serdepipe.ByteSource) (float64, error) {
	u, err := Uint64().Decode(r)
	return math.Float64frombits(u), err
}

// Bytes returns a codec encoding a byte slice as an unsigned varint length
// followed by the payload. An empty slice encodes to the single byte 0x00.
func Bytes() serdepipe.Codec[[]byte] { return bytesCodec{} }

type bytesCodec struct{}

func (bytesCodec) Encode(w serdepipe.ByteSink, v []byte) error {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(len(v)))
	if _, err := w.Write(tmp[:n]); err != nil {
		return err
	}
	_, err := w.Write(v)
	return err
}

func (bytesCodec) Decode(r serdepipe.ByteSource) ([]byte, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	if n > maxLen {
		return nil, fmt.Errorf("binarycodec: length %d exceeds limit", n)
	}
	v := make([]byte, n)
	if _, err := io.ReadFull(r, v); err != nil {
		return nil, err
	}
	return v, nil
}

// String returns a codec with the same wire form as Bytes, carrying a
// string.
func String() serdepipe.Codec[string] { return stringCodec{} }

type stringCodec struct{}

func (stringCodec) Encode(w serdepipe.ByteSink, v string) error {
	return Bytes().Encode(w, []byte(v))
}

func (stringCodec) Decode(r serdepipe.ByteSource) (string, error) {
	b, err := Bytes().Decode(r)
	return string(b), err
}
