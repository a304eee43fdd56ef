package compress

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/stealthrocket/serdepipe"
)

// LZ4 wraps inner so its wire bytes travel in an lz4 frame, one frame per
// value. Blocks are 64 KiB to keep the compressor's footprint small.
func LZ4[T any](inner serdepipe.Codec[T]) serdepipe.Codec[T] {
	return lz4Codec[T]{inner: inner}
}

type lz4Codec[T any] struct {
	inner serdepipe.Codec[T]
}

func (c lz4Codec[T]) Encode(w serdepipe.ByteSink, v T) error {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.BlockSizeOption(lz4.Block64Kb)); err != nil {
		return err
	}
	if err := c.inner.Encode(serdepipe.NewSink(zw), v); err != nil {
		return err
	}
	return zw.Close()
}

func (c lz4Codec[T]) Decode(r serdepipe.ByteSource) (T, error) {
	var zero T
	ts := &trackedSource{src: r}
	zr := lz4.NewReader(ts)
	v, err := c.inner.Decode(serdepipe.NewSource(zr))
	if err != nil {
		return zero, ts.mapErr(err)
	}
	// The frame ends with an end mark and checksum after the last data
	// block; consume them so the value's wire bytes are fully read.
	var tmp [1]byte
	switch n, rerr := zr.Read(tmp[:]); {
	case n != 0:
		return zero, fmt.Errorf("compress: data past end of lz4 frame")
	case rerr == io.EOF:
		return v, nil
	case rerr == nil:
		return zero, ts.mapErr(io.ErrUnexpectedEOF)
	default:
		return zero, ts.mapErr(rerr)
	}
}
