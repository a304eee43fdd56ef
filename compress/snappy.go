package compress

import (
	"github.com/golang/snappy"

	"github.com/stealthrocket/serdepipe"
)

// Snappy wraps inner so its wire bytes travel in snappy's framed stream
// format, one stream per value.
func Snappy[T any](inner serdepipe.Codec[T]) serdepipe.Codec[T] {
	return snappyCodec[T]{inner: inner}
}

type snappyCodec[T any] struct {
	inner serdepipe.Codec[T]
}

func (c snappyCodec[T]) Encode(w serdepipe.ByteSink, v T) error {
	zw := snappy.NewBufferedWriter(w)
	if err := c.inner.Encode(serdepipe.NewSink(zw), v); err != nil {
		return err
	}
	// Close flushes the final block; the stream has no end marker beyond it.
	return zw.Close()
}

func (c snappyCodec[T]) Decode(r serdepipe.ByteSource) (T, error) {
	ts := &trackedSource{src: r}
	zr := snappy.NewReader(ts)
	v, err := c.inner.Decode(serdepipe.NewSource(zr))
	if err != nil {
		var zero T
		return zero, ts.mapErr(err)
	}
	return v, nil
}
