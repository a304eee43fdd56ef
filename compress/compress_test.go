package compress_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stealthrocket/serdepipe"
	"github.com/stealthrocket/serdepipe/codec/binarycodec"
	"github.com/stealthrocket/serdepipe/compress"
)

func middlewares() map[string]func(serdepipe.Codec[[]byte]) serdepipe.Codec[[]byte] {
	return map[string]func(serdepipe.Codec[[]byte]) serdepipe.Codec[[]byte]{
		"snappy": compress.Snappy[[]byte],
		"lz4":    compress.LZ4[[]byte],
	}
}

func TestRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("compressible data "), 1000)
	for name, wrap := range middlewares() {
		t.Run(name, func(t *testing.T) {
			codec := wrap(binarycodec.Bytes())

			var buf bytes.Buffer
			require.NoError(t, codec.Encode(&buf, payload))
			require.Less(t, buf.Len(), len(payload), "wire bytes not compressed")

			got, err := codec.Decode(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			require.Equal(t, payload, got)
		})
	}
}

// The bounded backend delivers compressed bytes one at a time, and the
// decoder must consume the full frame, trailer included, so that the decode
// completes on the message's last byte.
func TestRoundTripThroughBoundedPipes(t *testing.T) {
	payload := bytes.Repeat([]byte("stream me "), 500)
	for name, wrap := range middlewares() {
		t.Run(name, func(t *testing.T) {
			codec := wrap(binarycodec.Bytes())

			s := serdepipe.NewSerializer(codec)
			defer s.Close()
			d := serdepipe.NewDeserializer(codec)
			defer d.Close()

			require.NoError(t, s.Push(payload))
			for {
				b, ok := s.Pull()
				if !ok {
					break
				}
				require.NoError(t, d.Push(b))
			}
			require.NoError(t, s.Err())
			require.Equal(t, serdepipe.Drained, d.State())

			got, ok := d.Pull()
			require.True(t, ok)
			require.Equal(t, payload, got)
		})
	}
}

// A truncated stream must look like "need more input", not corruption.
func TestTruncated(t *testing.T) {
	payload := bytes.Repeat([]byte("truncate "), 1000)
	for name, wrap := range middlewares() {
		t.Run(name, func(t *testing.T) {
			codec := wrap(binarycodec.Bytes())

			var buf bytes.Buffer
			require.NoError(t, codec.Encode(&buf, payload))

			for _, cut := range []int{1, buf.Len() / 2, buf.Len() - 1} {
				_, err := codec.Decode(bytes.NewReader(buf.Bytes()[:cut]))
				require.ErrorIs(t, err, io.ErrUnexpectedEOF, "cut at %d", cut)
			}
		})
	}
}

func TestCorrupted(t *testing.T) {
	payload := bytes.Repeat([]byte("corrupt "), 1000)
	for name, wrap := range middlewares() {
		t.Run(name, func(t *testing.T) {
			codec := wrap(binarycodec.Bytes())

			var buf bytes.Buffer
			require.NoError(t, codec.Encode(&buf, payload))

			wire := append([]byte(nil), buf.Bytes()...)
			wire[len(wire)/2] ^= 0xFF

			_, err := codec.Decode(bytes.NewReader(wire))
			require.Error(t, err)
		})
	}
}
