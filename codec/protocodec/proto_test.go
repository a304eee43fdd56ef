package protocodec_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/stealthrocket/serdepipe"
	"github.com/stealthrocket/serdepipe/codec/protocodec"
)

func TestRoundTrip(t *testing.T) {
	codec := protocodec.New[*wrapperspb.StringValue]()

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, wrapperspb.String("incremental")))

	got, err := codec.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	if diff := cmp.Diff(wrapperspb.String("incremental"), got, protocmp.Transform()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripThroughPipes(t *testing.T) {
	codec := protocodec.New[*structpb.Struct]()
	msg, err := structpb.NewStruct(map[string]any{
		"name":  "pipe",
		"count": 3.0,
		"live":  true,
	})
	require.NoError(t, err)

	for _, backend := range []serdepipe.Backend{serdepipe.Bounded, serdepipe.Buffered} {
		s := serdepipe.NewSerializer(codec, serdepipe.WithBackend(backend))
		d := serdepipe.NewDeserializer(codec, serdepipe.WithBackend(backend))

		require.NoError(t, s.Push(msg))
		for {
			b, ok := s.Pull()
			if !ok {
				break
			}
			require.NoError(t, d.Push(b))
		}
		require.NoError(t, s.Err())

		got, ok := d.Pull()
		require.True(t, ok)
		if diff := cmp.Diff(msg, got, protocmp.Transform()); diff != "" {
			t.Errorf("backend %v mismatch (-want +got):\n%s", backend, diff)
		}

		require.NoError(t, s.Close())
		require.NoError(t, d.Close())
	}
}

func TestTruncated(t *testing.T) {
	codec := protocodec.New[*wrapperspb.BytesValue]()

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, wrapperspb.Bytes(bytes.Repeat([]byte{1}, 64))))

	_, err := codec.Decode(bytes.NewReader(buf.Bytes()[:buf.Len()/2]))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
