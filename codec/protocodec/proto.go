// Package protocodec provides a codec carrying protobuf messages in
// size-delimited form: a varint length prefix followed by the message's
// wire bytes.
package protocodec

import (
	"google.golang.org/protobuf/encoding/protodelim"
	"google.golang.org/protobuf/proto"

	"github.com/stealthrocket/serdepipe"
)

// New returns a codec for messages of type M.
//
// Marshaling a message materializes its wire bytes before they reach the
// sink, so peak memory includes one encoded message regardless of backend.
func New[M proto.Message]() serdepipe.Codec[M] {
	return codec[M]{}
}

type codec[M proto.Message] struct{}

func (codec[M]) Encode(w serdepipe.ByteSink, v M) error {
	_, err := protodelim.MarshalTo(w, v)
	return err
}

func (codec[M]) Decode(r serdepipe.ByteSource) (M, error) {
	var zero M
	m := zero.ProtoReflect().New().Interface().(M)
	if err := protodelim.UnmarshalFrom(r, m); err != nil {
		return zero, err
	}
	return m, nil
}
