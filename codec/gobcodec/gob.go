// Package gobcodec provides a codec for arbitrary Go values using
// encoding/gob. Each value travels as a self-contained gob stream,
// including its type descriptors, so any message can be decoded without
// earlier ones.
//
// gob buffers each of its internal messages before writing, so peak memory
// includes one encoded message even under the bounded backend. Values
// containing maps do not encode deterministically across runs.
package gobcodec

import (
	"encoding/gob"

	"github.com/stealthrocket/serdepipe"
)

// New returns a codec for values of type T.
func New[T any]() serdepipe.Codec[T] {
	return codec[T]{}
}

type codec[T any] struct{}

func (codec[T]) Encode(w serdepipe.ByteSink, v T) error {
	return gob.NewEncoder(w).Encode(v)
}

func (codec[T]) Decode(r serdepipe.ByteSource) (T, error) {
	var v T
	if err := gob.NewDecoder(r).Decode(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
