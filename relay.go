package serdepipe

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// Relay drains the value in flight on src into dst and returns the decoded
// result. The two pipes run on separate goroutines connected by a byte
// channel; each pipe keeps a single owner for the duration of the call.
//
// A value must already have been pushed into src, and dst must be ready for
// a new message. Relay returns the first pipe error, or io.ErrUnexpectedEOF
// if src drained before dst's decode completed.
func Relay[T any](ctx context.Context, src *Serializer[T], dst *Deserializer[T]) (T, error) {
	var zero T
	if src.State() != InFlight {
		return zero, ErrNotInFlight
	}

	ch := make(chan byte, 64)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(ch)
		for {
			b, ok := src.Pull()
			if !ok {
				return src.Err()
			}
			select {
			case ch <- b:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	g.Go(func() error {
		for b := range ch {
			if err := dst.Push(b); err != nil {
				return err
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return zero, err
	}
	v, ok := dst.Pull()
	if !ok {
		if err := dst.Err(); err != nil {
			return zero, err
		}
		return zero, fmt.Errorf("serdepipe: relay: %w", io.ErrUnexpectedEOF)
	}
	return v, nil
}
