package serdepipe_test

import (
	"fmt"

	"github.com/stealthrocket/serdepipe"
	"github.com/stealthrocket/serdepipe/codec/binarycodec"
)

func ExampleSerializer() {
	s := serdepipe.NewSerializer(binarycodec.Uint64())
	defer s.Close()

	if err := s.Push(42); err != nil {
		panic(err)
	}
	for {
		b, ok := s.Pull()
		if !ok {
			break
		}
		fmt.Println("byte!", b)
	}
	// Output:
	// byte! 42
	// byte! 0
	// byte! 0
	// byte! 0
	// byte! 0
	// byte! 0
	// byte! 0
	// byte! 0
}

func ExampleDeserializer() {
	s := serdepipe.NewSerializer(binarycodec.String())
	defer s.Close()
	d := serdepipe.NewDeserializer(binarycodec.String())
	defer d.Close()

	if err := s.Push("hello"); err != nil {
		panic(err)
	}
	for {
		b, ok := s.Pull()
		if !ok {
			break
		}
		if err := d.Push(b); err != nil {
			panic(err)
		}
	}

	v, ok := d.Pull()
	fmt.Println(v, ok)
	// Output:
	// hello true
}
