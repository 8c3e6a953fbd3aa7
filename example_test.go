package stego_test

import (
	"fmt"

	stego "github.com/yyyoichi/stride_stego"
	"github.com/yyyoichi/stride_stego/mark"
)

func Example_stego() {
	// Any byte buffer can carry the payload; a real carrier is usually a file.
	carrier := make([]byte, 64)

	s, err := stego.New(
		stego.WithStartBit(0),
		stego.WithStride(2),
		stego.WithMode(stego.Enhanced),
	)
	if err != nil {
		fmt.Printf("Error creating codec: %v\n", err)
		return
	}

	if err := s.Embed(carrier, mark.NewString("A")); err != nil {
		fmt.Printf("Error embedding payload: %v\n", err)
		return
	}

	dec, err := s.Extract(carrier, mark.NewExtract())
	if err != nil {
		fmt.Printf("Error extracting payload: %v\n", err)
		return
	}
	fmt.Println(dec.DecodeToString())
	fmt.Println(s.Capacity(len(carrier)))

	// Output:
	// A
	// 2
}
