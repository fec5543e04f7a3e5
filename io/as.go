package io

import (
	"iter"
)

// SendAll sends each byte to the output port, stopping at the first error.
func SendAll(out Output, values ...byte) (err error) {
	for _, value := range values {
		err = out.Send(value)
		if err != nil {
			return
		}
	}
	return
}

// ReceiveAll returns an iterator that yields bytes from the input port
// until it has none available.
func ReceiveAll(in Input) iter.Seq[byte] {
	return func(yield func(value byte) bool) {
		for {
			value, ok := in.Receive()
			if !ok {
				return
			}
			if !yield(value) {
				return
			}
		}
	}
}
