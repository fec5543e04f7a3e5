package io

import (
	"context"
	"io"
	"iter"
	"maps"
	"strconv"
	"sync"
)

const (
	// INTERACTIVE_DEFAULT_CAPACITY is the default capacity in bytes of an interactive queue.
	INTERACTIVE_DEFAULT_CAPACITY = 4096
)

// Interactive implements a circular buffer that an external actor fills
// between machine steps. It operates as a FIFO queue with a fixed capacity
// and separate read/write positions.
//
// Receive on an empty queue yields no value without blocking; while the queue
// is open this suspends the machine instead of failing it. Once closed, an
// empty queue is exhausted for good.
type Interactive struct {
	Capacity int    // Capacity in bytes.
	Initial  []byte // Contents restored by Rewind.

	mutex      sync.Mutex
	readIndex  int
	writeIndex int
	size       int
	data       []byte
	closed     bool
	notify     chan struct{}
}

var _ Input = (*Interactive)(nil)

// Defines returns an iter of defines for the channel.
func (ic *Interactive) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"INPUT_CAPACITY": strconv.Itoa(ic.capacity()),
	})
}

func (ic *Interactive) capacity() int {
	if ic.Capacity <= 0 {
		return INTERACTIVE_DEFAULT_CAPACITY
	}
	return ic.Capacity
}

// init must be called with the mutex held.
func (ic *Interactive) init() {
	if ic.data == nil {
		ic.data = make([]byte, max(ic.capacity(), len(ic.Initial)))
	}
	if ic.notify == nil {
		ic.notify = make(chan struct{}, 1)
	}
}

// Rewind empties the queue, reopens it, and refills it with Initial.
// The queue grows to hold all of Initial if it exceeds Capacity.
func (ic *Interactive) Rewind() {
	ic.mutex.Lock()
	ic.data = nil
	ic.init()
	ic.readIndex = 0
	ic.closed = false
	copy(ic.data, ic.Initial)
	ic.size = len(ic.Initial)
	ic.writeIndex = ic.size % len(ic.data)
	ic.signal()
	ic.mutex.Unlock()
}

// Append queues bytes for the machine to receive.
// Returns ErrChannelFull if the queue has reached capacity, and
// ErrChannelClosed after Close.
func (ic *Interactive) Append(values ...byte) (err error) {
	ic.mutex.Lock()
	defer ic.mutex.Unlock()

	ic.init()

	if ic.closed {
		err = ErrChannelClosed
		return
	}

	for _, value := range values {
		if ic.size >= len(ic.data) {
			err = ErrChannelFull
			break
		}

		ic.data[ic.writeIndex] = value

		ic.writeIndex++
		if ic.writeIndex == len(ic.data) {
			ic.writeIndex = 0
		}
		ic.size++
	}

	ic.signal()

	return
}

// signal wakes one Wait. Must be called with the mutex held.
func (ic *Interactive) signal() {
	select {
	case ic.notify <- struct{}{}:
	default:
	}
}

// ReadFrom implements io.ReaderFrom, queueing bytes from r until end of
// stream, then closing the queue.
func (ic *Interactive) ReadFrom(r io.Reader) (n int64, err error) {
	var buf [256]byte
	for {
		var count int
		count, err = r.Read(buf[:])
		if count > 0 {
			werr := ic.Append(buf[:count]...)
			if werr != nil {
				err = werr
				return
			}
			n += int64(count)
		}
		if err == io.EOF {
			err = nil
			ic.Close()
			return
		}
		if err != nil {
			return
		}
	}
}

// Close marks the end of input. Bytes already queued are still received.
func (ic *Interactive) Close() (err error) {
	ic.mutex.Lock()
	defer ic.mutex.Unlock()

	ic.init()
	ic.closed = true
	ic.signal()

	return
}

// Receive returns the oldest queued byte, without blocking.
func (ic *Interactive) Receive() (value byte, ok bool) {
	ic.mutex.Lock()
	defer ic.mutex.Unlock()

	if ic.size == 0 {
		return
	}

	value = ic.data[ic.readIndex]
	ic.readIndex++
	if ic.readIndex == len(ic.data) {
		ic.readIndex = 0
	}
	ic.size--
	ok = true

	return
}

// Len returns the number of queued bytes.
func (ic *Interactive) Len() int {
	ic.mutex.Lock()
	defer ic.mutex.Unlock()

	return ic.size
}

// Interactive is true until the queue is closed.
func (ic *Interactive) Interactive() bool {
	ic.mutex.Lock()
	defer ic.mutex.Unlock()

	return !ic.closed
}

// Wait blocks until the queue holds input, is closed, or ctx is done.
func (ic *Interactive) Wait(ctx context.Context) (err error) {
	for {
		ic.mutex.Lock()
		ic.init()
		ready := ic.size > 0 || ic.closed
		notify := ic.notify
		ic.mutex.Unlock()

		if ready {
			return
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case <-notify:
		}
	}
}
