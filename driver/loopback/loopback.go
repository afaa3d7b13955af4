// Package loopback implements an in-memory radio link for host-side
// testing and simulation: two endpoints whose transmit queues feed each
// other's receive queues.
package loopback

import (
	"sync"

	"github.com/ystepanoff/carlink/protocol"
	"github.com/ystepanoff/carlink/transport"
)

// Endpoint is one side of an in-memory link.
type Endpoint struct {
	mu     sync.Mutex
	peer   *Endpoint
	rxBuf  ringBuffer
	closed bool

	// dropNext counts outgoing records to silently discard, simulating
	// radio loss.
	dropNext int
}

var _ transport.Driver = (*Endpoint)(nil)

// Pair returns two connected endpoints.
func Pair() (*Endpoint, *Endpoint) {
	a := &Endpoint{}
	b := &Endpoint{}
	a.peer = b
	b.peer = a
	return a, b
}

func (e *Endpoint) TrySend(data []byte) error {
	if len(data) > protocol.MaxPayloadSize {
		return protocol.ErrPayloadTooLarge
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return protocol.ErrDriverClosed
	}
	if e.dropNext > 0 {
		e.dropNext--
		e.mu.Unlock()
		return nil // lost on air, sender cannot tell
	}
	e.mu.Unlock()

	record := make([]byte, len(data))
	copy(record, data)

	peer := e.peer
	peer.mu.Lock()
	defer peer.mu.Unlock()
	if peer.closed {
		return nil
	}
	peer.rxBuf.push(record)
	return nil
}

func (e *Endpoint) TryReceive() ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, false
	}
	return e.rxBuf.pop()
}

func (e *Endpoint) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// DropNext makes the endpoint discard the next n outgoing records.
func (e *Endpoint) DropNext(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dropNext = n
}

const ringCapacity = 64

type ringBuffer struct {
	data       [ringCapacity][]byte
	head, tail int // head = next pop, tail = next push
	count      int
}

func (rb *ringBuffer) push(record []byte) {
	if rb.count == ringCapacity {
		// Overwrite the oldest when full to keep memory bounded
		rb.data[rb.head] = nil
		rb.head = (rb.head + 1) % ringCapacity
		rb.count--
	}
	rb.data[rb.tail] = record
	rb.tail = (rb.tail + 1) % ringCapacity
	rb.count++
}

func (rb *ringBuffer) pop() ([]byte, bool) {
	if rb.count == 0 {
		return nil, false
	}
	record := rb.data[rb.head]
	rb.data[rb.head] = nil
	rb.head = (rb.head + 1) % ringCapacity
	rb.count--
	return record, true
}
