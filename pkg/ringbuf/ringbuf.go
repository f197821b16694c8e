package ringbuf

import (
	"github.com/pkg/errors"
)

// ------|----------------|--------------------|
//     tail             head                capacity
// tail = next read, head = next write; both wrap mod capacity.
// head == tail cannot tell full from empty, so we track count explicitly.

var (
	ErrNoStorage = errors.New("storage must hold at least one byte")
	ErrEmpty     = errors.New("buffer is empty")
)

// Callback is invoked synchronously when a write is refused on a full
// buffer with overwrite disabled. It must not write to the same buffer.
type Callback func()

// RingBuffer is a fixed-capacity FIFO over single-byte elements. It
// borrows the caller's storage slice for its whole lifetime and never
// allocates, frees or resizes it. Not safe for concurrent use: one
// logical owner per instance.
type RingBuffer struct {
	storage    []byte
	capacity   int
	head       int
	tail       int
	count      int
	overflow   bool
	overwrite  bool
	onOverflow Callback
}

// New returns a buffer over the caller-owned storage with overwrite
// mode disabled. Capacity is len(storage) and is fixed thereafter.
func New(storage []byte) (*RingBuffer, error) {
	return NewOverwrite(storage, false)
}

// NewOverwrite is the long-form constructor. With overwrite enabled, a
// write to a full buffer discards the oldest element instead of
// refusing the write.
func NewOverwrite(storage []byte, overwrite bool) (*RingBuffer, error) {
	if len(storage) == 0 {
		return nil, ErrNoStorage
	}
	return &RingBuffer{
		storage:   storage,
		capacity:  len(storage),
		overwrite: overwrite,
	}, nil
}

// Write stores b as the newest element. It never blocks and never
// fails out loud: on a full buffer it either drops b (overwrite
// disabled; overflow flag set, callback fired once) or drops the
// oldest element to make room (overwrite enabled; no flag, no callback).
func (rb *RingBuffer) Write(b byte) {
	if rb.count < rb.capacity {
		rb.storage[rb.head] = b
		rb.head = (rb.head + 1) % rb.capacity
		rb.count++
		return
	}

	if !rb.overwrite {
		// full: the byte is lost
		rb.overflow = true
		if rb.onOverflow != nil {
			rb.onOverflow()
		}
		return
	}

	// full with overwrite: the oldest element is gone, count stays at capacity
	rb.storage[rb.head] = b
	rb.head = (rb.head + 1) % rb.capacity
	rb.tail = (rb.tail + 1) % rb.capacity
}

// Read removes and returns the oldest element. Returns ErrEmpty when
// the buffer holds nothing.
func (rb *RingBuffer) Read() (byte, error) {
	if rb.count == 0 {
		return 0, ErrEmpty
	}
	b := rb.storage[rb.tail]
	rb.tail = (rb.tail + 1) % rb.capacity
	rb.count--
	// space reappeared, the overflow condition is over
	rb.overflow = false
	return b, nil
}

// Count returns the number of elements currently stored.
func (rb *RingBuffer) Count() int {
	return rb.count
}

// Capacity returns the fixed size set at construction.
func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

func (rb *RingBuffer) IsFull() bool {
	return rb.count == rb.capacity
}

func (rb *RingBuffer) IsNotEmpty() bool {
	return rb.count > 0
}

// DidOverflow reports whether a write was refused since the last call.
// Reading the flag clears it: calling this is how the caller
// acknowledges the overflow condition.
func (rb *RingBuffer) DidOverflow() bool {
	v := rb.overflow
	rb.overflow = false
	return v
}

// SetOverflowCallback registers fn, replacing any previous callback.
// A nil fn disables notification. Only meaningful with overwrite
// disabled; overwrite-mode discards are not signaled.
func (rb *RingBuffer) SetOverflowCallback(fn Callback) {
	rb.onOverflow = fn
}
