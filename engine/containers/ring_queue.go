package containers

import (
	"errors"
	"sync"
)

var ErrQueueEmpty = errors.New("queue is empty")

const defaultRingQueueSize = 16

// RingQueue is an unbounded FIFO backed by a ring buffer that doubles when
// full. It is safe for any number of producers and consumers.
type RingQueue[T any] struct {
	mu         sync.Mutex
	data       []T
	size       int
	readIndex  int
	writeIndex int
	count      int
}

// Create a new RingQueue with an initial capacity of size.
func NewRingQueue[T any](size int) *RingQueue[T] {
	if size <= 0 {
		size = defaultRingQueueSize
	}
	return &RingQueue[T]{
		data: make([]T, size),
		size: size,
	}
}

// Enqueue adds an element to the back of the queue. It never blocks and
// never rejects.
func (rq *RingQueue[T]) Enqueue(value T) {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	if rq.count == rq.size {
		rq.grow()
	}

	rq.data[rq.writeIndex] = value
	rq.writeIndex = (rq.writeIndex + 1) % rq.size
	rq.count++
}

// Dequeue removes and returns the front element in the queue
func (rq *RingQueue[T]) Dequeue() (T, error) {
	rq.mu.Lock()
	defer rq.mu.Unlock()

	var zero T
	if rq.count == 0 {
		return zero, ErrQueueEmpty
	}

	value := rq.data[rq.readIndex]
	rq.data[rq.readIndex] = zero
	rq.readIndex = (rq.readIndex + 1) % rq.size
	rq.count--
	return value, nil
}

// TryDequeue is the non-blocking pop used by the render loop.
func (rq *RingQueue[T]) TryDequeue() (T, bool) {
	v, err := rq.Dequeue()
	return v, err == nil
}

func (rq *RingQueue[T]) Len() int {
	rq.mu.Lock()
	defer rq.mu.Unlock()
	return rq.count
}

// grow doubles the backing slice and unwraps the ring so readIndex is 0.
// Caller holds the lock.
func (rq *RingQueue[T]) grow() {
	data := make([]T, rq.size*2)
	n := copy(data, rq.data[rq.readIndex:])
	copy(data[n:], rq.data[:rq.readIndex])

	rq.data = data
	rq.readIndex = 0
	rq.writeIndex = rq.count
	rq.size *= 2
}
