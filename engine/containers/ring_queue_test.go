package containers

import (
	"errors"
	"sort"
	"sync"
	"testing"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](2)

	for i := 0; i < 10; i++ {
		rq.Enqueue(i)
	}
	if rq.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", rq.Len())
	}

	for want := 0; want < 10; want++ {
		got, ok := rq.TryDequeue()
		if !ok {
			t.Fatalf("TryDequeue() empty at %d", want)
		}
		if got != want {
			t.Errorf("TryDequeue() = %d, want %d", got, want)
		}
	}

	if _, ok := rq.TryDequeue(); ok {
		t.Error("TryDequeue() on empty queue reported a value")
	}
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("Dequeue() error = %v, want ErrQueueEmpty", err)
	}
}

func TestRingQueueGrowWhileWrapped(t *testing.T) {
	rq := NewRingQueue[int](4)

	// Advance the read index so the ring wraps before it grows.
	rq.Enqueue(0)
	rq.Enqueue(1)
	rq.Enqueue(2)
	_, _ = rq.Dequeue()
	_, _ = rq.Dequeue()
	for i := 3; i < 9; i++ {
		rq.Enqueue(i)
	}

	if rq.Len() != 7 {
		t.Fatalf("Len() = %d, want 7", rq.Len())
	}
	for want := 2; want < 9; want++ {
		if got, _ := rq.TryDequeue(); got != want {
			t.Errorf("TryDequeue() = %d, want %d", got, want)
		}
	}
	if _, err := rq.Dequeue(); err != ErrQueueEmpty {
		t.Errorf("Dequeue() on empty queue = %v, want ErrQueueEmpty", err)
	}
}

func TestRingQueueConcurrentProducers(t *testing.T) {
	rq := NewRingQueue[int](1)
	const producers, perProducer = 8, 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				rq.Enqueue(p*perProducer + i)
			}
		}(p)
	}
	wg.Wait()

	// Per-producer order must survive interleaving.
	last := make(map[int]int)
	var all []int
	for {
		v, ok := rq.TryDequeue()
		if !ok {
			break
		}
		p := v / perProducer
		if prev, seen := last[p]; seen && v <= prev {
			t.Fatalf("producer %d out of order: %d after %d", p, v, prev)
		}
		last[p] = v
		all = append(all, v)
	}

	if len(all) != producers*perProducer {
		t.Fatalf("drained %d values, want %d", len(all), producers*perProducer)
	}
	sort.Ints(all)
	for i, v := range all {
		if v != i {
			t.Fatalf("missing value %d", i)
		}
	}
}
