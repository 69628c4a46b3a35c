package pool

import (
	"bytes"
	"sync"
)

// Resettable is a constraint for types that have a Reset() method.
type Resettable interface {
	Reset()
}

// Pool is a bounded pool of reusable objects. Objects are reset on Put and
// allocated with newFn when the pool is empty.
type Pool[T Resettable] struct {
	items chan T
	newFn func() T
	mu    sync.Mutex
	made  int
}

// New creates a pool holding at most capacity idle objects.
func New[T Resettable](capacity int, newFn func() T) *Pool[T] {
	return &Pool[T]{
		items: make(chan T, capacity),
		newFn: newFn,
	}
}

// Get returns an idle object or a freshly allocated one.
func (p *Pool[T]) Get() T {
	select {
	case item := <-p.items:
		return item
	default:
		p.mu.Lock()
		p.made++
		p.mu.Unlock()
		return p.newFn()
	}
}

// Put resets item and keeps it for reuse. When the pool is full the item is
// dropped.
func (p *Pool[T]) Put(item T) {
	item.Reset()

	select {
	case p.items <- item:
	default:
	}
}

// Allocated reports how many objects newFn has produced.
func (p *Pool[T]) Allocated() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.made
}

// NewBufferPool returns a pool of byte buffers used to read object bodies.
func NewBufferPool(capacity int) *Pool[*bytes.Buffer] {
	return New(capacity, func() *bytes.Buffer {
		return new(bytes.Buffer)
	})
}
