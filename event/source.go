// Package event provides the subscribe/dispose capability the virtualization
// controllers use for scroll and size-change notifications.
package event

import "sync"

// Dispose removes a subscription. Calling it more than once is a no-op.
type Dispose func()

// Source is anything a handler can subscribe to.
type Source[T any] interface {
	Subscribe(fn func(T)) Dispose
}

// Bus is an in-process Source. Emit delivers synchronously, in subscription
// order, on the caller's goroutine.
type Bus[T any] struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[uint64]func(T)
	order    []uint64
}

// NewBus returns an empty Bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{handlers: make(map[uint64]func(T))}
}

// Subscribe implements Source.
func (b *Bus[T]) Subscribe(fn func(T)) Dispose {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[id] = fn
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

// Emit delivers v to every current subscriber. A handler removed while Emit
// is running is not called after its removal.
func (b *Bus[T]) Emit(v T) {
	b.mu.Lock()
	ids := make([]uint64, len(b.order))
	copy(ids, b.order)
	b.mu.Unlock()

	for _, id := range ids {
		b.mu.Lock()
		fn, ok := b.handlers[id]
		b.mu.Unlock()
		if ok {
			fn(v)
		}
	}
}

// Len returns the number of live subscriptions.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, id)
	for i, other := range b.order {
		if other == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}
