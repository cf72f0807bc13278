package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	b := NewBus[int]()
	var got []string
	b.Subscribe(func(v int) { got = append(got, "a") })
	b.Subscribe(func(v int) { got = append(got, "b") })

	b.Emit(1)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestBus_DisposeIsIdempotent(t *testing.T) {
	b := NewBus[int]()
	calls := 0
	dispose := b.Subscribe(func(int) { calls++ })
	other := b.Subscribe(func(int) {})

	dispose()
	dispose()
	b.Emit(1)

	assert.Zero(t, calls)
	assert.Equal(t, 1, b.Len())
	other()
	assert.Zero(t, b.Len())
}

func TestBus_RemovalDuringEmit(t *testing.T) {
	b := NewBus[int]()
	var second Dispose
	secondCalls := 0
	b.Subscribe(func(int) { second() })
	second = b.Subscribe(func(int) { secondCalls++ })

	b.Emit(1)
	assert.Zero(t, secondCalls, "handler disposed earlier in the same emit must not run")
}
