package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResettable struct {
	Value       int
	ResetCalled int
}

func (m *mockResettable) Reset() {
	m.Value = 0
	m.ResetCalled++
}

func newMock() *mockResettable {
	return &mockResettable{}
}

func TestPoolGet_EmptyPoolAllocates(t *testing.T) {
	p := New(5, newMock)

	item := p.Get()
	require.NotNil(t, item)
	assert.Equal(t, 1, p.Allocated())
}

func TestPoolPutAndGet(t *testing.T) {
	p := New(5, newMock)

	obj := p.Get()
	obj.Value = 42
	p.Put(obj)

	retrieved := p.Get()
	assert.Same(t, obj, retrieved)
	assert.Equal(t, 0, retrieved.Value)
	assert.Equal(t, 1, retrieved.ResetCalled)
	assert.Equal(t, 1, p.Allocated())
}

func TestPoolCapacityExceeded(t *testing.T) {
	p := New(1, newMock)

	first := &mockResettable{Value: 1}
	second := &mockResettable{Value: 2}
	p.Put(first)
	p.Put(second)

	assert.Same(t, first, p.Get())
	assert.Equal(t, 1, second.ResetCalled, "dropped items are still reset")

	assert.NotSame(t, second, p.Get())
}

func TestBufferPool(t *testing.T) {
	p := NewBufferPool(2)

	buf := p.Get()
	buf.WriteString("https://example.com")
	p.Put(buf)

	reused := p.Get()
	assert.Equal(t, 0, reused.Len())
}

func TestPoolConcurrentAccess(t *testing.T) {
	p := NewBufferPool(4)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := p.Get()
			buf.WriteString("x")
			p.Put(buf)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, p.Allocated(), 50)
	assert.Equal(t, 0, p.Get().Len())
}
