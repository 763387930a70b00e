package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResettable struct {
	Value       int
	Name        string
	ResetCalled int
}

func (m *mockResettable) Reset() {
	m.Value = 0
	m.Name = ""
	m.ResetCalled++
}

func newMock() *mockResettable {
	return &mockResettable{}
}

func TestNewPool(t *testing.T) {
	pool := New(5, newMock)
	require.NotNil(t, pool)
	assert.Equal(t, 0, pool.Idle())
}

func TestPoolGet_EmptyPoolBuildsNew(t *testing.T) {
	built := 0
	pool := New(5, func() *mockResettable {
		built++
		return &mockResettable{Value: 7}
	})

	item := pool.Get()

	require.NotNil(t, item)
	assert.Equal(t, 7, item.Value)
	assert.Equal(t, 1, built)
}

func TestPoolPutAndGet(t *testing.T) {
	pool := New(5, newMock)

	obj := &mockResettable{Value: 42, Name: "test"}
	pool.Put(obj)
	assert.Equal(t, 1, pool.Idle())

	retrieved := pool.Get()
	assert.Same(t, obj, retrieved)
	assert.Equal(t, 0, retrieved.Value)
	assert.Equal(t, "", retrieved.Name)
	assert.Equal(t, 1, retrieved.ResetCalled)
}

func TestPoolPut_FullPoolDropsItem(t *testing.T) {
	pool := New(1, newMock)

	first := &mockResettable{Value: 1}
	second := &mockResettable{Value: 2}
	pool.Put(first)
	pool.Put(second)

	assert.Equal(t, 1, pool.Idle())
	assert.Equal(t, 1, second.ResetCalled)
	assert.Same(t, first, pool.Get())
}

func TestPoolConcurrentUse(t *testing.T) {
	pool := New(4, func() *bytes.Buffer { return new(bytes.Buffer) })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := pool.Get()
			buf.WriteString("payload")
			assert.Equal(t, "payload", buf.String())
			pool.Put(buf)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, pool.Idle(), 4)
}
