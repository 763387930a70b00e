package pool

// Resettable is a constraint for types that have a Reset() method.
type Resettable interface {
	Reset()
}

// Pool is a bounded free list of reusable objects of type T.
type Pool[T Resettable] struct {
	items chan T
	newFn func() T
}

// New creates a Pool holding at most capacity idle objects. newFn builds a
// fresh object whenever the pool is empty.
func New[T Resettable](capacity int, newFn func() T) *Pool[T] {
	return &Pool[T]{
		items: make(chan T, capacity),
		newFn: newFn,
	}
}

// Get takes an idle object from the pool, or builds a new one.
func (p *Pool[T]) Get() T {
	select {
	case item := <-p.items:
		return item
	default:
		return p.newFn()
	}
}

// Put resets item and returns it to the pool. If the pool is full the item
// is dropped.
func (p *Pool[T]) Put(item T) {
	item.Reset()

	select {
	case p.items <- item:
	default:
	}
}

// Idle returns the number of objects currently waiting in the pool.
func (p *Pool[T]) Idle() int {
	return len(p.items)
}
