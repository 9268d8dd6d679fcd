package chanx

// Default initial capacity of a queue's ring buffer.
const defaultInitialCapacity = 16

// ring is a growable FIFO ring buffer. Its capacity is always a power of two
// so positions wrap with a mask instead of a modulo.
type ring[T any] struct {
	buf  []T
	head int
	n    int
	mask int
}

func newRing[T any](capacity int) ring[T] {
	capacity = nextPowerOfTwo(capacity)
	return ring[T]{
		buf:  make([]T, capacity),
		mask: capacity - 1,
	}
}

func (r *ring[T]) len() int {
	return r.n
}

func (r *ring[T]) push(v T) {
	if r.n == len(r.buf) {
		r.grow()
	}
	r.buf[(r.head+r.n)&r.mask] = v
	r.n++
}

// pop removes the oldest value. The caller must check len first.
func (r *ring[T]) pop() T {
	var zero T
	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) & r.mask
	r.n--
	return v
}

// drain removes and returns every pending value, oldest first.
func (r *ring[T]) drain() []T {
	out := make([]T, 0, r.n)
	for r.n > 0 {
		out = append(out, r.pop())
	}
	return out
}

// grow doubles the capacity, unwrapping the pending values to the front.
func (r *ring[T]) grow() {
	next := make([]T, len(r.buf)*2)
	for i := range r.n {
		next[i] = r.buf[(r.head+i)&r.mask]
	}
	r.buf = next
	r.head = 0
	r.mask = len(next) - 1
}

// nextPowerOfTwo returns the next power of 2 >= n
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	if n&(n-1) == 0 {
		return n
	}

	power := 1
	for power < n {
		power *= 2
	}
	return power
}
