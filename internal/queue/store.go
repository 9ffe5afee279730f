package queue

// node holds one queued value. The store owns the value from append
// until popFront or drain hands it off.
type node[T any] struct {
	value T
	next  *node[T]
}

// store is a singly-linked FIFO with O(1) append and popFront.
//
// Not safe for concurrent use; callers hold the queue lock.
// Invariant: head == nil ⇔ tail == nil ⇔ n == 0.
type store[T any] struct {
	head *node[T]
	tail *node[T]
	n    int
}

func (s *store[T]) append(v T) {
	nd := &node[T]{value: v}
	if s.tail == nil {
		s.head = nd
	} else {
		s.tail.next = nd
	}
	s.tail = nd
	s.n++
}

// popFront unlinks the head node. The store must not be empty.
func (s *store[T]) popFront() T {
	nd := s.head
	s.head = nd.next
	if s.head == nil {
		s.tail = nil
	}
	s.n--

	v := nd.value
	var zero T
	nd.value = zero
	nd.next = nil
	return v
}

func (s *store[T]) empty() bool {
	return s.head == nil
}

func (s *store[T]) len() int {
	return s.n
}

// detach moves every node into a new store and leaves s empty, so the
// nodes can be walked after the queue lock is released.
func (s *store[T]) detach() store[T] {
	d := *s
	*s = store[T]{}
	return d
}

// drain unlinks every node, passing each value to fn (if non-nil) in
// FIFO order. Returns the number of values dropped.
func (s *store[T]) drain(fn func(T)) int {
	dropped := 0
	for !s.empty() {
		v := s.popFront()
		if fn != nil {
			fn(v)
		}
		dropped++
	}
	return dropped
}
