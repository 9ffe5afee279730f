package queue

type waiterState uint8

const (
	// waiterRegistered: parked, linked into the registry.
	waiterRegistered waiterState = iota
	// waiterDelivered: a producer wrote item and closed ready.
	waiterDelivered
	// waiterClosed: Close resolved the waiter and closed ready.
	waiterClosed
	// waiterCanceled: the consumer gave up and unlinked itself.
	waiterCanceled
)

func (s waiterState) String() string {
	switch s {
	case waiterRegistered:
		return "registered"
	case waiterDelivered:
		return "delivered"
	case waiterClosed:
		return "closed"
	case waiterCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// waiter is the record of one consumer parked in Take.
//
// All fields except ready are guarded by the owning queue's lock. ready
// is closed exactly once, by whoever moves the waiter out of
// waiterRegistered on the consumer's behalf (Put or Close).
type waiter[T any] struct {
	ready  chan struct{}
	next   *waiter[T]
	prev   *waiter[T]
	ticket uint64
	item   T
	state  waiterState
}

func newWaiter[T any](ticket uint64) *waiter[T] {
	return &waiter[T]{
		ready:  make(chan struct{}),
		ticket: ticket,
	}
}

// deliver hands v to the waiter and wakes it.
func (w *waiter[T]) deliver(v T) {
	w.item = v
	w.state = waiterDelivered
	close(w.ready)
}

// shut wakes the waiter with a closed outcome.
func (w *waiter[T]) shut() {
	w.state = waiterClosed
	close(w.ready)
}

// take moves the delivered item out of the slot.
func (w *waiter[T]) take() T {
	v := w.item
	var zero T
	w.item = zero
	return v
}

// registry is the FIFO of parked consumers, ordered by ticket.
//
// Doubly linked so a canceled waiter can unlink itself in O(1).
// Not safe for concurrent use; callers hold the queue lock.
type registry[T any] struct {
	head *waiter[T]
	tail *waiter[T]
	n    int
}

// push appends w. Tickets are issued in increasing order under the same
// lock, so appending keeps the registry sorted.
func (r *registry[T]) push(w *waiter[T]) {
	w.prev = r.tail
	w.next = nil
	if r.tail == nil {
		r.head = w
	} else {
		r.tail.next = w
	}
	r.tail = w
	r.n++
}

// popFront unlinks and returns the longest-waiting consumer, or nil.
func (r *registry[T]) popFront() *waiter[T] {
	w := r.head
	if w == nil {
		return nil
	}
	r.unlink(w)
	return w
}

// remove unlinks w. w must currently be linked into r.
func (r *registry[T]) remove(w *waiter[T]) {
	r.unlink(w)
}

func (r *registry[T]) unlink(w *waiter[T]) {
	if w.prev == nil {
		r.head = w.next
	} else {
		w.prev.next = w.next
	}
	if w.next == nil {
		r.tail = w.prev
	} else {
		w.next.prev = w.prev
	}
	w.next = nil
	w.prev = nil
	r.n--
}

func (r *registry[T]) empty() bool {
	return r.head == nil
}

func (r *registry[T]) len() int {
	return r.n
}
