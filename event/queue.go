package event

// QueueSize is the fixed ring capacity; must be a power of two
const (
	QueueSize  = 256
	bufferMask = QueueSize - 1
)

// Queue is a fixed ring buffer of game events
// Single-threaded: producer and consumer both run on the frame driver
// Overflow: oldest events overwritten when full
type Queue struct {
	events [QueueSize]GameEvent
	head   uint64 // Read index
	tail   uint64 // Write index
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event, dropping the oldest if the ring is full
func (q *Queue) Push(ev GameEvent) {
	q.events[q.tail&bufferMask] = ev
	q.tail++
	if q.tail-q.head > QueueSize {
		q.head = q.tail - QueueSize
	}
}

// Consume returns all pending events in FIFO order and empties the queue
func (q *Queue) Consume() []GameEvent {
	if q.tail == q.head {
		return nil
	}
	result := make([]GameEvent, 0, q.tail-q.head)
	for i := q.head; i < q.tail; i++ {
		result = append(result, q.events[i&bufferMask])
	}
	q.head = q.tail
	return result
}

// Len returns pending event count
func (q *Queue) Len() int {
	return int(q.tail - q.head)
}
