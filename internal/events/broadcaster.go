package events

import (
	"sync"
)

type Kind string

const (
	TaskCreated Kind = "created"
	TaskUpdated Kind = "updated"
	TaskDeleted Kind = "deleted"
)

// Change tells observers that the persisted task set changed. Observers
// are expected to re-query the store rather than trust a payload.
type Change struct {
	Kind   Kind  `json:"kind"`
	TaskID int16 `json:"task_id"`
}

type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan Change
	nextID int
	buffer int
}

func NewBroadcaster(buffer int) *Broadcaster {
	if buffer < 1 {
		buffer = 1
	}
	return &Broadcaster{
		subs:   make(map[int]chan Change),
		buffer: buffer,
	}
}

// Subscribe registers an observer. The returned function unsubscribes and
// closes the channel; it may be called more than once.
func (b *Broadcaster) Subscribe() (<-chan Change, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Change, b.buffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

// Publish never blocks: a subscriber with a full buffer misses the change.
func (b *Broadcaster) Publish(change Change) {
	if b == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
