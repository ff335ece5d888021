package data

import (
	"sync"
	"time"
)

// ListModeStale is how long a channel's list mode queue may go untouched
// before it is thrown away.
const ListModeStale = 30 * time.Second

// ListModeItem is one entry of a list mode such as a ban. It is immutable.
type ListModeItem struct {
	Item  string
	Owner string
	Time  int64
}

// NewListModeItem creates a list mode item, time is in unix seconds.
func NewListModeItem(item, owner string, t int64) ListModeItem {
	return ListModeItem{Item: item, Owner: owner, Time: t}
}

// ListQueue is the fifo of list modes we expect replies for.
type ListQueue struct {
	modes []byte
	mut   sync.Mutex
}

// Offer adds a mode to the back of the queue.
func (q *ListQueue) Offer(mode byte) {
	q.mut.Lock()
	defer q.mut.Unlock()
	q.modes = append(q.modes, mode)
}

// Peek returns the head of the queue.
func (q *ListQueue) Peek() (byte, bool) {
	q.mut.Lock()
	defer q.mut.Unlock()
	if len(q.modes) == 0 {
		return 0, false
	}
	return q.modes[0], true
}

// Poll removes and returns the head of the queue.
func (q *ListQueue) Poll() (byte, bool) {
	q.mut.Lock()
	defer q.mut.Unlock()
	if len(q.modes) == 0 {
		return 0, false
	}
	m := q.modes[0]
	q.modes = q.modes[1:]
	return m, true
}

// Remove removes the first occurrence of a mode.
func (q *ListQueue) Remove(mode byte) bool {
	q.mut.Lock()
	defer q.mut.Unlock()
	for i, m := range q.modes {
		if m == mode {
			q.modes = append(q.modes[:i], q.modes[i+1:]...)
			return true
		}
	}
	return false
}

// Contains checks if the mode is queued.
func (q *ListQueue) Contains(mode byte) bool {
	q.mut.Lock()
	defer q.mut.Unlock()
	for _, m := range q.modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Len returns the number of queued modes.
func (q *ListQueue) Len() int {
	q.mut.Lock()
	defer q.mut.Unlock()
	return len(q.modes)
}
