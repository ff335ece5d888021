package data

import (
	"strings"
	"sync"
)

// PendingMode is a mode change waiting to be sent.
type PendingMode struct {
	Positive bool
	Mode     byte
	Param    string
}

// String renders the change as +m or +m param.
func (p PendingMode) String() string {
	sign := "-"
	if p.Positive {
		sign = "+"
	}
	if len(p.Param) == 0 {
		return sign + string(p.Mode)
	}
	return sign + string(p.Mode) + " " + p.Param
}

func (p PendingMode) opposite() PendingMode {
	p.Positive = !p.Positive
	return p
}

// ModeQueue batches outgoing mode changes for a channel or a client.
type ModeQueue struct {
	pending []PendingMode
	mut     sync.Mutex
}

// Add queues a change. A pending change that does the opposite cancels out
// with it and nothing is queued, an identical pending change makes this one
// a no-op. Returns the queue length afterwards.
func (q *ModeQueue) Add(change PendingMode) int {
	q.mut.Lock()
	defer q.mut.Unlock()

	opp := change.opposite()
	for i, p := range q.pending {
		switch p {
		case opp:
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return len(q.pending)
		case change:
			return len(q.pending)
		}
	}
	q.pending = append(q.pending, change)
	return len(q.pending)
}

// Len returns the number of queued changes.
func (q *ModeQueue) Len() int {
	q.mut.Lock()
	defer q.mut.Unlock()
	return len(q.pending)
}

// Pending returns a copy of the queued changes.
func (q *ModeQueue) Pending() []PendingMode {
	q.mut.Lock()
	defer q.mut.Unlock()
	cpy := make([]PendingMode, len(q.pending))
	copy(cpy, q.pending)
	return cpy
}

// Take empties the queue and returns what was in it.
func (q *ModeQueue) Take() []PendingMode {
	q.mut.Lock()
	defer q.mut.Unlock()
	taken := q.pending
	q.pending = nil
	return taken
}

// Clear empties the queue without returning anything.
func (q *ModeQueue) Clear() {
	q.Take()
}

// FormatModes renders a batch of changes as a mode string. All removals come
// first then all additions, the parameters follow in the same order:
// -ab+cd aparam cparam
func FormatModes(changes []PendingMode) string {
	var pos, neg, posParams, negParams strings.Builder
	for _, c := range changes {
		modes, params := &neg, &negParams
		if c.Positive {
			modes, params = &pos, &posParams
		}
		modes.WriteByte(c.Mode)
		if len(c.Param) > 0 {
			params.WriteByte(' ')
			params.WriteString(c.Param)
		}
	}

	var out strings.Builder
	if neg.Len() > 0 {
		out.WriteByte('-')
		out.WriteString(neg.String())
	}
	if pos.Len() > 0 {
		out.WriteByte('+')
		out.WriteString(pos.String())
	}
	out.WriteString(negParams.String())
	out.WriteString(posParams.String())
	return out.String()
}
