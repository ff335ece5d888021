package inet

import (
	"sync"
)

// queueNode is the node structure underneath the Queue type.
type queueNode struct {
	next *queueNode
	line []byte
}

// Queue is a singly linked fifo of outgoing lines waiting for the flood
// limiter. It is safe for concurrent use.
type Queue struct {
	front  *queueNode
	back   *queueNode
	length int
	mutex  sync.Mutex
}

// Enqueue copies each line and appends the copies in order. The copies are
// made before taking the lock.
func (q *Queue) Enqueue(lines ...[]byte) {
	if len(lines) == 0 {
		return
	}

	nodes := make([]*queueNode, len(lines))
	for i, line := range lines {
		cpy := make([]byte, len(line))
		copy(cpy, line)
		nodes[i] = &queueNode{line: cpy}
	}

	q.mutex.Lock()
	for _, node := range nodes {
		q.enqueue(node)
	}
	q.mutex.Unlock()
}

func (q *Queue) enqueue(node *queueNode) {
	if q.length == 0 {
		q.front = node
	} else {
		q.back.next = node
	}
	q.back = node
	q.length++
}

// Dequeue removes up to n lines from the front.
func (q *Queue) Dequeue(n int) [][]byte {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if n > q.length {
		n = q.length
	}
	if n <= 0 {
		return nil
	}

	lines := make([][]byte, n)
	for i := range lines {
		lines[i] = q.dequeue()
	}
	return lines
}

func (q *Queue) dequeue() []byte {
	if q.length == 0 {
		return nil
	}

	node := q.front
	q.front = node.next
	if q.length == 1 {
		q.back = nil
	}
	q.length--
	return node.line
}

// Len is the number of lines waiting.
func (q *Queue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.length
}

// Clear drops every waiting line and returns how many there were.
func (q *Queue) Clear() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	n := q.length
	q.front, q.back, q.length = nil, nil, 0
	return n
}
