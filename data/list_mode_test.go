package data

import "testing"

func TestListQueue(t *testing.T) {
	t.Parallel()

	var q ListQueue
	if _, ok := q.Peek(); ok {
		t.Error("Empty queue should have no head")
	}

	q.Offer('b')
	q.Offer('e')
	q.Offer('I')
	if !q.Contains('e') {
		t.Error("e should be queued")
	}
	if m, _ := q.Peek(); m != 'b' {
		t.Error("Unexpected:", m, "should be: b")
	}
	if !q.Remove('e') || q.Contains('e') {
		t.Error("e should have been removed")
	}
	if m, _ := q.Poll(); m != 'b' {
		t.Error("Unexpected:", m, "should be: b")
	}
	if exp, val := 1, q.Len(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}
